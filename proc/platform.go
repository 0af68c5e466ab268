package proc

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// Platform is the slice of the chat API the troll manager needs.
type Platform interface {
	// PostableChannels lists the text channels the bot can currently view and post in.
	PostableChannels(ctx context.Context) []snowflake.ID
	SendMention(ctx context.Context, channelID, userID snowflake.ID) (snowflake.ID, error)
	DeleteMessage(ctx context.Context, channelID, messageID snowflake.ID) error
}

const postPermissions = discord.PermissionViewChannel | discord.PermissionSendMessages

// DisgoPlatform implements Platform for a single guild on top of a disgo client.
type DisgoPlatform struct {
	client  *bot.Client
	guildID snowflake.ID
}

func NewDisgoPlatform(client *bot.Client, guildID snowflake.ID) *DisgoPlatform {
	return &DisgoPlatform{client: client, guildID: guildID}
}

func (p *DisgoPlatform) PostableChannels(_ context.Context) []snowflake.ID {
	self, ok := p.client.Caches.Member(p.guildID, p.client.ApplicationID)
	if !ok {
		return nil
	}

	var ids []snowflake.ID
	for ch := range p.client.Caches.Channels() {
		if ch.GuildID() != p.guildID || ch.Type() != discord.ChannelTypeGuildText {
			continue
		}
		if memberPermissionsIn(p.client, ch, self).Has(postPermissions) {
			ids = append(ids, ch.ID())
		}
	}
	return ids
}

func (p *DisgoPlatform) SendMention(ctx context.Context, channelID, userID snowflake.ID) (snowflake.ID, error) {
	msg, err := p.client.Rest.CreateMessage(channelID, discord.MessageCreate{
		Content: fmt.Sprintf("<@%s>", userID),
		AllowedMentions: &discord.AllowedMentions{
			Users: []snowflake.ID{userID},
		},
	}, rest.WithCtx(ctx))
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

func (p *DisgoPlatform) DeleteMessage(ctx context.Context, channelID, messageID snowflake.ID) error {
	return p.client.Rest.DeleteMessage(channelID, messageID, rest.WithCtx(ctx))
}

// memberPermissionsIn resolves a member's effective permissions in a channel:
// guild owner, base role permissions, administrator, then @everyone, role and member overwrites.
func memberPermissionsIn(client *bot.Client, channel discord.GuildChannel, member discord.Member) discord.Permissions {
	guild, ok := client.Caches.Guild(channel.GuildID())
	if !ok {
		return 0
	}
	if guild.OwnerID == member.User.ID {
		return discord.PermissionsAll
	}

	var roles []discord.Role
	if everyone, ok := client.Caches.Role(guild.ID, guild.ID); ok {
		roles = append(roles, everyone)
	}
	for _, roleID := range member.RoleIDs {
		if role, ok := client.Caches.Role(guild.ID, roleID); ok {
			roles = append(roles, role)
		}
	}
	return resolvePermissions(guild.ID, member.User.ID, member.RoleIDs, roles, channel.PermissionOverwrites())
}

func resolvePermissions(guildID, userID snowflake.ID, roleIDs []snowflake.ID, roles []discord.Role, overwrites discord.PermissionOverwrites) discord.Permissions {
	var perms discord.Permissions
	for _, role := range roles {
		perms |= role.Permissions
	}
	if perms.Has(discord.PermissionAdministrator) {
		return discord.PermissionsAll
	}

	// @everyone shares the guild's ID
	for _, o := range overwrites {
		if o.ID() == guildID {
			if ro, ok := o.(discord.RolePermissionOverwrite); ok {
				perms &^= ro.Deny
				perms |= ro.Allow
			}
			break
		}
	}

	var roleAllow, roleDeny discord.Permissions
	for _, o := range overwrites {
		ro, ok := o.(discord.RolePermissionOverwrite)
		if !ok {
			continue
		}
		for _, rID := range roleIDs {
			if o.ID() == rID {
				roleDeny |= ro.Deny
				roleAllow |= ro.Allow
				break
			}
		}
	}
	perms &^= roleDeny
	perms |= roleAllow

	for _, o := range overwrites {
		if o.ID() == userID {
			if mo, ok := o.(discord.MemberPermissionOverwrite); ok {
				perms &^= mo.Deny
				perms |= mo.Allow
			}
			break
		}
	}
	return perms
}
