package sys

import (
	"slices"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// Actor is whoever invoked an interaction.
type Actor struct {
	UserID      snowflake.ID
	RoleIDs     []snowflake.ID
	Permissions discord.Permissions
}

// ActorFromMember builds an Actor from an interaction member. A nil member (DMs) has no roles or permissions.
func ActorFromMember(user discord.User, member *discord.ResolvedMember) Actor {
	actor := Actor{UserID: user.ID}
	if member != nil {
		actor.RoleIDs = member.RoleIDs
		actor.Permissions = member.Permissions
	}
	return actor
}

// AccessPolicy decides who may run troll commands.
//
// Managers are configured owners and members with the Administrator permission.
// Managers may do everything; anyone else needs a role on the allow-list.
type AccessPolicy struct {
	OwnerIDs []snowflake.ID
}

func NewAccessPolicy(ownerIDs []snowflake.ID) AccessPolicy {
	return AccessPolicy{OwnerIDs: ownerIDs}
}

func (p AccessPolicy) CanManage(actor Actor) bool {
	if slices.Contains(p.OwnerIDs, actor.UserID) {
		return true
	}
	return actor.Permissions.Has(discord.PermissionAdministrator)
}

// IsAllowed is true for managers and for actors holding at least one allowed role.
func (p AccessPolicy) IsAllowed(actor Actor, allowed []snowflake.ID) bool {
	if p.CanManage(actor) {
		return true
	}
	for _, roleID := range actor.RoleIDs {
		if slices.Contains(allowed, roleID) {
			return true
		}
	}
	return false
}
