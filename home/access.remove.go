package home

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/leeineian/ghost/sys"
)

func handleAccessRemove(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData, actor sys.Actor) {
	role := data.Role("role")

	removed, err := deps.Roles.Remove(role.ID)
	if err != nil {
		sys.RespondFailure(event, "access remove", err)
		return
	}
	if !removed {
		sys.RespondError(event, sys.MsgTitleRoleNotFound, fmt.Sprintf(sys.MsgRoleNotFoundDisp, role.ID))
		return
	}

	sys.LogAccess(sys.MsgAccessRoleRemoved, role.ID, actor.UserID)
	sys.RespondSuccess(event, sys.MsgTitleRoleRemoved, fmt.Sprintf(sys.MsgRoleRemovedDisp, role.ID), true)
}
