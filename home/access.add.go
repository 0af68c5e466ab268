package home

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/leeineian/ghost/sys"
)

func handleAccessAdd(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData, actor sys.Actor) {
	role := data.Role("role")

	added, err := deps.Roles.Add(role.ID)
	if err != nil {
		sys.RespondFailure(event, "access add", err)
		return
	}
	if !added {
		sys.Respond(event, sys.MsgTitleRoleAdded, fmt.Sprintf(sys.MsgRoleAlreadyDisp, role.ID), true)
		return
	}

	sys.LogAccess(sys.MsgAccessRoleAdded, role.ID, actor.UserID)
	sys.RespondSuccess(event, sys.MsgTitleRoleAdded, fmt.Sprintf(sys.MsgRoleAddedDisp, role.ID), true)
}
