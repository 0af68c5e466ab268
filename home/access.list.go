package home

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/leeineian/ghost/sys"
)

func handleAccessList(event *events.ApplicationCommandInteractionCreate) {
	roles := deps.Roles.List()
	if len(roles) == 0 {
		sys.Respond(event, sys.MsgTitleAllowedRoles, sys.MsgAllowedRolesEmpty, true)
		return
	}
	sys.Respond(event, sys.MsgTitleAllowedRoles, formatRoleList(roles), true)
}

func formatRoleList(roles []snowflake.ID) string {
	var sb strings.Builder
	for _, id := range roles {
		fmt.Fprintf(&sb, sys.MsgAllowedRolesItem, id)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
