package home

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/events"
	"github.com/leeineian/ghost/sys"
)

func handleTrollStatus(event *events.ApplicationCommandInteractionCreate) {
	if _, ok := requireAllowed(event, "troll status"); !ok {
		return
	}

	sessions := deps.Manager.Active()
	if len(sessions) == 0 {
		sys.Respond(event, sys.MsgTitleNoActiveTrolls, sys.MsgTrollNoActiveDisp, true)
		return
	}
	sys.Respond(event, sys.MsgTitleActiveTrolls, formatActiveSessions(sessions, time.Now()), true)
}

func formatActiveSessions(sessions []sys.TrollSession, now time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, sys.MsgTrollActiveHeader, len(sessions))
	for _, s := range sessions {
		fmt.Fprintf(&sb, sys.MsgTrollActiveItem, s.UserID, s.MinutesLeft(now), s.End().Unix())
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
