package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/events"
	"github.com/leeineian/ghost/sys"
)

const historyLimit = 10

func handleTrollHistory(event *events.ApplicationCommandInteractionCreate) {
	if _, ok := requireAllowed(event, "troll history"); !ok {
		return
	}

	ctx, cancel := context.WithTimeout(sys.AppContext, 5*time.Second)
	defer cancel()

	history, err := deps.DB.RecentTrollEvents(ctx, historyLimit)
	if err != nil {
		sys.RespondFailure(event, "troll history", err)
		return
	}
	if len(history) == 0 {
		sys.Respond(event, sys.MsgTitleTrollHistory, sys.MsgTrollHistoryEmpty, true)
		return
	}
	sys.Respond(event, sys.MsgTitleTrollHistory, formatHistory(history), true)
}

func formatHistory(history []sys.TrollEvent) string {
	var sb strings.Builder
	for _, ev := range history {
		by := ""
		if ev.ActorID != 0 {
			by = fmt.Sprintf(sys.MsgTrollHistoryByActor, ev.ActorID)
		}
		if ev.TargetID == 0 {
			fmt.Fprintf(&sb, sys.MsgTrollHistoryAll, ev.CreatedAt.Unix(), ev.Action, by)
			continue
		}
		minutes := ""
		if ev.DurationMinutes > 0 {
			minutes = fmt.Sprintf(sys.MsgTrollHistoryMinutes, ev.DurationMinutes)
		}
		fmt.Fprintf(&sb, sys.MsgTrollHistoryItem, ev.CreatedAt.Unix(), ev.Action, ev.TargetID, minutes, by)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
