package home

import (
	"fmt"

	"github.com/disgoorg/disgo/events"
	"github.com/leeineian/ghost/sys"
)

func handleTrollClear(event *events.ApplicationCommandInteractionCreate) {
	actor, ok := requireManager(event, "troll clear")
	if !ok {
		return
	}

	n, err := deps.Manager.StopAll()
	if err != nil {
		sys.RespondFailure(event, "troll clear", err)
		return
	}

	recordEvent(sys.TrollEvent{ActorID: actor.UserID, Action: sys.TrollActionClear})
	sys.RespondSuccess(event, sys.MsgTitleTrollCleared, fmt.Sprintf(sys.MsgTrollClearedDisp, n), true)
}
