package home

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/leeineian/ghost/sys"
)

const stopButtonPrefix = "troll:stop:"

func stopButtonID(target snowflake.ID) string {
	return stopButtonPrefix + target.String()
}

func parseStopButtonID(customID string) (snowflake.ID, bool) {
	raw, ok := strings.CutPrefix(customID, stopButtonPrefix)
	if !ok {
		return 0, false
	}
	id, err := snowflake.Parse(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

func handleTrollStop(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	actor, ok := requireAllowed(event, "troll stop")
	if !ok {
		return
	}

	user := data.User("user")
	container, err := stopTroll(actor, user.ID)
	if err != nil {
		sys.RespondFailure(event, "troll stop", err)
		return
	}
	sys.RespondContainer(event, container, true)
}

func handleTrollStopButton(event *events.ComponentInteractionCreate) {
	target, ok := parseStopButtonID(event.Data.CustomID())
	if !ok {
		return
	}
	actor, ok := requireAllowed(event, "troll stop")
	if !ok {
		return
	}

	container, err := stopTroll(actor, target)
	if err != nil {
		sys.RespondFailure(event, "troll stop", err)
		return
	}
	sys.UpdateNotice(event, container)
}

// stopTroll is shared by the subcommand and the button. Stopping an idle target is not an error.
func stopTroll(actor sys.Actor, target snowflake.ID) (discord.ContainerComponent, error) {
	wasRunning, err := deps.Manager.Stop(target)
	if err != nil {
		return discord.ContainerComponent{}, err
	}
	if !wasRunning {
		return sys.NoticeContainer(sys.MsgTitleTrollAlready, fmt.Sprintf(sys.MsgTrollNotRunningDisp, target), sys.ColorDefault), nil
	}

	recordEvent(sys.TrollEvent{TargetID: target, ActorID: actor.UserID, Action: sys.TrollActionStop})
	return sys.NoticeContainer("✅ "+sys.MsgTitleTrollStopped, fmt.Sprintf(sys.MsgTrollStoppedDisp, target), sys.ColorSuccess), nil
}
