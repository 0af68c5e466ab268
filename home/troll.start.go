package home

import (
	"fmt"
	"math"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/leeineian/ghost/sys"
)

const (
	minDurationMinutes      = 1
	maxDurationMinutes      = 1440
	minFrequencySeconds     = 5
	maxFrequencySeconds     = 3600
	defaultFrequencySeconds = 30
)

// argumentError carries a message meant for the invoking user.
type argumentError string

func (e argumentError) Error() string { return string(e) }

type untilParseFunc func(input string, now time.Time) (*time.Time, error)

type startArgs struct {
	minutes      int
	hasMinutes   bool
	until        string
	frequency    int
	hasFrequency bool
}

// resolve turns raw options into a session length and average ping interval.
// Exactly one of duration and until must be given.
func (a startArgs) resolve(now time.Time, parse untilParseFunc) (time.Duration, time.Duration, error) {
	if a.hasMinutes == (a.until != "") {
		return 0, 0, argumentError(sys.ErrTrollDurationRequired)
	}

	minutes := a.minutes
	if a.until != "" {
		end, err := parse(a.until, now)
		if err != nil || end == nil {
			return 0, 0, argumentError(sys.ErrTrollUntilParse)
		}
		if !end.After(now) {
			return 0, 0, argumentError(sys.ErrTrollUntilPast)
		}
		minutes = int(math.Ceil(end.Sub(now).Minutes()))
	}
	if minutes < minDurationMinutes || minutes > maxDurationMinutes {
		return 0, 0, argumentError(fmt.Sprintf(sys.ErrTrollDurationRange, minDurationMinutes, maxDurationMinutes))
	}

	frequency := defaultFrequencySeconds
	if a.hasFrequency {
		frequency = a.frequency
	}
	if frequency < minFrequencySeconds || frequency > maxFrequencySeconds {
		return 0, 0, argumentError(fmt.Sprintf(sys.ErrTrollFrequencyRange, minFrequencySeconds, maxFrequencySeconds))
	}

	return time.Duration(minutes) * time.Minute, time.Duration(frequency) * time.Second, nil
}

func handleTrollStart(event *events.ApplicationCommandInteractionCreate, data discord.SlashCommandInteractionData) {
	actor, ok := requireAllowed(event, "troll start")
	if !ok {
		return
	}

	user := data.User("user")
	if user.Bot {
		sys.RespondError(event, sys.MsgTitleInvalidArgument, sys.ErrTrollTargetBot)
		return
	}

	var args startArgs
	args.minutes, args.hasMinutes = data.OptInt("duration")
	args.until, _ = data.OptString("until")
	args.frequency, args.hasFrequency = data.OptInt("frequency")

	duration, interval, err := args.resolve(time.Now(), untilParser.ParseDate)
	if err != nil {
		sys.RespondError(event, sys.MsgTitleInvalidArgument, err.Error())
		return
	}

	session, err := deps.Manager.Start(user.ID, duration, interval)
	if err != nil {
		sys.RespondFailure(event, "troll start", err)
		return
	}

	minutes := int(duration / time.Minute)
	recordEvent(sys.TrollEvent{
		TargetID:        user.ID,
		ActorID:         actor.UserID,
		Action:          sys.TrollActionStart,
		DurationMinutes: minutes,
	})

	body := fmt.Sprintf(sys.MsgTrollStartedDisp, user.ID, minutes, int(interval/time.Second)) +
		fmt.Sprintf(sys.MsgTrollEndsDisp, session.End().Unix())
	sys.RespondContainer(event, sys.NoticeContainer(
		"✅ "+sys.MsgTitleTrollStarted,
		body,
		sys.ColorSuccess,
		discord.NewActionRow(
			discord.NewButton(discord.ButtonStyleDanger, sys.MsgTrollStopButton, stopButtonID(user.ID), "", 0),
		),
	), false)
}
