package home

import (
	"context"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/leeineian/ghost/proc"
	"github.com/leeineian/ghost/sys"
	"github.com/sho0pi/naturaltime"
)

// Deps is everything the command handlers need; main wires it once before the gateway opens.
type Deps struct {
	Manager *proc.TrollManager
	Roles   *sys.RoleStore
	Policy  sys.AccessPolicy
	DB      *sys.Database
}

var (
	deps        Deps
	untilParser *naturaltime.Parser
)

func Setup(d Deps) {
	deps = d
}

// interaction is the part of command and component events the access checks use.
type interaction interface {
	sys.MessageResponder
	User() discord.User
	Member() *discord.ResolvedMember
}

func initUntilParser() {
	var err error
	untilParser, err = naturaltime.New()
	if err != nil {
		sys.LogFatal(sys.MsgNaturalTimeInitFail, err)
	}
}

func init() {
	initUntilParser()

	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "troll",
		Description: "Ghost-ping a member across the server",
		Contexts: []discord.InteractionContextType{
			discord.InteractionContextTypeGuild,
		},
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionSubCommand{
				Name:        "start",
				Description: "Start ghost-pinging a member",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionUser{
						Name:        "user",
						Description: "Member to troll",
						Required:    true,
					},
					discord.ApplicationCommandOptionInt{
						Name:        "duration",
						Description: "How long to troll, in minutes (1-1440)",
						Required:    false,
						MinValue:    ptr(minDurationMinutes),
						MaxValue:    ptr(maxDurationMinutes),
					},
					discord.ApplicationCommandOptionString{
						Name:        "until",
						Description: "When to stop instead of a duration (e.g., 'in 2 hours', 'tomorrow at 9am')",
						Required:    false,
					},
					discord.ApplicationCommandOptionInt{
						Name:        "frequency",
						Description: "Average seconds between pings (5-3600, default: 30)",
						Required:    false,
						MinValue:    ptr(minFrequencySeconds),
						MaxValue:    ptr(maxFrequencySeconds),
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "stop",
				Description: "Stop ghost-pinging a member",
				Options: []discord.ApplicationCommandOption{
					discord.ApplicationCommandOptionUser{
						Name:        "user",
						Description: "Member to leave alone",
						Required:    true,
					},
				},
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "status",
				Description: "List active troll sessions",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "clear",
				Description: "Stop every troll session (Admin Only)",
			},
			discord.ApplicationCommandOptionSubCommand{
				Name:        "history",
				Description: "Show the latest troll events",
			},
		},
	}, func(event *events.ApplicationCommandInteractionCreate) {
		data := event.SlashCommandInteractionData()
		subCmd := data.SubCommandName
		if subCmd == nil {
			return
		}

		switch *subCmd {
		case "start":
			handleTrollStart(event, data)
		case "stop":
			handleTrollStop(event, data)
		case "status":
			handleTrollStatus(event)
		case "clear":
			handleTrollClear(event)
		case "history":
			handleTrollHistory(event)
		default:
			sys.LogWarn(sys.MsgUnknownSubcommand, "troll", *subCmd)
		}
	})

	sys.RegisterComponentHandler(stopButtonPrefix, handleTrollStopButton)
}

func actorOf(event interaction) sys.Actor {
	return sys.ActorFromMember(event.User(), event.Member())
}

// requireAllowed replies with a denial and returns false unless the actor may use troll commands.
func requireAllowed(event interaction, command string) (sys.Actor, bool) {
	if event.Member() == nil {
		sys.RespondError(event, sys.MsgTitlePermissionDenied, sys.ErrGuildOnly)
		return sys.Actor{}, false
	}
	actor := actorOf(event)
	if !deps.Policy.IsAllowed(actor, deps.Roles.List()) {
		sys.LogAccess(sys.MsgAccessDenied, command, actor.UserID)
		sys.RespondError(event, sys.MsgTitlePermissionDenied, sys.ErrPermissionDenied)
		return actor, false
	}
	return actor, true
}

// requireManager is requireAllowed without the allow-list.
func requireManager(event interaction, command string) (sys.Actor, bool) {
	if event.Member() == nil {
		sys.RespondError(event, sys.MsgTitlePermissionDenied, sys.ErrGuildOnly)
		return sys.Actor{}, false
	}
	actor := actorOf(event)
	if !deps.Policy.CanManage(actor) {
		sys.LogAccess(sys.MsgAccessDenied, command, actor.UserID)
		sys.RespondError(event, sys.MsgTitlePermissionDenied, sys.ErrManagerOnly)
		return actor, false
	}
	return actor, true
}

func recordEvent(ev sys.TrollEvent) {
	if deps.DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(sys.AppContext, 5*time.Second)
	defer cancel()
	if err := deps.DB.LogTrollEvent(ctx, ev); err != nil {
		sys.LogTroll(sys.MsgTrollHistoryFail, err)
	}
}

func ptr[T any](v T) *T {
	return &v
}
