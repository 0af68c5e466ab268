package home

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/leeineian/ghost/sys"
)

func init() {
	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "help",
		Description: "List Ghost's commands",
		Contexts: []discord.InteractionContextType{
			discord.InteractionContextTypeGuild,
		},
	}, func(event *events.ApplicationCommandInteractionCreate) {
		sys.Respond(event, sys.MsgTitleHelp, sys.MsgHelpBody, true)
	})
}
