package home

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/leeineian/ghost/sys"
)

const pingRefreshID = "ping:refresh"

func init() {
	sys.RegisterCommand(discord.SlashCommandCreate{
		Name:        "ping",
		Description: "Check bot latency",
		Contexts: []discord.InteractionContextType{
			discord.InteractionContextTypeGuild,
		},
		Options: []discord.ApplicationCommandOption{
			discord.ApplicationCommandOptionBool{
				Name:        "ephemeral",
				Description: "Whether the message should be ephemeral (default: true)",
				Required:    false,
			},
		},
	}, handlePing)

	sys.RegisterComponentHandler(pingRefreshID, handlePingRefresh)
}

func handlePing(event *events.ApplicationCommandInteractionCreate) {
	data := event.SlashCommandInteractionData()
	ephemeral := true
	if eph, ok := data.OptBool("ephemeral"); ok {
		ephemeral = eph
	}

	err := event.CreateMessage(sys.NoticeMessage(
		sys.NoticeContainer("", sys.MsgPingPinging, sys.ColorDefault),
		ephemeral,
	))
	if err != nil {
		sys.LogDebug(sys.MsgRespondError, err)
		return
	}

	go func() {
		update := discord.NewMessageUpdate().
			WithIsComponentsV2(true).
			AddComponents(pingContainer(event.Client(), event.ID()))
		_, _ = event.Client().Rest.UpdateInteractionResponse(event.ApplicationID(), event.Token(), update)
	}()
}

func handlePingRefresh(event *events.ComponentInteractionCreate) {
	sys.UpdateNotice(event, pingContainer(event.Client(), event.ID()))
}

func pingContainer(client *bot.Client, interactionID snowflake.ID) discord.ContainerComponent {
	latency := time.Since(interactionID.Time()).Milliseconds()
	content := fmt.Sprintf(sys.MsgPingResult, latency, client.Gateway.Latency().Milliseconds())

	return sys.NoticeContainer("", content, sys.ColorDefault,
		discord.NewActionRow(
			discord.NewSuccessButton(sys.MsgPingRefresh, pingRefreshID),
		),
	)
}
