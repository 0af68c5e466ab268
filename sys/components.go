package sys

import (
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
)

// Accent colors used by every response container.
const (
	ColorDefault = 0x8B0000
	ColorError   = 0xFF0000
	ColorSuccess = 0x00FF00
)

// MessageResponder is implemented by command and component interaction events.
type MessageResponder interface {
	CreateMessage(messageCreate discord.MessageCreate, opts ...rest.RequestOpt) error
}

// NoticeContainer renders a titled notice as a V2 container with the given accent color.
func NoticeContainer(title, body string, color int, extra ...discord.ContainerSubComponent) discord.ContainerComponent {
	var sb strings.Builder
	if title != "" {
		sb.WriteString("### " + title)
		if body != "" {
			sb.WriteString("\n")
		}
	}
	sb.WriteString(body)

	components := []discord.ContainerSubComponent{discord.NewTextDisplay(sb.String())}
	if len(extra) > 0 {
		components = append(components, discord.NewSeparator(discord.SeparatorSpacingSizeSmall).WithDivider(true))
		components = append(components, extra...)
	}
	return discord.NewContainer(components...).WithAccentColor(color)
}

// NoticeMessage wraps a notice container into a V2 message.
func NoticeMessage(container discord.ContainerComponent, ephemeral bool) discord.MessageCreate {
	return discord.NewMessageCreate().
		WithIsComponentsV2(true).
		AddComponents(container).
		WithEphemeral(ephemeral)
}

func Respond(event MessageResponder, title, body string, ephemeral bool) {
	send(event, NoticeContainer(title, body, ColorDefault), ephemeral)
}

func RespondSuccess(event MessageResponder, title, body string, ephemeral bool) {
	send(event, NoticeContainer("✅ "+title, body, ColorSuccess), ephemeral)
}

func RespondError(event MessageResponder, title, body string) {
	send(event, NoticeContainer("❌ "+title, body, ColorError), true)
}

// RespondFailure is the generic notice shown when a command fails unexpectedly.
func RespondFailure(event MessageResponder, command string, err error) {
	LogError(MsgCommandFailed, command, err)
	RespondError(event, MsgTitleFailure, ErrGenericFailure)
}

func RespondContainer(event MessageResponder, container discord.ContainerComponent, ephemeral bool) {
	send(event, container, ephemeral)
}

func send(event MessageResponder, container discord.ContainerComponent, ephemeral bool) {
	if err := event.CreateMessage(NoticeMessage(container, ephemeral)); err != nil {
		LogError(MsgRespondError, err)
	}
}

// MessageUpdater is implemented by component interaction events.
type MessageUpdater interface {
	UpdateMessage(messageUpdate discord.MessageUpdate, opts ...rest.RequestOpt) error
}

// UpdateNotice replaces the message a component was attached to.
func UpdateNotice(event MessageUpdater, container discord.ContainerComponent) {
	update := discord.NewMessageUpdate().
		WithIsComponentsV2(true).
		AddComponents(container)
	if err := event.UpdateMessage(update); err != nil {
		LogError(MsgRespondError, err)
	}
}
