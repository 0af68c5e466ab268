package sys

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripANSIWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewStripANSIWriter(&buf)

	in := []byte("\x1b[35m[TROLL] started\x1b[0m\n")
	n, err := w.Write(in)
	require.NoError(t, err)
	assert.Equal(t, len(in), n)
	assert.Equal(t, "[TROLL] started\n", buf.String())
}

func TestBotLogHandlerComponentTag(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewBotLogHandler(NewStripANSIWriter(&buf), &BotLogHandlerOptions{Level: slog.LevelInfo}))

	logger.Info("Stopped trolling 1", slog.String("component", "troll"))
	logger.Warn("disk full")
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "[TROLL] Stopped trolling 1"))
	assert.True(t, strings.HasSuffix(lines[1], "[WARN] disk full"))
}

func TestBotLogHandlerSilent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := NewBotLogHandler(&buf, &BotLogHandlerOptions{Silent: true, Level: slog.LevelDebug})
	assert.False(t, h.Enabled(context.Background(), slog.LevelError))

	require.NoError(t, h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelError, "nope", 0)))
	assert.Empty(t, buf.String())
}

func TestLevelStyle(t *testing.T) {
	t.Parallel()

	for level, want := range map[slog.Level]string{
		slog.LevelDebug:     "DEBUG",
		slog.LevelInfo:      "INFO",
		slog.LevelWarn:      "WARN",
		slog.LevelError:     "ERROR",
		slog.LevelError + 4: "FATAL",
	} {
		got, _ := levelStyle(level)
		assert.Equal(t, want, got)
	}
}
