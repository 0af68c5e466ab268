package home

import (
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/leeineian/ghost/sys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedUntil(end time.Time) untilParseFunc {
	return func(string, time.Time) (*time.Time, error) {
		return &end, nil
	}
}

func failingUntil(string, time.Time) (*time.Time, error) {
	return nil, errors.New("no date found")
}

func TestStartArgsResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      startArgs
		parse     untilParseFunc
		duration  time.Duration
		interval  time.Duration
		wantError string
	}{
		{
			name:     "duration with default frequency",
			args:     startArgs{minutes: 10, hasMinutes: true},
			duration: 10 * time.Minute,
			interval: 30 * time.Second,
		},
		{
			name:     "explicit frequency",
			args:     startArgs{minutes: 1440, hasMinutes: true, frequency: 5, hasFrequency: true},
			duration: 1440 * time.Minute,
			interval: 5 * time.Second,
		},
		{
			name:     "until rounds up to whole minutes",
			args:     startArgs{until: "in 90 seconds"},
			parse:    fixedUntil(testNow.Add(90 * time.Second)),
			duration: 2 * time.Minute,
			interval: 30 * time.Second,
		},
		{
			name:      "neither duration nor until",
			args:      startArgs{},
			wantError: sys.ErrTrollDurationRequired,
		},
		{
			name:      "both duration and until",
			args:      startArgs{minutes: 5, hasMinutes: true, until: "tomorrow"},
			wantError: sys.ErrTrollDurationRequired,
		},
		{
			name:      "zero duration",
			args:      startArgs{minutes: 0, hasMinutes: true},
			wantError: "Duration must be between 1 and 1440 minutes.",
		},
		{
			name:      "duration too long",
			args:      startArgs{minutes: 1441, hasMinutes: true},
			wantError: "Duration must be between 1 and 1440 minutes.",
		},
		{
			name:      "frequency too fast",
			args:      startArgs{minutes: 5, hasMinutes: true, frequency: 4, hasFrequency: true},
			wantError: "Ping frequency must be between 5 and 3600 seconds.",
		},
		{
			name:      "frequency too slow",
			args:      startArgs{minutes: 5, hasMinutes: true, frequency: 3601, hasFrequency: true},
			wantError: "Ping frequency must be between 5 and 3600 seconds.",
		},
		{
			name:      "unparseable until",
			args:      startArgs{until: "whenever"},
			parse:     failingUntil,
			wantError: sys.ErrTrollUntilParse,
		},
		{
			name:      "until in the past",
			args:      startArgs{until: "yesterday"},
			parse:     fixedUntil(testNow.Add(-time.Hour)),
			wantError: sys.ErrTrollUntilPast,
		},
		{
			name:      "until beyond a day",
			args:      startArgs{until: "next week"},
			parse:     fixedUntil(testNow.Add(7 * 24 * time.Hour)),
			wantError: "Duration must be between 1 and 1440 minutes.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parse := tt.parse
			if parse == nil {
				parse = failingUntil
			}
			duration, interval, err := tt.args.resolve(testNow, parse)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantError, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.duration, duration)
			assert.Equal(t, tt.interval, interval)
		})
	}
}

func TestStopButtonID(t *testing.T) {
	t.Parallel()

	target := snowflake.ID(123456789012345678)
	id := stopButtonID(target)
	assert.Equal(t, "troll:stop:123456789012345678", id)

	got, ok := parseStopButtonID(id)
	require.True(t, ok)
	assert.Equal(t, target, got)

	_, ok = parseStopButtonID("troll:stop:nope")
	assert.False(t, ok)
	_, ok = parseStopButtonID("ping:refresh")
	assert.False(t, ok)
}

func TestFormatActiveSessions(t *testing.T) {
	t.Parallel()

	sessions := []sys.TrollSession{
		{UserID: 111111111111111111, EndTime: testNow.Add(90 * time.Second).UnixMilli()},
		{UserID: 222222222222222222, EndTime: testNow.Add(10 * time.Minute).UnixMilli()},
	}

	got := formatActiveSessions(sessions, testNow)
	assert.Contains(t, got, "There are 2 active troll(s)")
	assert.Contains(t, got, "<@111111111111111111> - 2 minute(s) left")
	assert.Contains(t, got, "<@222222222222222222> - 10 minute(s) left")
}

func TestFormatHistory(t *testing.T) {
	t.Parallel()

	history := []sys.TrollEvent{
		{TargetID: 111111111111111111, ActorID: 333333333333333333, Action: sys.TrollActionStart, DurationMinutes: 15, CreatedAt: testNow},
		{TargetID: 111111111111111111, Action: sys.TrollActionExpire, CreatedAt: testNow},
		{ActorID: 333333333333333333, Action: sys.TrollActionClear, CreatedAt: testNow},
	}

	got := formatHistory(history)
	assert.Contains(t, got, "**start** <@111111111111111111> (15 min) by <@333333333333333333>")
	assert.Contains(t, got, "**expire** <@111111111111111111>\n")
	assert.Contains(t, got, "**clear** all sessions by <@333333333333333333>")
}

func TestFormatRoleList(t *testing.T) {
	t.Parallel()

	got := formatRoleList([]snowflake.ID{444444444444444444, 555555555555555555})
	assert.Equal(t, "> <@&444444444444444444>\n> <@&555555555555555555>", got)
}
