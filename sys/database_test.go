package sys

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "data", "ghost.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBotConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDatabase(t)

	value, err := db.GetBotConfig(ctx, "last_cmd_hash")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, db.SetBotConfig(ctx, "last_cmd_hash", "abc"))
	require.NoError(t, db.SetBotConfig(ctx, "last_cmd_hash", "def"))

	value, err = db.GetBotConfig(ctx, "last_cmd_hash")
	require.NoError(t, err)
	assert.Equal(t, "def", value)
}

func TestTrollHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDatabase(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.LogTrollEvent(ctx, TrollEvent{
		TargetID: userA, ActorID: userB, Action: TrollActionStart, DurationMinutes: 15, CreatedAt: base,
	}))
	require.NoError(t, db.LogTrollEvent(ctx, TrollEvent{
		TargetID: userA, Action: TrollActionExpire, CreatedAt: base.Add(15 * time.Minute),
	}))
	require.NoError(t, db.LogTrollEvent(ctx, TrollEvent{
		ActorID: userB, Action: TrollActionClear, CreatedAt: base.Add(time.Hour),
	}))

	events, err := db.RecentTrollEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, TrollActionClear, events[0].Action)
	assert.Zero(t, events[0].TargetID)
	assert.Equal(t, userB, events[0].ActorID)

	assert.Equal(t, TrollActionExpire, events[1].Action)
	assert.Equal(t, userA, events[1].TargetID)
	assert.Zero(t, events[1].ActorID)

	events, err = db.RecentTrollEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, 15, events[2].DurationMinutes)
	assert.True(t, base.Equal(events[2].CreatedAt))
}
