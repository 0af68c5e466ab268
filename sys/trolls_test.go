package sys

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userA snowflake.ID = 111111111111111111
	userB snowflake.ID = 222222222222222222
)

func newTestTrollStore(t *testing.T, now time.Time) *TrollStore {
	t.Helper()
	store := NewTrollStore(filepath.Join(t.TempDir(), "trolls.json"))
	store.now = func() time.Time { return now }
	return store
}

func TestTrollStoreSaveAndRemove(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	store := newTestTrollStore(t, now)

	session, err := store.Save(userA, 2*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli()+120_000, session.EndTime)

	sessions := store.List()
	require.Len(t, sessions, 1)
	assert.Equal(t, userA, sessions[0].UserID)
	assert.Equal(t, session.EndTime, sessions[0].EndTime)

	require.NoError(t, store.Remove(userA))
	assert.Empty(t, store.List())

	require.NoError(t, store.Remove(userA))
	assert.Empty(t, store.List())
}

func TestTrollStoreRejectsNonPositiveDuration(t *testing.T) {
	t.Parallel()

	store := newTestTrollStore(t, time.Now())

	_, err := store.Save(userA, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	_, err = store.Save(userA, -time.Minute)
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.Empty(t, store.List())
}

func TestTrollStoreFileLayout(t *testing.T) {
	t.Parallel()

	store := newTestTrollStore(t, time.UnixMilli(1_000))
	_, err := store.Save(userA, time.Minute)
	require.NoError(t, err)

	data, err := os.ReadFile(store.file.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"userId":"111111111111111111","endTime":61000}]`, string(data))
}

func TestTrollStoreActiveAndPrune(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	store := newTestTrollStore(t, now)

	require.NoError(t, store.Put(TrollSession{UserID: userA, EndTime: now.Add(time.Minute).UnixMilli()}))
	require.NoError(t, store.Put(TrollSession{UserID: userB, EndTime: now.UnixMilli()}))

	active := store.Active(now)
	require.Len(t, active, 1)
	assert.Equal(t, userA, active[0].UserID)
	assert.Len(t, store.List(), 2)

	removed, err := store.Prune(now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Len(t, store.List(), 1)
}

func TestTrollStoreReplaceAndClear(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	store := newTestTrollStore(t, now)

	require.NoError(t, store.Put(TrollSession{UserID: userA, EndTime: 1}))
	require.NoError(t, store.Put(TrollSession{UserID: userA, EndTime: 2}))
	require.NoError(t, store.Put(TrollSession{UserID: userB, EndTime: 3}))

	require.NoError(t, store.Replace(TrollSession{UserID: userA, EndTime: 4}))
	assert.ElementsMatch(t, []TrollSession{{UserID: userB, EndTime: 3}, {UserID: userA, EndTime: 4}}, store.List())

	require.NoError(t, store.Clear())
	assert.Empty(t, store.List())
}

func TestTrollSessionMinutesLeft(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(0)
	assert.Equal(t, 1, TrollSession{EndTime: 1}.MinutesLeft(now))
	assert.Equal(t, 1, TrollSession{EndTime: 60_000}.MinutesLeft(now))
	assert.Equal(t, 2, TrollSession{EndTime: 60_001}.MinutesLeft(now))
	assert.Equal(t, 0, TrollSession{EndTime: 0}.MinutesLeft(now))
	assert.False(t, TrollSession{EndTime: 0}.ActiveAt(now))
}
