package sys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	roleA snowflake.ID = 333333333333333333
	roleB snowflake.ID = 444444444444444444
)

func TestRoleStoreAddIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewRoleStore(filepath.Join(t.TempDir(), "allowedRole.json"))

	added, err := store.Add(roleA)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.Add(roleA)
	require.NoError(t, err)
	assert.False(t, added)

	added, err = store.Add(roleB)
	require.NoError(t, err)
	assert.True(t, added)

	assert.Equal(t, []snowflake.ID{roleA, roleB}, store.List())
	assert.True(t, store.Contains(roleB))

	data, err := os.ReadFile(store.file.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `["333333333333333333","444444444444444444"]`, string(data))
}

func TestRoleStoreRemove(t *testing.T) {
	t.Parallel()

	store := NewRoleStore(filepath.Join(t.TempDir(), "allowedRole.json"))
	_, err := store.Add(roleA)
	require.NoError(t, err)

	removed, err := store.Remove(roleB)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, []snowflake.ID{roleA}, store.List())

	removed, err = store.Remove(roleA)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, store.List())
	assert.False(t, store.Contains(roleA))
}
