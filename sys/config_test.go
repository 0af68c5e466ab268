package sys

import (
	"path/filepath"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEnv(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := configFromEnv(fakeEnv(map[string]string{
		EnvToken:         " token ",
		EnvApplicationID: "123456789012345678",
		EnvGuildID:       "876543210987654321",
	}))
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.Token)
	assert.Equal(t, snowflake.ID(123456789012345678), cfg.ApplicationID)
	assert.Equal(t, snowflake.ID(876543210987654321), cfg.GuildID)
	assert.Empty(t, cfg.OwnerIDs)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(DefaultDataDir, "ghost.db"), cfg.DatabasePath)
	assert.Equal(t, DefaultPresenceText, cfg.PresenceText)
	assert.Equal(t, filepath.Join(DefaultDataDir, "trolls.json"), cfg.TrollsPath())
	assert.Equal(t, filepath.Join(DefaultDataDir, "allowedRole.json"), cfg.RolesPath())
	assert.False(t, cfg.Silent)
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := configFromEnv(fakeEnv(map[string]string{
		EnvToken:        "token",
		EnvClientID:     "123456789012345678",
		EnvGuildID:      "876543210987654321",
		EnvOwnerIDs:     "111111111111111111, 222222222222222222,",
		EnvDataDir:      "/var/lib/ghost",
		EnvDatabasePath: "/tmp/ghost.db",
		EnvSilent:       "true",
		EnvPresenceText: "with fire",
	}))
	require.NoError(t, err)

	assert.Equal(t, snowflake.ID(123456789012345678), cfg.ApplicationID)
	assert.Equal(t, []snowflake.ID{111111111111111111, 222222222222222222}, cfg.OwnerIDs)
	assert.Equal(t, "/var/lib/ghost", cfg.DataDir)
	assert.Equal(t, "/tmp/ghost.db", cfg.DatabasePath)
	assert.Equal(t, "with fire", cfg.PresenceText)
	assert.True(t, cfg.Silent)
}

func TestConfigFromEnvErrors(t *testing.T) {
	t.Parallel()

	valid := map[string]string{
		EnvToken:         "token",
		EnvApplicationID: "123456789012345678",
		EnvGuildID:       "876543210987654321",
	}
	with := func(key, value string) map[string]string {
		env := map[string]string{}
		for k, v := range valid {
			env[k] = v
		}
		env[key] = value
		return env
	}

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing token", with(EnvToken, ""), EnvToken},
		{"missing application id", with(EnvApplicationID, ""), EnvApplicationID},
		{"short guild id", with(EnvGuildID, "1234"), EnvGuildID},
		{"non numeric guild id", with(EnvGuildID, "abcdefghijklmnopqr"), EnvGuildID},
		{"bad owner id", with(EnvOwnerIDs, "nope"), EnvOwnerIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := configFromEnv(fakeEnv(tt.env))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
