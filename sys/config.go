package sys

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/joho/godotenv"
)

const (
	EnvToken         = "DISCORD_TOKEN"
	EnvApplicationID = "APPLICATION_ID"
	EnvClientID      = "CLIENT_ID"
	EnvGuildID       = "GUILD_ID"
	EnvOwnerIDs      = "OWNER_IDS"
	EnvDataDir       = "DATA_DIR"
	EnvDatabasePath  = "DATABASE_PATH"
	EnvSilent        = "SILENT"
	EnvPresenceText  = "PRESENCE_TEXT"

	DefaultDataDir      = "data"
	DefaultPresenceText = "/help for commands"
)

type Config struct {
	Token         string
	ApplicationID snowflake.ID
	GuildID       snowflake.ID
	OwnerIDs      []snowflake.ID
	DataDir       string
	DatabasePath  string
	PresenceText  string
	Silent        bool
}

// LoadConfig initializes the configuration from .env and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Token:        strings.TrimSpace(getenv(EnvToken)),
		DataDir:      getenv(EnvDataDir),
		DatabasePath: getenv(EnvDatabasePath),
		PresenceText: getenv(EnvPresenceText),
	}

	if cfg.Token == "" {
		return nil, fmt.Errorf(MsgConfigMissing, EnvToken)
	}

	appIDStr := getenv(EnvApplicationID)
	if appIDStr == "" {
		appIDStr = getenv(EnvClientID)
	}
	appID, err := parseRequiredSnowflake(EnvApplicationID, appIDStr)
	if err != nil {
		return nil, err
	}
	cfg.ApplicationID = appID

	guildID, err := parseRequiredSnowflake(EnvGuildID, getenv(EnvGuildID))
	if err != nil {
		return nil, err
	}
	cfg.GuildID = guildID

	if ownerIDsStr := getenv(EnvOwnerIDs); ownerIDsStr != "" {
		for _, raw := range strings.Split(ownerIDsStr, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := snowflake.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s entry %q: %w", EnvOwnerIDs, raw, err)
			}
			cfg.OwnerIDs = append(cfg.OwnerIDs, id)
		}
	}

	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(cfg.DataDir, GetProjectName()+".db")
	}
	if cfg.PresenceText == "" {
		cfg.PresenceText = DefaultPresenceText
	}

	cfg.Silent, _ = strconv.ParseBool(getenv(EnvSilent))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf(MsgConfigMissing, EnvToken)
	}
	if c.ApplicationID == 0 {
		return fmt.Errorf(MsgConfigMissing, EnvApplicationID)
	}
	if c.GuildID == 0 {
		return fmt.Errorf(MsgConfigMissing, EnvGuildID)
	}
	return nil
}

// RolesPath is the allow-list file inside the data directory.
func (c *Config) RolesPath() string {
	return filepath.Join(c.DataDir, "allowedRole.json")
}

// TrollsPath is the session file inside the data directory.
func (c *Config) TrollsPath() string {
	return filepath.Join(c.DataDir, "trolls.json")
}

func parseRequiredSnowflake(name, value string) (snowflake.ID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf(MsgConfigMissing, name)
	}
	if len(value) < 17 || len(value) > 20 {
		return 0, fmt.Errorf("invalid %s: must be a valid Snowflake", name)
	}
	id, err := snowflake.Parse(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

func GetProjectName() string {
	projectName := "ghost"
	exePath, err := os.Executable()
	if err != nil {
		return projectName
	}

	name := strings.TrimSuffix(filepath.Base(exePath), ".exe")
	if name == "main" || strings.HasPrefix(name, "go_build_") || strings.HasSuffix(name, ".test") {
		return projectName
	}
	return name
}
