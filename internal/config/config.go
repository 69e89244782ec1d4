// Package config resolves the ledger's runtime configuration and default paths.
package config

import (
	"fmt"

	"github.com/Veraticus/daily-ledger/internal/common"
	"github.com/spf13/viper"
)

// AppName names the config and data directories.
const AppName = "ledger"

// Config is the resolved runtime configuration.
type Config struct {
	DatabasePath string
	BackupDir    string
	LogLevel     string
	LogFormat    string
}

// Load resolves configuration with this precedence:
// 1. Viper (flags, config file or LEDGER_ env vars)
// 2. XDG_DATA_HOME for the data directory
// 3. Default values under the home directory
func Load() (Config, error) {
	dbPath, err := resolvePath(viper.GetString("database.path"), DefaultDatabasePath)
	if err != nil {
		return Config{}, err
	}
	backupDir, err := resolvePath(viper.GetString("backup.dir"), func() (string, error) { return ".", nil })
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DatabasePath: dbPath,
		BackupDir:    backupDir,
		LogLevel:     viper.GetString("logging.level"),
		LogFormat:    viper.GetString("logging.format"),
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the program cannot use.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", common.ErrInvalidConfig, c.LogFormat)
	}
	_, err := common.ParseLevel(c.LogLevel)
	return err
}
