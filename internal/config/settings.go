package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings are the process-wide CLI options. Each key can be overridden
// by a SIXDOF_ environment variable, e.g. SIXDOF_STORE_BACKEND.
type Settings struct {
	LogLevel string
	DataDir  string
	Store    StoreSettings
}

type StoreSettings struct {
	Backend string // file, sqlite or postgres
	DSN     string
}

// LoadSettings sets defaults, binds the environment and reads the
// settings file at path when one is given.
func LoadSettings(path string) (*Settings, error) {
	viper.SetDefault("log_level", "info")
	viper.SetDefault("data_dir", "./runs")
	viper.SetDefault("store.backend", "file")
	viper.SetDefault("store.dsn", "")

	viper.SetEnvPrefix("SIXDOF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file: %w", err)
		}
	}

	s := &Settings{
		LogLevel: viper.GetString("log_level"),
		DataDir:  viper.GetString("data_dir"),
		Store: StoreSettings{
			Backend: viper.GetString("store.backend"),
			DSN:     viper.GetString("store.dsn"),
		},
	}
	switch s.Store.Backend {
	case "file", "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unknown store backend %q", s.Store.Backend)
	}
	return s, nil
}
