package config

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Defaults for settings a fresh install may leave unset.
const (
	DefaultBaseURL = "http://localhost:3000/api"
	DefaultTimeout = 15 * time.Second
	DefaultPayHost = "https://localpay.app"
)

// Config holds the client settings read from the config file, environment
// and flags (in viper precedence order).
type Config struct {
	BaseURL string
	PayHost string
	DBPath  string
	Timeout time.Duration
}

// Load assembles the client configuration from viper. Viper must already
// have read the config file (the root command does this in its
// PersistentPreRunE).
func Load() (Config, error) {
	viper.SetDefault("api.base_url", DefaultBaseURL)
	viper.SetDefault("api.timeout", DefaultTimeout)
	viper.SetDefault("pay.host", DefaultPayHost)

	cfg := Config{
		BaseURL: viper.GetString("api.base_url"),
		PayHost: viper.GetString("pay.host"),
		DBPath:  ExpandPath(viper.GetString("storage.path")),
		Timeout: viper.GetDuration("api.timeout"),
	}

	if cfg.DBPath == "" {
		dir, err := Dir()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = filepath.Join(dir, "localpay.db")
	}

	return cfg, nil
}
