// Package config loads client configuration from a .pantry file or PANTRY_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the resolved client settings.
type Config struct {
	// BaseURL is the backend API root, including the /api path.
	BaseURL string

	// PollInterval is the cadence of the UI's background refresh.
	PollInterval time.Duration

	// DataPath is the directory holding persisted preferences.
	DataPath string
}

// Load reads configuration with viper. A missing config file is fine; the
// defaults match the backend's development setup.
func Load() (*Config, error) {
	viper.SetDefault("api", "http://localhost:57457/api")
	viper.SetDefault("poll", "8s")
	viper.SetDefault("path", "~/.pantry")
	viper.SetConfigName(".pantry") // .yaml is implicit
	viper.SetEnvPrefix("PANTRY")
	viper.AutomaticEnv()

	if override := os.Getenv("PANTRY_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	poll := viper.GetDuration("poll")
	if poll <= 0 {
		poll = 8 * time.Second
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("expand data path: %w", err)
	}

	return &Config{
		BaseURL:      viper.GetString("api"),
		PollInterval: poll,
		DataPath:     path,
	}, nil
}
