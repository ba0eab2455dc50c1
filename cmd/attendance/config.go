package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// AppConfig holds the settings of the command itself. The run documents
// live in ConfigDir and are loaded by configstore.
type AppConfig struct {
	ConfigDir string
	EnvFile   string
	Strict    bool
	Log       LogConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from file, environment and flags, in
// increasing priority.
func LoadConfig(configPath string) (*AppConfig, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("attendance")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("ATTENDANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("config_dir", "config")
	v.SetDefault("env_file", ".env")
	v.SetDefault("strict", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; using defaults
	}

	// CLI flags take highest priority
	if flagConfigDir != "" {
		v.Set("config_dir", flagConfigDir)
	}
	if flagEnvFile != "" {
		v.Set("env_file", flagEnvFile)
	}
	if flagLogLevel != "" {
		v.Set("log.level", flagLogLevel)
	}
	if flagLogFormat != "" {
		v.Set("log.format", flagLogFormat)
	}
	if flagStrict {
		v.Set("strict", true)
	}

	return &AppConfig{
		ConfigDir: v.GetString("config_dir"),
		EnvFile:   v.GetString("env_file"),
		Strict:    v.GetBool("strict"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}, nil
}

// loadEnvFile loads a dotenv file into the process environment. Variables
// already set win; a missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
