// Package config provides configuration loading for the git-evolve application.
// Settings come from the environment with sensible defaults; command-line
// flags override whatever is loaded here.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/akolsi/git-evolve/internal/domain"
)

// Environment variable names. All but NO_COLOR are namespaced under the
// GIT_EVOLVE prefix by viper.
const (
	// EnvPrefix namespaces all application environment variables.
	EnvPrefix = "GIT_EVOLVE"

	// EnvNoColor is the conventional cross-tool color kill switch; any
	// non-empty value disables color.
	EnvNoColor = "NO_COLOR"
)

// Configuration keys (resolved as GIT_EVOLVE_<KEY> in the environment).
const (
	KeyWorkers    = "workers"
	KeyLogLevel   = "log_level"
	KeyLogAppName = "log_app_name"
	KeyNoColor    = "no_color"
)

// Default values.
const (
	DefaultLogLevel   = "warn"
	DefaultLogAppName = "git-evolve"
)

// Config holds application configuration.
type Config struct {
	// Workers bounds the attribution worker pool.
	Workers int

	// LogLevel is the log level setting (debug, info, warn, error).
	LogLevel string

	// LogAppName is the application name for log context.
	LogAppName string

	// NoColor disables colored terminal output.
	NoColor bool
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault(KeyWorkers, domain.DefaultWorkers)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogAppName, DefaultLogAppName)
	v.SetDefault(KeyNoColor, false)

	cfg := &Config{
		Workers:    v.GetInt(KeyWorkers),
		LogLevel:   v.GetString(KeyLogLevel),
		LogAppName: v.GetString(KeyLogAppName),
		NoColor:    v.GetBool(KeyNoColor),
	}

	if os.Getenv(EnvNoColor) != "" {
		cfg.NoColor = true
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("invalid worker count %d: must be at least 1", cfg.Workers)
	}

	return cfg, nil
}
