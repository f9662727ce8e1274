// Package config loads nodetop's startup configuration. Precedence is
// flags > NODETOP_* environment variables > config file > defaults; flag
// binding happens in the cli package, everything else here.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/nodetop/nodetop/internal/errors"
)

const (
	// GlobalConfigDir is the directory for the config file, under $HOME.
	GlobalConfigDir = ".config/nodetop"
	// ConfigFileName is the config file base name (nodetop.yaml).
	ConfigFileName = "nodetop"

	// DefaultScheduler is used when no backend is configured.
	DefaultScheduler = "slurm"
	// DefaultPartition is used when no partition is configured.
	DefaultPartition = "batch"
	// DefaultInterval is the auto-refresh interval.
	DefaultInterval = 30 * time.Second
)

// Config is the resolved startup configuration.
type Config struct {
	Scheduler string
	Partition string
	Interval  time.Duration
	User      string
}

// Init wires defaults, environment binding, and the optional config file
// into the given viper instance. Called once from the cli package before
// flags are bound.
func Init(v *viper.Viper) {
	v.SetDefault("scheduler", DefaultScheduler)
	v.SetDefault("partition", DefaultPartition)
	v.SetDefault("interval", DefaultInterval.String())
	v.SetDefault("user", "")

	v.SetEnvPrefix("NODETOP")
	v.AutomaticEnv()

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, GlobalConfigDir))
	}
}

// Load reads the configuration out of the viper instance. A missing
// config file is fine; a malformed one is a configuration error.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check that ~/"+GlobalConfigDir+"/"+ConfigFileName+".yaml is valid YAML.")
		}
	}

	interval, err := time.ParseDuration(v.GetString("interval"))
	if err != nil {
		return Config{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid refresh interval: "+v.GetString("interval"),
			"Use a duration like 30s, 10s, or 1m.")
	}

	cfg := Config{
		Scheduler: v.GetString("scheduler"),
		Partition: v.GetString("partition"),
		Interval:  interval,
		User:      v.GetString("user"),
	}

	if cfg.User == "" {
		cfg.User = os.Getenv("USER")
	}
	if cfg.User == "" {
		cfg.User = "unknown"
	}

	return cfg, nil
}
