package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/go-tangra/go-tangra-sysinfo/internal/logger"
	"github.com/go-tangra/go-tangra-sysinfo/internal/snapshot"
)

// Config holds the agent configuration.
type Config struct {
	Interval      time.Duration   `mapstructure:"interval"`
	Timeout       time.Duration   `mapstructure:"timeout"`
	Collect       snapshot.Policy `mapstructure:"collect"`
	Log           logger.Config   `mapstructure:"log"`
	Journal       Journal         `mapstructure:"journal"`
	MetricsListen string          `mapstructure:"metrics_listen"`
}

// Journal configures the run journal.
type Journal struct {
	Path          string        `mapstructure:"path"`
	RetentionDays int           `mapstructure:"retention_days"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

// Retention returns the journal retention as a duration; zero keeps
// everything.
func (j Journal) Retention() time.Duration {
	return time.Duration(j.RetentionDays) * 24 * time.Hour
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("interval", "5s")
	v.SetDefault("timeout", "30s")
	for _, key := range []string{"cpu", "memory_banks", "memory_summary", "platform", "disk_drives", "disk_partitions", "video_controllers"} {
		v.SetDefault("collect."+key, true)
	}
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("journal.path", "sysinfo.db")
	v.SetDefault("journal.retention_days", 0)
	v.SetDefault("journal.purge_interval", "24h")
	v.SetDefault("metrics_listen", "")
}

// Load reads configuration from file and environment. Environment
// variables use the SYSINFO_ prefix with dots replaced by underscores, for
// example SYSINFO_COLLECT_VIDEO_CONTROLLERS=false.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("sysinfo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath(`C:\ProgramData\sysinfo`)
	}

	setDefaults(v)

	v.SetEnvPrefix("SYSINFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the scheduler cannot run with.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Journal.RetentionDays < 0 {
		return fmt.Errorf("journal.retention_days must not be negative, got %d", c.Journal.RetentionDays)
	}
	if c.Journal.RetentionDays > 0 && c.Journal.PurgeInterval <= 0 {
		return fmt.Errorf("journal.purge_interval must be positive when retention is set, got %s", c.Journal.PurgeInterval)
	}
	return nil
}
