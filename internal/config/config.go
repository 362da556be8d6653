package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/voxpupuli/puppet-networkmanager/internal/collector"
	"github.com/voxpupuli/puppet-networkmanager/internal/executor"
	"github.com/voxpupuli/puppet-networkmanager/internal/logging"
	"github.com/voxpupuli/puppet-networkmanager/internal/nmcli"
)

const (
	configName = "nm-agent"
	envPrefix  = "NM_AGENT"
	configDir  = "/etc/nm-agent"
)

// Config holds all agent configuration
type Config struct {
	// External tools
	NmcliPath          string        `mapstructure:"nmcli_path" json:"nmcli_path" yaml:"nmcli_path"`
	NetworkManagerPath string        `mapstructure:"networkmanager_path" json:"networkmanager_path" yaml:"networkmanager_path"`
	CommandTimeout     time.Duration `mapstructure:"command_timeout" json:"command_timeout" yaml:"command_timeout"`

	// Facts
	EnabledFacts []string `mapstructure:"enabled_facts" json:"enabled_facts" yaml:"enabled_facts"`
	OutputFormat string   `mapstructure:"output_format" json:"output_format" yaml:"output_format"`

	// API server
	ListenAddr string `mapstructure:"listen_addr" json:"listen_addr" yaml:"listen_addr"`

	// Logging
	LogLevel      string `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	LogFormat     string `mapstructure:"log_format" json:"log_format" yaml:"log_format"`
	LogFile       string `mapstructure:"log_file" json:"log_file" yaml:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb" json:"log_max_size_mb" yaml:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups" json:"log_max_backups" yaml:"log_max_backups"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days" json:"log_max_age_days" yaml:"log_max_age_days"`
	LogCompress   bool   `mapstructure:"log_compress" json:"log_compress" yaml:"log_compress"`
}

// Default returns configuration with sensible defaults
func Default() *Config {
	return &Config{
		NmcliPath:          nmcli.DefaultBinary,
		NetworkManagerPath: nmcli.DefaultDaemonBinary,
		CommandTimeout:     executor.DefaultTimeout,
		EnabledFacts:       collector.FactNames(),
		OutputFormat:       "json",
		ListenAddr:         "127.0.0.1:9273",
		LogLevel:           "info",
		LogFormat:          "text",
		LogMaxSizeMB:       50,
		LogMaxBackups:      3,
		LogMaxAgeDays:      28,
		LogCompress:        true,
	}
}

// Load reads configuration from file and environment. An explicit
// cfgFile must exist; otherwise nm-agent.yaml is looked up in
// /etc/nm-agent and the working directory, and a missing file is fine.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}

// SaveTo writes the configuration as YAML to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	for key, value := range c.values() {
		v.Set(key, value)
	}
	return v.WriteConfigAs(path)
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		File:       c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   c.LogCompress,
	}
}

func (c *Config) values() map[string]interface{} {
	return map[string]interface{}{
		"nmcli_path":          c.NmcliPath,
		"networkmanager_path": c.NetworkManagerPath,
		"command_timeout":     c.CommandTimeout.String(),
		"enabled_facts":       c.EnabledFacts,
		"output_format":       c.OutputFormat,
		"listen_addr":         c.ListenAddr,
		"log_level":           c.LogLevel,
		"log_format":          c.LogFormat,
		"log_file":            c.LogFile,
		"log_max_size_mb":     c.LogMaxSizeMB,
		"log_max_backups":     c.LogMaxBackups,
		"log_max_age_days":    c.LogMaxAgeDays,
		"log_compress":        c.LogCompress,
	}
}

// setDefaults registers every key so environment variables are picked
// up by Unmarshal even when no file sets them.
func setDefaults(v *viper.Viper, cfg *Config) {
	for key, value := range cfg.values() {
		v.SetDefault(key, value)
	}
}
