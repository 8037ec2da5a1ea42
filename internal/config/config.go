package config

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultAddresses are connectivity-check hosts used when no target is given
var DefaultAddresses = []string{
	"connectivitycheck.gstatic.com",
	"www.msftconnecttest.com",
	"cloudflare.com",
	"google.com",
	"microsoft.com",
	"1.1.1.1",
}

// Config represents the root configuration
type Config struct {
	Target TargetConfig `mapstructure:"target"`
	Probe  ProbeConfig  `mapstructure:"probe"`
	Report ReportConfig `mapstructure:"report"`
	Stats  StatsConfig  `mapstructure:"stats"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// TargetConfig is the host and port being measured
type TargetConfig struct {
	Address string `mapstructure:"address" json:"address"`
	Port    int    `mapstructure:"port" json:"port"`
}

// ProbeConfig holds connect attempt settings
type ProbeConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// ReportConfig holds rendering settings
type ReportConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	TUI      bool          `mapstructure:"tui"`
}

// StatsConfig holds series settings
type StatsConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// ServerConfig holds the optional API server settings. An empty address
// disables the server.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
}

// New returns a viper instance with every default set and PINGPONG_*
// environment variables bound
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("target.address", "")
	v.SetDefault("target.port", 80)
	v.SetDefault("probe.timeout", "1s")
	v.SetDefault("report.interval", "200ms")
	v.SetDefault("report.tui", false)
	v.SetDefault("stats.capacity", 50000)
	v.SetDefault("server.address", "")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.verbose", false)

	v.SetEnvPrefix("pingpong")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"timeout":    "probe.timeout",
	"interval":   "report.interval",
	"capacity":   "stats.capacity",
	"tui":        "report.tui",
	"api":        "server.address",
	"log-format": "log.format",
	"verbose":    "log.verbose",
}

// BindFlags binds the known flags present in fs to their configuration keys
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Load reads the optional config file into v and decodes the result.
// An empty configPath skips the file.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Target.Address = NormalizeAddress(cfg.Target.Address)
	if cfg.Target.Address == "" {
		cfg.Target.Address = PickAddress(rand.IntN)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// NormalizeAddress trims and lower-cases a host name
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// PickAddress selects one of DefaultAddresses using intn, which must return
// a value in [0, n)
func PickAddress(intn func(n int) int) string {
	return DefaultAddresses[intn(len(DefaultAddresses))]
}

// Validate checks configuration for required fields and valid values
func (c *Config) Validate() error {
	if c.Target.Address == "" {
		return fmt.Errorf("target.address is required")
	}
	if c.Target.Port < 1 || c.Target.Port > 65535 {
		return fmt.Errorf("target.port must be between 1 and 65535, got %d", c.Target.Port)
	}
	if c.Probe.Timeout <= 0 {
		return fmt.Errorf("probe.timeout must be positive")
	}
	if c.Report.Interval < 0 {
		return fmt.Errorf("report.interval must not be negative")
	}
	if c.Stats.Capacity < 1 {
		return fmt.Errorf("stats.capacity must be at least 1")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", c.Log.Format)
	}
	return nil
}
