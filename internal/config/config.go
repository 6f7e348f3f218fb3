package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Timetable TimetableConfig `mapstructure:"timetable"`
	Hijri     HijriConfig     `mapstructure:"hijri"`
	Signal    SignalConfig    `mapstructure:"signal"`
	Daemon    DaemonConfig    `mapstructure:"daemon"`
	Display   DisplayConfig   `mapstructure:"display"`
}

// TimetableConfig locates the prayer timetable source
type TimetableConfig struct {
	File string `mapstructure:"file"` // CSV file: Date column + event time columns (24-hour HH:MM)
}

// HijriConfig controls Hijri date resolution
type HijriConfig struct {
	OffsetDays int `mapstructure:"offset_days"` // Manual correction in days, may be negative
}

// SignalConfig controls the audible signal at event times
type SignalConfig struct {
	PlayerCommand string `mapstructure:"player_command"` // e.g. "aplay"; empty disables playback
	SoundFile     string `mapstructure:"sound_file"`     // Passed as the command's final argument
	PlayTimeout   string `mapstructure:"play_timeout"`   // Kill a hung player after this duration
}

// DaemonConfig represents daemon mode configuration
type DaemonConfig struct {
	PollInterval string `mapstructure:"poll_interval"` // Tick interval; must not exceed 1s
	LogFile      string `mapstructure:"log_file"`
	LogLevel     string `mapstructure:"log_level"`
	SystemTray   bool   `mapstructure:"system_tray"` // Show system tray icon (Windows only)
}

// DisplayConfig holds text shown by display consumers
type DisplayConfig struct {
	Announcement string `mapstructure:"announcement"` // Optional notice line, e.g. Eid salah details
}

// maxPollInterval is the coarsest polling allowed: anything slower can
// miss the one-second signal window.
const maxPollInterval = time.Second

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.masjid-clock")
		v.AddConfigPath("/etc/masjid-clock")
	}

	// Read environment variables
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Timetable.File == "" {
		return fmt.Errorf("timetable.file is required")
	}

	if c.Daemon.PollInterval != "" {
		interval, err := time.ParseDuration(c.Daemon.PollInterval)
		if err != nil {
			return fmt.Errorf("daemon.poll_interval is not a duration: %w", err)
		}
		if interval <= 0 {
			return fmt.Errorf("daemon.poll_interval must be positive")
		}
		if interval > maxPollInterval {
			return fmt.Errorf("daemon.poll_interval must not exceed %s (coarser polling can miss signal windows)", maxPollInterval)
		}
	}

	if c.Signal.PlayerCommand != "" && c.Signal.SoundFile == "" {
		return fmt.Errorf("signal.sound_file is required when signal.player_command is set")
	}

	return nil
}

// GetPollInterval returns the daemon tick interval
func (c *DaemonConfig) GetPollInterval() time.Duration {
	if c.PollInterval == "" {
		return time.Second
	}
	interval, err := time.ParseDuration(c.PollInterval)
	if err != nil || interval <= 0 || interval > maxPollInterval {
		return time.Second
	}
	return interval
}

// GetPlayTimeout returns how long a playback command may run
func (c *SignalConfig) GetPlayTimeout() time.Duration {
	if c.PlayTimeout == "" {
		return 5 * time.Minute
	}
	timeout, err := time.ParseDuration(c.PlayTimeout)
	if err != nil || timeout <= 0 {
		return 5 * time.Minute
	}
	return timeout
}

// ExpandEnvVars expands environment variables in config paths
func (c *Config) ExpandEnvVars() {
	c.Timetable.File = os.ExpandEnv(c.Timetable.File)
	c.Signal.SoundFile = os.ExpandEnv(c.Signal.SoundFile)
	c.Daemon.LogFile = os.ExpandEnv(c.Daemon.LogFile)
}
