package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/username/masjid-clock/internal/config"
	"github.com/username/masjid-clock/internal/daemon"
	"github.com/username/masjid-clock/internal/player"
	"github.com/username/masjid-clock/internal/timetable"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "masjid-clock",
		Short: "Masjid prayer clock",
		Long:  "Track daily prayer times from a timetable file, resolve the Hijri date, count down to the next adhan or iqamah, and fire the signal at the exact event instant",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Daemon.LogFile != "" {
				logger, err = initFileLogger(cfg.Daemon.LogFile, cfg.Daemon.LogLevel)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(nextCmd())
	rootCmd.AddCommand(todayCmd())
	rootCmd.AddCommand(hijriCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the prayer clock daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadData()
			if err != nil {
				return err
			}

			d := daemon.New(store, cfg, newPlayer(cfg), logger)
			return d.Start()
		},
	}
}

// loadData loads config and the timetable. A missing timetable is a
// degraded state, not a startup failure.
func loadData() (*config.Config, *timetable.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()

	store := timetable.New(cfg.Timetable.File, logger)
	if err := store.Load(); err != nil {
		logger.Warn("Failed to load timetable, starting with no data",
			zap.Error(err))
	}

	return cfg, store, nil
}

func newPlayer(cfg *config.Config) player.Player {
	if cfg.Signal.PlayerCommand == "" {
		return player.NewNopPlayer(logger)
	}
	return player.NewCommandPlayer(
		cfg.Signal.PlayerCommand,
		cfg.Signal.SoundFile,
		cfg.Signal.GetPlayTimeout(),
		logger,
	)
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
