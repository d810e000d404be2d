package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/autobrr/transmission-cleanup/pkg/config"
	"github.com/autobrr/transmission-cleanup/pkg/logger"
	"github.com/autobrr/transmission-cleanup/pkg/runtime"
)

var (
	// Global flags
	flagLogLevel   = 0
	flagConfigFile string
	flagLogFile    string
	flagDryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "transmission-cleanup",
	Short: "Maintenance for a Transmission daemon's incomplete and torrents directories",
	Long: `A CLI tool to remove orphaned incomplete downloads, stale .torrent metadata files
and finished torrents from a Transmission daemon.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.GetLogger("app").WithError(err).Error("Failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", config.DefaultPath(), "Config file")
	rootCmd.PersistentFlags().StringVarP(&flagLogFile, "log", "l", "", "Log file")
	rootCmd.PersistentFlags().CountVarP(&flagLogLevel, "verbose", "v", "Verbose level")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Dry run mode")
}

func initCore() (*config.Configuration, error) {
	if err := logger.Init(flagLogFile, flagLogLevel); err != nil {
		return nil, errors.WithMessage(err, "initialize logger")
	}

	log := logger.GetLogger("app")
	log.Debugf("Starting transmission-cleanup %s", runtime.Version)

	cfg, err := config.Load(flagConfigFile)
	if err != nil {
		return nil, errors.WithMessage(err, "load configuration")
	}

	if flagLogLevel > 0 {
		logger.ShowUsing()
		cfg.ShowUsing(log)
	}

	if flagDryRun {
		log.Warn("Dry-run enabled, nothing will be removed")
	}

	return cfg, nil
}
