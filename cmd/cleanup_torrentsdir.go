package cmd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/autobrr/transmission-cleanup/pkg/config"
	"github.com/autobrr/transmission-cleanup/pkg/logger"
	"github.com/autobrr/transmission-cleanup/pkg/notification"
	"github.com/autobrr/transmission-cleanup/pkg/reconcile"
)

var cleanupTorrentsDirCmd = &cobra.Command{
	Use:   "cleanup-torrentsdir",
	Short: "Remove stale .torrent files from the torrents directory",
	Long:  `This command removes .torrent metadata files in the torrents_dir that belong to no torrent of the daemon.`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		cfg, err := initCore()
		if err != nil {
			return err
		}

		if cfg.TorrentsDir == "" {
			return errors.Wrap(config.ErrConfigInvalid, "torrents_dir must be set")
		}

		log := logger.GetLogger("torrents")

		c, err := connect(ctx, log, cfg)
		if err != nil {
			return err
		}

		summary, err := reconcile.TorrentsDir(ctx, log, c, cfg.TorrentsDir, reconcileOptions(cfg))
		if err != nil {
			return err
		}

		return report{
			title:  "Torrents Directory",
			noun:   "metadata files",
			action: notification.ActionMetadata,
			start:  start,
		}.finish(ctx, log, cfg, c, summary)
	},
}

func init() {
	rootCmd.AddCommand(cleanupTorrentsDirCmd)
}
