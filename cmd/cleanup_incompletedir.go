package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/autobrr/transmission-cleanup/pkg/logger"
	"github.com/autobrr/transmission-cleanup/pkg/notification"
	"github.com/autobrr/transmission-cleanup/pkg/reconcile"
)

var cleanupIncompleteDirCmd = &cobra.Command{
	Use:   "cleanup-incompletedir",
	Short: "Remove orphaned entries from the incomplete directory",
	Long:  `This command removes files and folders in the incomplete_dir that no torrent of the daemon references.`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		cfg, err := initCore()
		if err != nil {
			return err
		}

		log := logger.GetLogger("incomplete")

		c, err := connect(ctx, log, cfg)
		if err != nil {
			return err
		}

		summary, err := reconcile.IncompleteDir(ctx, log, c, cfg.IncompleteDir, reconcileOptions(cfg))
		if err != nil {
			return err
		}

		return report{
			title:  "Incomplete Directory",
			noun:   "orphans",
			action: notification.ActionOrphan,
			start:  start,
		}.finish(ctx, log, cfg, c, summary)
	},
}

func init() {
	rootCmd.AddCommand(cleanupIncompleteDirCmd)
}
