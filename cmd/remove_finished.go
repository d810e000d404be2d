package cmd

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/autobrr/transmission-cleanup/pkg/config"
	"github.com/autobrr/transmission-cleanup/pkg/expression"
	"github.com/autobrr/transmission-cleanup/pkg/logger"
	"github.com/autobrr/transmission-cleanup/pkg/notification"
	"github.com/autobrr/transmission-cleanup/pkg/reconcile"
)

var removeFinishedCmd = &cobra.Command{
	Use:   "remove-finished",
	Short: "Remove finished and stopped torrents",
	Long: `This command removes torrents which are finished or stopped from the daemon.
Downloaded data is kept unless delete_data is enabled.`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		cfg, err := initCore()
		if err != nil {
			return err
		}

		log := logger.GetLogger("finished")

		exp, err := expression.Compile(&cfg.Filter)
		if err != nil {
			return errors.Wrapf(config.ErrConfigInvalid, "compile ignore expressions: %v", err)
		}
		log.Debugf("Compiled %d ignore expressions", len(exp.Ignores))

		c, err := connect(ctx, log, cfg)
		if err != nil {
			return err
		}

		summary, err := reconcile.RemoveFinished(ctx, log, c, exp, reconcileOptions(cfg))
		if err != nil {
			return err
		}

		return report{
			title:  "Finished",
			noun:   "torrents",
			action: notification.ActionRemove,
			start:  start,
		}.finish(ctx, log, cfg, c, summary)
	},
}

func init() {
	rootCmd.AddCommand(removeFinishedCmd)
}
