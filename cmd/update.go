package cmd

import (
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/autobrr/transmission-cleanup/pkg/runtime"
)

const repoSlug = "autobrr/transmission-cleanup"

var flagUpdateCheck bool

var updateCmd = &cobra.Command{
	Use:           "update",
	Short:         "Update transmission-cleanup",
	Long:          `Update transmission-cleanup to the latest release.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repoSlug))
		if err != nil {
			return errors.Wrap(err, "detect latest release")
		} else if !found {
			return errors.Errorf("no release found for %s", repoSlug)
		}

		if latest.LessOrEqual(runtime.Version) {
			fmt.Fprintf(out, "Current version %s is the latest\n", runtime.Version)
			return nil
		}

		if flagUpdateCheck {
			fmt.Fprintf(out, "Version %s is available (current: %s)\n", latest.Version(), runtime.Version)
			return nil
		}

		release, err := selfupdate.UpdateSelf(ctx, runtime.Version, selfupdate.ParseSlug(repoSlug))
		if err != nil {
			return errors.Wrap(err, "could not update binary")
		}

		fmt.Fprintf(out, "Successfully updated to version: %s\n", release.Version())
		return nil
	},
}

func init() {
	updateCmd.Flags().BoolVar(&flagUpdateCheck, "check", false, "Only check whether an update is available")

	updateCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`)

	rootCmd.AddCommand(updateCmd)
}
