package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/autobrr/transmission-cleanup/pkg/runtime"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints the version, commit hash, and build date for the transmission-cleanup binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Version:    %s\n", runtime.Version)
		if runtime.GitCommit != "" {
			fmt.Fprintf(out, "Commit:     %s\n", runtime.GitCommit)
		}
		if buildTime := formatBuildTime(runtime.Timestamp); buildTime != "" {
			fmt.Fprintf(out, "Build Time: %s\n", buildTime)
		}
	},
	DisableFlagsInUseLine: true,
}

// formatBuildTime renders a unix timestamp set at build time, falling back to the raw value.
func formatBuildTime(ts string) string {
	if ts == "" || ts == "unknown" {
		return ""
	}

	unixTime, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ts + " (raw)"
	}

	return time.Unix(unixTime, 0).UTC().Format(time.RFC3339)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
