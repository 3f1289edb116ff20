package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/calder-ross/pagemd/internal/logging"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of pagemd.`,
	Run: func(_ *cobra.Command, _ []string) {
		logger := logging.NewAt(os.Stdout, "info")
		logger.Info("pagemd",
			logging.FieldVersion, version,
			logging.FieldCommit, commit,
			logging.FieldBuilt, date,
		)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
