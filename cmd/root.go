// Package cmd implements the CLI commands for PageMD using Cobra.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/calder-ross/pagemd/internal/config"
	"github.com/calder-ross/pagemd/internal/logging"
)

var (
	flagDebug  bool
	flagConfig string

	// cfg holds file-level settings; flags override per field.
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "pagemd",
	Short: "PageMD — convert web pages into Markdown and derived formats",
	Long: `PageMD converts web pages into Markdown in a single pass, no DOM involved,
and renders the result as Markdown, PDF, JSON, or embeddings.

Usage:
  pagemd convert <url|file> [flags]`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagDebug {
			logging.SetLevel("debug")
		}
		if flagConfig != "" {
			loaded, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to YAML config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error("command failed", logging.FieldError, err)
		os.Exit(1)
	}
}
