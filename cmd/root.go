// Package cmd contains all CLI commands for techpulse
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/petergeorgioutech/techpulse-news/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagOutput  string
	flagVerbose bool

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "techpulse",
	Short: "Static tech news page generator",
	Long: `techpulse pulls the latest headlines from NewsAPI across three fixed
categories (AI, developer tools, tech industry) and renders them into a
single self-contained HTML page.

Running techpulse with no arguments fetches every category and rewrites
the page in place.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging()
	},
	RunE: runUpdate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "", "path for the generated page (default: index.html next to the executable)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose diagnostics on stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(openCmd)
}

func initLogging() {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("techpulse %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

// Execute runs the root command and exits non-zero on failure. The
// missing-credential path prints its own remediation text, so it is the
// one error that gets no extra Error line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, config.ErrNoAPIKey) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
