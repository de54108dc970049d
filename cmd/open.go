package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/petergeorgioutech/techpulse-news/internal/browser"
	"github.com/petergeorgioutech/techpulse-news/internal/config"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the generated page in your browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		path := flagOutput
		if path == "" {
			path, err = cfg.OutputPath()
			if err != nil {
				return fmt.Errorf("resolving output path: %w", err)
			}
		}

		if err := browser.OpenFile(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("no generated page at %s (run techpulse first)", path)
			}
			return err
		}
		fmt.Printf("Opened %s\n", path)
		return nil
	},
}
