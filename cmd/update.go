package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/petergeorgioutech/techpulse-news/internal/aggregate"
	"github.com/petergeorgioutech/techpulse-news/internal/config"
	"github.com/petergeorgioutech/techpulse-news/internal/console"
	"github.com/petergeorgioutech/techpulse-news/internal/history"
	"github.com/petergeorgioutech/techpulse-news/internal/newsapi"
	"github.com/petergeorgioutech/techpulse-news/internal/render"
	"github.com/spf13/cobra"
)

// runUpdate is the default action: fetch every category, render the page,
// overwrite the output file, and record the run.
func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	keyPath := config.DefaultKeyFilePath()
	apiKey := config.ResolveAPIKey(keyPath)
	if apiKey == "" {
		console.Errorf("Error: No API key found.")
		console.Infof("Create a file at: %s", keyPath)
		console.Infof("Or set %s environment variable.", config.KeyEnvVar)
		console.Infof("Get a free key at: https://newsapi.org/register")
		return config.ErrNoAPIKey
	}

	outputPath := flagOutput
	if outputPath == "" {
		outputPath, err = cfg.OutputPath()
		if err != nil {
			return fmt.Errorf("resolving output path: %w", err)
		}
	}
	logger.Debug("run configured", "output", outputPath, "keyfile", keyPath, "history", cfg.History.Enabled)

	started := time.Now()
	console.Headerf("Fetching news at %s...", started.Format("2006-01-02 15:04:05"))

	client := newsapi.New(apiKey)
	ctx := context.Background()

	var (
		inputs   []render.Input
		total    int
		warnings int
	)
	for _, cat := range aggregate.Categories() {
		console.Infof("  Fetching %s...", cat.Label)
		res := aggregate.Collect(ctx, client, cat)
		for _, e := range res.Errors {
			console.Warnf("%v", e)
		}
		logger.Debug("category aggregated", "category", cat.Label, "articles", len(res.Articles), "failures", len(res.Errors))
		warnings += len(res.Errors)
		total += len(res.Articles)
		inputs = append(inputs, render.Input{Label: cat.Label, Articles: res.Articles})
	}
	console.Infof("  Found %d articles", total)

	page := render.BuildPage(inputs, time.Now())
	if err := writePage(outputPath, page); err != nil {
		return err
	}
	console.Successf("Updated: %s", outputPath)

	if cfg.History.Enabled {
		recordRun(history.Run{
			StartedAt:  started,
			Duration:   time.Since(started),
			Articles:   total,
			Categories: len(page.Sections),
			Warnings:   warnings,
			Output:     outputPath,
		})
	}
	return nil
}

func writePage(path string, page render.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render.Render(f, page); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// recordRun appends to the run history. A history failure never fails the
// run that already produced its page.
func recordRun(run history.Run) {
	store, err := history.Open(config.HistoryPath())
	if err != nil {
		console.Warnf("recording run history: %v", err)
		return
	}
	defer store.Close()

	if err := store.Record(run); err != nil {
		console.Warnf("recording run history: %v", err)
	}
}
