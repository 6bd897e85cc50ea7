package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/stocklearn/internal/app"
	"github.com/abhisek/stocklearn/internal/auth"
	"github.com/abhisek/stocklearn/internal/learner"
	"github.com/abhisek/stocklearn/internal/lesson"
	"github.com/abhisek/stocklearn/internal/logging"
	"github.com/abhisek/stocklearn/internal/market"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	log, closer, err := logging.New(logging.Options{
		File:       cfg.Log.File,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		log = logging.Discard()
	} else {
		defer closer.Close()
	}

	catalog, err := lesson.LoadOrDefault(cfg.Lessons.Catalog)
	if err != nil {
		return fmt.Errorf("load lessons: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	events := st.EventRepo()

	client := auth.NewClient(auth.Options{
		BaseURL:    cfg.Auth.BaseURL,
		Timeout:    cfg.Auth.Timeout,
		Retries:    uint(cfg.Auth.Retries),
		RetryDelay: cfg.Auth.RetryDelay,
	})
	defer client.Close()

	skipSplash, _ := cmd.Flags().GetBool("no-splash")

	log.Info("starting",
		"version", version,
		"lessons", catalog.Len(),
		"auth_base_url", cfg.Auth.BaseURL,
	)

	return app.Run(ctx, app.Options{
		Catalog:    catalog,
		State:      learner.New(),
		Market:     market.Mock{},
		Auth:       auth.WithLogging(client, events, log),
		Events:     events,
		Logger:     log,
		SkipSplash: skipSplash,
	})
}
