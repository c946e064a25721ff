package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/flowtop/flowtop/internal/config"
	"github.com/flowtop/flowtop/internal/fileflows"
	"github.com/flowtop/flowtop/internal/prefs"
	"github.com/flowtop/flowtop/internal/state"
	"github.com/flowtop/flowtop/internal/ui"
)

// Options configure the flowtop application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/flowtop/prefs.toml
	PollEvery  int    // seconds; zero uses the configured or default interval
}

// Run boots the flowtop TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := fileflows.NewClient(fileflows.Options{
		BaseURL:            cfg.BaseURL(),
		Username:           cfg.Username,
		Password:           cfg.Password,
		Timeout:            cfg.Timeout(),
		InsecureSkipVerify: cfg.SSL && !cfg.VerifySSL,
	})
	if err != nil {
		return fmt.Errorf("init fileflows client: %w", err)
	}

	// Reachability probe against the public status endpoint. A failure is
	// not fatal: the UI shows the offline state and the poller keeps retrying.
	if err := client.TestConnection(ctx); err != nil {
		log.Printf("startup probe: %v", err)
	}

	store := &state.Store{}

	interval := cfg.PollInterval()
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// Start background poller
	StartPoller(ctx, store, client, interval)

	// Do initial refresh to populate store before UI starts
	refresh(ctx, store, client)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
