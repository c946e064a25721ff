package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/flowtop/flowtop/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (default ~/.config/flowtop/config.toml)")
	prefsPath := flag.String("prefs", "", "override preferences path (default ~/.config/flowtop/prefs.toml)")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (defaults to 30s)")
	debugLog := flag.String("debug-log", "", "write debug logs to this file")
	flag.Parse()

	// The TUI owns the terminal, so log output has to go elsewhere.
	if *debugLog != "" {
		f, err := tea.LogToFile(*debugLog, "flowtop")
		if err != nil {
			fmt.Fprintf(os.Stderr, "flowtop: open debug log: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
	} else {
		log.SetOutput(io.Discard)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "flowtop: %v\n", err)
		return 1
	}
	return 0
}
