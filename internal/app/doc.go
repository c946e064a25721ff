// Package app provides the orchestration layer for flowtop.
//
// # Overview
//
// This package wires together configuration, polling, state management and
// the UI to create the complete flowtop TUI experience. It is the
// composition root where all dependencies are initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load flowtop configuration from ~/.config/flowtop/config.toml
//  2. Initialize the HTTP client for the FileFlows server API
//  3. Create a shared state.Store for UI and poller coordination
//  4. Launch the background poller goroutine for continuous updates
//  5. Run one synchronous refresh so the UI starts with data
//  6. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()         Read flowtop config
//	       ├─────> fileflows.NewClient() Create HTTP client
//	       ├─────> state.Store{}         Shared state container
//	       ├─────> StartPoller()         Launch background updates
//	       └─────> ui.Run()              Start TUI (blocks)
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> FetchSnapshot()                    │
//	│  └─> store.Update()  (atomic)           │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller runs continuously at a configurable interval (default 30
// seconds, matching the server's own dashboard cadence). Each cycle fetches
// one complete snapshot and replaces the store contents atomically. Cycles
// never overlap: the next timer is armed only after the current fetch
// returns.
//
// While the server is unreachable the interval doubles per consecutive
// failure, capped at five minutes, so a downed server is not hammered but
// recovery is still noticed quickly after the first success.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file unreadable or invalid
//   - Client initialization failure (bad server URL)
//
// Recoverable errors (logged, polling continues):
//   - Poll cycle failures of any kind
//
// A failed poll keeps the previous snapshot on screen; the UI header shows
// the error and flips to offline after two consecutive failures.
package app
