// Package state provides thread-safe state management for flowtop.
//
// # Overview
//
// This package implements a simple but thread-safe store for sharing the
// latest FileFlows snapshot between the background poller and the UI. It
// acts as the coordination point where polling updates meet rendering.
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producer (Poller):             Consumer (UI):
//	┌─────────────────┐           ┌─────────────────┐
//	│ FetchSnapshot() │           │                 │
//	│       ↓         │           │                 │
//	│ store.Update()  │──────────→│ store.Snapshot()│
//	│       ↓         │  (mutex)  │       ↓         │
//	│   repeat...     │           │   render UI     │
//	└─────────────────┘           └─────────────────┘
//
// # Update Semantics
//
// A successful poll replaces the stored data wholesale; there is no
// incremental merge, so stale entries can never linger. A failed poll keeps
// the previous data and records the error:
//
//	// Success: replace everything
//	store.Update(snap, nil)
//	→ Data = snap, LastError = nil, ConsecutiveFailures = 0
//
//	// Failure: keep old data, record error
//	store.Update(nil, err)
//	→ Data = <unchanged>, LastError = err, ConsecutiveFailures++
//
// This ensures the UI always has the most recent successful data to display
// while also being informed of polling failures. After two consecutive
// failures the snapshot reports IsOffline, which the UI surfaces in the
// header instead of flapping on a single dropped poll.
//
// # Concurrency Model
//
// The Store uses a readers-writer lock: Update takes the write lock, Snapshot
// the read lock. Each poll cycle builds a fresh fileflows.Snapshot and hands
// its pointer to Update; published snapshots are never mutated afterwards, so
// sharing the pointer with readers is safe without deep copying.
//
// The zero-value Store is ready to use; Snapshot returns a zero Snapshot
// until the first Update.
package state
