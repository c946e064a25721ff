package app

import (
	"context"
	"log"
	"time"

	"github.com/flowtop/flowtop/internal/fileflows"
	"github.com/flowtop/flowtop/internal/state"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, backing off exponentially while the server is unreachable.
// It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client *fileflows.Client, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(ctx, store, client)
			timer.Reset(calculateBackoff(store.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// refresh runs one poll cycle. Cycles never overlap: the poller waits for the
// previous fetch to finish before arming the next timer.
func refresh(ctx context.Context, store *state.Store, client *fileflows.Client) {
	snap, err := client.FetchSnapshot(ctx)
	if err != nil {
		store.Update(nil, err)
		log.Printf("poll failed: %v", err)
		return
	}
	store.Update(snap, nil)
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff. Zero failures means the regular interval.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
