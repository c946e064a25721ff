package fileflows

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Snapshot is the full set of metrics one poll cycle produces. Each cycle
// replaces the previous snapshot wholesale; there is no incremental merge.
// Pointer sections distinguish "not fetched" from a legitimate zero value.
type Snapshot struct {
	Authenticated bool
	FetchedAt     time.Time

	Version         string
	UpdateAvailable bool
	Paused          bool

	Status     *ServerStatus
	FileStatus *LibraryFileStatus
	System     *SystemInfo
	Nvidia     *NvidiaInfo

	Shrinkage []ShrinkageGroup
	Nodes     []Node
	Libraries []Library
	Flows     []Flow
	Plugins   []Plugin
	Tasks     []Task
	Workers   []Worker

	Upcoming         []LibraryFile
	RecentlyFinished []LibraryFile
}

// FetchSnapshot runs one aggregate fetch. Exactly one endpoint family is
// used per cycle: the authenticated /api family when credentials are
// configured, the public /remote/info family otherwise — never both.
// Individual resource failures leave that section empty and never abort
// the cycle; a failed login or a fully unreachable server does.
func (c *Client) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Authenticated: c.Authenticated(),
		FetchedAt:     c.now(),
	}
	if snap.Authenticated {
		// Log in up front so a credential problem surfaces as ErrAuth
		// for the whole cycle instead of as fourteen quiet gaps.
		if _, err := c.bearerToken(ctx); err != nil {
			return nil, err
		}
		if err := c.fetchAuthenticated(ctx, snap); err != nil {
			return nil, err
		}
		return snap, nil
	}
	if err := c.fetchPublic(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// gatherer runs resource fetches concurrently, absorbing per-resource
// failures. If nothing at all succeeded the first error stands for the
// cycle, so an unreachable server still reports as one.
type gatherer struct {
	group *errgroup.Group
	ctx   context.Context

	mu       sync.Mutex
	okCount  int
	firstErr error
}

func newGatherer(ctx context.Context) *gatherer {
	g, gctx := errgroup.WithContext(ctx)
	return &gatherer{group: g, ctx: gctx}
}

func (g *gatherer) run(name string, fetch func(context.Context) error) {
	g.group.Go(func() error {
		err := fetch(g.ctx)
		if err != nil {
			if errors.Is(err, ErrUnavailable) {
				// Missing capability, not a failure.
				return nil
			}
			g.mu.Lock()
			if g.firstErr == nil {
				g.firstErr = err
			}
			g.mu.Unlock()
			log.Printf("%s fetch failed: %v", name, err)
			return nil
		}
		g.mu.Lock()
		g.okCount++
		g.mu.Unlock()
		return nil
	})
}

func (g *gatherer) wait() error {
	_ = g.group.Wait() // closures always return nil
	if g.okCount == 0 && g.firstErr != nil {
		return g.firstErr
	}
	return nil
}

func (c *Client) fetchAuthenticated(ctx context.Context, snap *Snapshot) error {
	g := newGatherer(ctx)
	var mu sync.Mutex

	g.run("status", func(ctx context.Context) error {
		v, err := c.FetchStatus(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Status = v
		mu.Unlock()
		return nil
	})
	g.run("version", func(ctx context.Context) error {
		v, err := c.FetchVersion(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Version = v
		mu.Unlock()
		return nil
	})
	g.run("system info", func(ctx context.Context) error {
		v, err := c.FetchSystemInfo(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.System = v
		mu.Unlock()
		return nil
	})
	g.run("settings status", func(ctx context.Context) error {
		v, err := c.FetchSettingsStatus(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Paused = v.IsPaused
		mu.Unlock()
		return nil
	})
	g.run("storage saved", func(ctx context.Context) error {
		v, err := c.FetchStorageSaved(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Shrinkage = v
		mu.Unlock()
		return nil
	})
	g.run("file status", func(ctx context.Context) error {
		v, err := c.FetchLibraryFileStatus(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.FileStatus = v
		mu.Unlock()
		return nil
	})
	g.run("nodes", func(ctx context.Context) error {
		v, err := c.FetchNodes(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Nodes = v
		mu.Unlock()
		return nil
	})
	g.run("libraries", func(ctx context.Context) error {
		v, err := c.FetchLibraries(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Libraries = v
		mu.Unlock()
		return nil
	})
	g.run("flows", func(ctx context.Context) error {
		v, err := c.FetchFlows(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Flows = v
		mu.Unlock()
		return nil
	})
	g.run("plugins", func(ctx context.Context) error {
		v, err := c.FetchPlugins(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Plugins = v
		mu.Unlock()
		return nil
	})
	g.run("tasks", func(ctx context.Context) error {
		v, err := c.FetchTasks(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Tasks = v
		mu.Unlock()
		return nil
	})
	g.run("workers", func(ctx context.Context) error {
		v, err := c.FetchWorkers(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Workers = v
		mu.Unlock()
		return nil
	})
	g.run("upcoming files", func(ctx context.Context) error {
		v, err := c.FetchUpcoming(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Upcoming = v
		mu.Unlock()
		return nil
	})
	g.run("recently finished", func(ctx context.Context) error {
		v, err := c.FetchRecentlyFinished(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.RecentlyFinished = v
		mu.Unlock()
		return nil
	})
	g.run("gpu", func(ctx context.Context) error {
		v, err := c.FetchNvidia(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Nvidia = v
		mu.Unlock()
		return nil
	})

	return g.wait()
}

func (c *Client) fetchPublic(ctx context.Context, snap *Snapshot) error {
	g := newGatherer(ctx)
	var mu sync.Mutex

	g.run("remote status", func(ctx context.Context) error {
		v, err := c.FetchRemoteStatus(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Status = v
		mu.Unlock()
		return nil
	})
	g.run("shrinkage groups", func(ctx context.Context) error {
		v, err := c.FetchShrinkageGroups(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Shrinkage = v
		mu.Unlock()
		return nil
	})
	g.run("update available", func(ctx context.Context) error {
		v, err := c.FetchUpdateAvailable(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.UpdateAvailable = v
		mu.Unlock()
		return nil
	})
	g.run("remote version", func(ctx context.Context) error {
		v, err := c.FetchRemoteVersion(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		snap.Version = v
		mu.Unlock()
		return nil
	})

	return g.wait()
}

// Derived metrics. These mirror what the server's own dashboard computes.

// QueueSize prefers the authenticated file-status breakdown and falls back
// to the public queue counter.
func (s *Snapshot) QueueSize() int {
	if s.FileStatus != nil {
		return s.FileStatus.QueueSize()
	}
	if s.Status != nil {
		return s.Status.Queue
	}
	return 0
}

// StorageSavedBytes sums the per-library savings.
func (s *Snapshot) StorageSavedBytes() int64 {
	var total int64
	for _, g := range s.Shrinkage {
		total += g.SavedBytes()
	}
	return total
}

// StorageSavedPercent returns savings relative to the original size.
func (s *Snapshot) StorageSavedPercent() float64 {
	var original, final int64
	for _, g := range s.Shrinkage {
		original += g.OriginalSize
		final += g.FinalSize
	}
	if original <= 0 {
		return 0
	}
	return float64(original-final) / float64(original) * 100
}

// EnabledNodes counts enabled processing nodes.
func (s *Snapshot) EnabledNodes() int {
	n := 0
	for _, node := range s.Nodes {
		if node.Enabled {
			n++
		}
	}
	return n
}

// TotalRunners sums flow runners across enabled nodes.
func (s *Snapshot) TotalRunners() int {
	n := 0
	for _, node := range s.Nodes {
		if node.Enabled {
			n += node.FlowRunners
		}
	}
	return n
}

// EnabledLibraries counts enabled libraries.
func (s *Snapshot) EnabledLibraries() int {
	n := 0
	for _, lib := range s.Libraries {
		if lib.Enabled {
			n++
		}
	}
	return n
}

// EnabledFlows counts enabled flows.
func (s *Snapshot) EnabledFlows() int {
	n := 0
	for _, flow := range s.Flows {
		if flow.Enabled {
			n++
		}
	}
	return n
}

// IsProcessing reports whether any file is currently being worked on.
func (s *Snapshot) IsProcessing() bool {
	if len(s.Workers) > 0 {
		return true
	}
	return s.Status != nil && s.Status.Processing > 0
}
