package fileflows

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Authenticated endpoint family (/api/*).

// FetchStatus retrieves queue and processing counters.
func (c *Client) FetchStatus(ctx context.Context) (*ServerStatus, error) {
	var payload ServerStatus
	if err := c.get(ctx, "/api/status", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchVersion retrieves the server version string.
func (c *Client) FetchVersion(ctx context.Context) (string, error) {
	return c.fetchVersion(ctx, "/api/system/version")
}

// FetchSystemInfo retrieves CPU and memory figures. Some server versions
// do not serve this endpoint; a 404 is remembered and later calls return
// ErrUnavailable without touching the network.
func (c *Client) FetchSystemInfo(ctx context.Context) (*SystemInfo, error) {
	var payload SystemInfo
	if err := c.getCapability(ctx, "/api/system/info", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchSettingsStatus retrieves the pause state.
func (c *Client) FetchSettingsStatus(ctx context.Context) (*SettingsStatus, error) {
	var payload SettingsStatus
	if err := c.getCapability(ctx, "/api/settings/fileflows-status", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchStorageSaved retrieves per-library storage savings.
func (c *Client) FetchStorageSaved(ctx context.Context) ([]ShrinkageGroup, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/statistics/storage-saved", &raw); err != nil {
		return nil, err
	}
	return decodeShrinkage(raw)
}

// FetchLibraryFileStatus retrieves file counts per processing state.
func (c *Client) FetchLibraryFileStatus(ctx context.Context) (*LibraryFileStatus, error) {
	var payload LibraryFileStatus
	if err := c.get(ctx, "/api/library-file/status", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchNodes retrieves all processing nodes.
func (c *Client) FetchNodes(ctx context.Context) ([]Node, error) {
	var payload []Node
	if err := c.get(ctx, "/api/node", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchLibraries retrieves all libraries.
func (c *Client) FetchLibraries(ctx context.Context) ([]Library, error) {
	var payload []Library
	if err := c.get(ctx, "/api/library", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchFlows retrieves all flows.
func (c *Client) FetchFlows(ctx context.Context) ([]Flow, error) {
	var payload []Flow
	if err := c.get(ctx, "/api/flow", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchPlugins retrieves all plugins.
func (c *Client) FetchPlugins(ctx context.Context) ([]Plugin, error) {
	var payload []Plugin
	if err := c.get(ctx, "/api/plugin", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchTasks retrieves all scheduled tasks.
func (c *Client) FetchTasks(ctx context.Context) ([]Task, error) {
	var payload []Task
	if err := c.get(ctx, "/api/task", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchWorkers retrieves the running flow executors.
func (c *Client) FetchWorkers(ctx context.Context) ([]Worker, error) {
	var payload []Worker
	if err := c.get(ctx, "/api/worker", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchUpcoming retrieves the next files due for processing.
func (c *Client) FetchUpcoming(ctx context.Context) ([]LibraryFile, error) {
	var payload []LibraryFile
	if err := c.get(ctx, "/api/library-file/upcoming", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchRecentlyFinished retrieves the most recently finished files.
func (c *Client) FetchRecentlyFinished(ctx context.Context) ([]LibraryFile, error) {
	var payload []LibraryFile
	if err := c.get(ctx, "/api/library-file/recently-finished", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchNvidia retrieves GPU statistics. Servers without a GPU 404 here,
// which is remembered like any other missing capability.
func (c *Client) FetchNvidia(ctx context.Context) (*NvidiaInfo, error) {
	var payload NvidiaInfo
	if err := c.getCapability(ctx, "/api/nvidia/smi", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchServerLog retrieves the server log as plain text.
func (c *Client) FetchServerLog(ctx context.Context) (string, error) {
	var text string
	if err := c.getCapability(ctx, "/api/fileflows-log", &text); err != nil {
		return "", err
	}
	return text, nil
}

// Public endpoint family (/remote/info/*). No token required; offers a
// strict subset of the authenticated fields.

// FetchRemoteStatus retrieves the public status counters.
func (c *Client) FetchRemoteStatus(ctx context.Context) (*ServerStatus, error) {
	var payload ServerStatus
	if err := c.get(ctx, "/remote/info/status", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchShrinkageGroups retrieves the public per-library savings.
func (c *Client) FetchShrinkageGroups(ctx context.Context) ([]ShrinkageGroup, error) {
	var payload []ShrinkageGroup
	if err := c.get(ctx, "/remote/info/shrinkage-groups", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchUpdateAvailable reports whether a server update is available.
func (c *Client) FetchUpdateAvailable(ctx context.Context) (bool, error) {
	var payload UpdateInfo
	if err := c.get(ctx, "/remote/info/update-available", &payload); err != nil {
		return false, err
	}
	return payload.UpdateAvailable, nil
}

// FetchRemoteVersion retrieves the version string without authentication.
func (c *Client) FetchRemoteVersion(ctx context.Context) (string, error) {
	return c.fetchVersion(ctx, "/remote/info/version")
}

// TestConnection probes the public status endpoint. Used at startup to
// tell an unreachable server apart from bad credentials.
func (c *Client) TestConnection(ctx context.Context) error {
	var payload ServerStatus
	return c.get(ctx, "/remote/info/status", &payload)
}

// fetchVersion tolerates both reply shapes the server uses: a bare
// (possibly quoted) string, or {"Version": "..."}.
func (c *Client) fetchVersion(ctx context.Context, path string) (string, error) {
	var raw string
	if err := c.get(ctx, path, &raw); err != nil {
		return "", err
	}
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var info VersionInfo
		if err := json.Unmarshal([]byte(trimmed), &info); err == nil && info.Version != "" {
			return info.Version, nil
		}
	}
	return strings.Trim(trimmed, `"`), nil
}

// decodeShrinkage tolerates the bare-list and wrapped-object shapes seen
// across server versions.
func decodeShrinkage(raw json.RawMessage) ([]ShrinkageGroup, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var groups []ShrinkageGroup
	if err := json.Unmarshal(raw, &groups); err == nil {
		return groups, nil
	}
	var wrapped struct {
		Data []ShrinkageGroup `json:"Data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Data, nil
	}
	return nil, fmt.Errorf("decode storage savings: unexpected shape")
}
