package fileflows

import (
	"context"
	"fmt"
	"net/http"
)

// Control operations. All of these hit the authenticated /api family; in
// public mode they fail with ErrAuth on the server side, which the UI
// avoids by hiding the actions entirely.

// Pause pauses processing. Zero minutes pauses indefinitely.
func (c *Client) Pause(ctx context.Context, minutes int) error {
	var body any
	if minutes > 0 {
		body = map[string]int{"Minutes": minutes}
	}
	return c.do(ctx, http.MethodPost, "/api/system/pause", body, nil)
}

// Resume resumes processing. The server treats -1 minutes as resume.
func (c *Client) Resume(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/system/pause", map[string]int{"Minutes": -1}, nil)
}

// Restart restarts the FileFlows server.
func (c *Client) Restart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/system/restart", nil, nil)
}

// SetNodeState enables or disables a processing node.
func (c *Client) SetNodeState(ctx context.Context, uid string, enabled bool) error {
	return c.do(ctx, http.MethodPut, statePath("node", uid, enabled), nil, nil)
}

// SetLibraryState enables or disables a library.
func (c *Client) SetLibraryState(ctx context.Context, uid string, enabled bool) error {
	return c.do(ctx, http.MethodPut, statePath("library", uid, enabled), nil, nil)
}

// SetFlowState enables or disables a flow.
func (c *Client) SetFlowState(ctx context.Context, uid string, enabled bool) error {
	return c.do(ctx, http.MethodPut, statePath("flow", uid, enabled), nil, nil)
}

// RescanLibraries triggers a rescan of the given libraries.
func (c *Client) RescanLibraries(ctx context.Context, uids []string) error {
	if len(uids) == 0 {
		return c.RescanEnabledLibraries(ctx)
	}
	return c.do(ctx, http.MethodPut, "/api/library/rescan", uids, nil)
}

// RescanEnabledLibraries triggers a rescan of every enabled library.
func (c *Client) RescanEnabledLibraries(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/library/rescan-enabled", nil, nil)
}

// ReprocessFiles queues the given files for reprocessing.
func (c *Client) ReprocessFiles(ctx context.Context, uids []string) error {
	return c.do(ctx, http.MethodPost, "/api/library-file/reprocess", uids, nil)
}

// UnholdFiles releases the given files from hold.
func (c *Client) UnholdFiles(ctx context.Context, uids []string) error {
	return c.do(ctx, http.MethodPost, "/api/library-file/unhold", uids, nil)
}

// RunTask runs a scheduled task immediately.
func (c *Client) RunTask(ctx context.Context, uid string) error {
	return c.do(ctx, http.MethodPost, "/api/task/run/"+uid, nil, nil)
}

// AbortWorker aborts a running flow executor.
func (c *Client) AbortWorker(ctx context.Context, uid string) error {
	return c.do(ctx, http.MethodDelete, "/api/worker/"+uid, nil, nil)
}

func statePath(kind, uid string, enabled bool) string {
	return fmt.Sprintf("/api/%s/state/%s?enable=%t", kind, uid, enabled)
}
