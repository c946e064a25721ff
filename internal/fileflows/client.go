package fileflows

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultUserAgent = "flowtop/0.1"
	defaultTimeout   = 10 * time.Second

	// FileFlows sessions last 24 hours; renew the cached token an hour
	// early so a poll never goes out with a token about to lapse.
	tokenLifetime = 23 * time.Hour
)

// Error taxonomy. Callers test with errors.Is; the setup path uses the
// distinction to report bad credentials instead of a generic failure.
var (
	// ErrConnect marks network-level failures: refused, timeout, DNS.
	ErrConnect = errors.New("cannot connect")
	// ErrAuth marks rejected credentials or a rejected bearer token.
	ErrAuth = errors.New("authentication failed")
	// ErrUnavailable marks endpoints this server version does not serve.
	ErrUnavailable = errors.New("endpoint unavailable")
)

// Options configure a Client.
type Options struct {
	// BaseURL is the server root, e.g. "http://nas:19200".
	BaseURL string
	// Username and Password enable the authenticated /api endpoint
	// family. Leave both empty to use the public /remote/info family.
	Username string
	Password string
	// Timeout bounds every outbound request. Zero uses the default.
	Timeout time.Duration
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// Client talks to the FileFlows server HTTP API. It owns the bearer token
// lifecycle; the token never leaves the client and is never persisted.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	username  string
	password  string

	// authMu serializes the check-expiry-then-login sequence so at most
	// one login request is ever outstanding.
	authMu      sync.Mutex
	token       string
	tokenExpiry time.Time

	// Server versions disagree on which endpoints exist. Paths that
	// returned 404 are remembered and skipped on later cycles.
	capMu       sync.Mutex
	unavailable map[string]bool

	now func() time.Time // overridable in tests
}

// NewClient builds a Client from options.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	if opts.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{
		baseURL:     base,
		http:        httpClient,
		userAgent:   defaultUserAgent,
		username:    strings.TrimSpace(opts.Username),
		password:    opts.Password,
		unavailable: make(map[string]bool),
		now:         time.Now,
	}, nil
}

// Authenticated reports whether credentials are configured. It decides
// which endpoint family every fetch cycle uses.
func (c *Client) Authenticated() bool {
	return c.username != "" && c.password != ""
}

// Login forces a fresh login and caches the resulting token.
func (c *Client) Login(ctx context.Context) error {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	return c.loginLocked(ctx)
}

// bearerToken returns a valid cached token, logging in only when none is
// cached or the cached one has expired. Safe to call before every request.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}
	if err := c.loginLocked(ctx); err != nil {
		return "", err
	}
	return c.token, nil
}

// loginLocked performs the login request. Caller holds authMu.
func (c *Client) loginLocked(ctx context.Context) error {
	payload, err := json.Marshal(map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return fmt.Errorf("encode login: %w", err)
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: "/authorize"})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w: %v", ErrConnect, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login returned status %d: %w", resp.StatusCode, ErrAuth)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read login response: %w", err)
	}
	// The server replies with the raw token string, sometimes quoted.
	token := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if token == "" {
		return fmt.Errorf("login returned empty token: %w", ErrAuth)
	}
	c.token = token
	c.tokenExpiry = c.now().Add(tokenLifetime)
	return nil
}

// invalidateToken drops the cached token, but only if it is still the one
// that was rejected; a concurrent relogin may already have replaced it.
func (c *Client) invalidateToken(stale string) {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	if c.token == stale {
		c.token = ""
		c.tokenExpiry = time.Time{}
	}
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodGet, path, nil, dest)
}

// do issues one request, attaching the bearer token when credentials are
// configured. On a 401 it discards the cached token, logs in once more and
// retries exactly once; a second rejection surfaces as ErrAuth.
func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("parse path %q: %w", path, err)
	}
	reqURL := c.baseURL.ResolveReference(rel)

	for attempt := 0; ; attempt++ {
		var payload io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("encode request: %w", err)
			}
			payload = bytes.NewReader(data)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		var token string
		if c.Authenticated() {
			token, err = c.bearerToken(ctx)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w: %v", method, path, ErrConnect, err)
		}

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			_ = resp.Body.Close()
			if c.Authenticated() && attempt == 0 {
				c.invalidateToken(token)
				continue
			}
			return fmt.Errorf("api %s returned status 401: %w", path, ErrAuth)
		case http.StatusForbidden:
			_ = resp.Body.Close()
			return fmt.Errorf("api %s returned status 403: %w", path, ErrAuth)
		}
		return decodeResponse(resp, path, dest)
	}
}

func decodeResponse(resp *http.Response, path string, dest any) error {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("api %s: %w", path, ErrUnavailable)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	// Some endpoints (version, server log) reply with plain text.
	if text, ok := dest.(*string); ok {
		*text = strings.TrimSpace(string(data))
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// getCapability is get with a per-client memory of 404s, so endpoints a
// server version lacks are probed once instead of on every poll.
func (c *Client) getCapability(ctx context.Context, path string, dest any) error {
	c.capMu.Lock()
	skip := c.unavailable[path]
	c.capMu.Unlock()
	if skip {
		return fmt.Errorf("api %s: %w", path, ErrUnavailable)
	}
	err := c.get(ctx, path, dest)
	if errors.Is(err, ErrUnavailable) {
		c.capMu.Lock()
		c.unavailable[path] = true
		c.capMu.Unlock()
	}
	return err
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("server url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server url %q has no host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
