package fileflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("nas.local:19200")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != "nas.local:19200" {
		t.Fatalf("host = %q, want nas.local:19200", u.Host)
	}

	u, err = parseBaseURL("https://example.com:8585/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("   "); err == nil {
		t.Fatalf("parseBaseURL accepted empty input")
	}
}

// authServer is a test double for a FileFlows server with authentication
// enabled. It counts logins and requests per path and rejects any /api
// request that does not carry the current token.
type authServer struct {
	t *testing.T

	mu       sync.Mutex
	logins   int
	requests map[string]int
	token    string
	handlers map[string]http.HandlerFunc
}

func newAuthServer(t *testing.T) (*authServer, *httptest.Server) {
	s := &authServer{
		t:        t,
		requests: make(map[string]int),
		handlers: make(map[string]http.HandlerFunc),
	}
	server := httptest.NewServer(s)
	t.Cleanup(server.Close)
	return s, server
}

func (s *authServer) handle(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[path] = h
}

func (s *authServer) count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[path]
}

func (s *authServer) loginCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logins
}

func (s *authServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests[r.URL.Path]++
	if r.URL.Path == "/authorize" {
		s.logins++
		s.token = fmt.Sprintf("token-%d", s.logins)
		token := s.token
		s.mu.Unlock()
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`"` + token + `"`))
		return
	}
	token := s.token
	handler := s.handlers[r.URL.Path]
	s.mu.Unlock()

	if got := r.Header.Get("Authorization"); got != "Bearer "+token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if handler == nil {
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}

func newTestClient(t *testing.T, baseURL, username, password string) *Client {
	t.Helper()
	c, err := NewClient(Options{BaseURL: baseURL, Username: username, Password: password})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestClient_TokenReusedAcrossFetches(t *testing.T) {
	t.Parallel()

	srv, server := newAuthServer(t)
	srv.handle("/api/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ServerStatus{Processed: 412})
	})

	c := newTestClient(t, server.URL, "admin", "secret")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := c.FetchStatus(ctx); err != nil {
			t.Fatalf("FetchStatus %d returned error: %v", i, err)
		}
	}

	if got := srv.loginCount(); got != 1 {
		t.Fatalf("login count = %d, want 1 for 5 fetches inside validity window", got)
	}
	if got := srv.count("/api/status"); got != 5 {
		t.Fatalf("status requests = %d, want 5", got)
	}
}

func TestClient_ExpiredTokenTriggersRelogin(t *testing.T) {
	t.Parallel()

	srv, server := newAuthServer(t)
	srv.handle("/api/status", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ServerStatus{})
	})

	c := newTestClient(t, server.URL, "admin", "secret")
	current := time.Now()
	c.now = func() time.Time { return current }

	ctx := context.Background()
	if _, err := c.FetchStatus(ctx); err != nil {
		t.Fatalf("FetchStatus returned error: %v", err)
	}

	// Just inside the window: no new login.
	current = current.Add(tokenLifetime - time.Minute)
	if _, err := c.FetchStatus(ctx); err != nil {
		t.Fatalf("FetchStatus returned error: %v", err)
	}
	if got := srv.loginCount(); got != 1 {
		t.Fatalf("login count = %d, want 1 before expiry", got)
	}

	// Past the window: the cached token must not be reused.
	current = current.Add(2 * time.Minute)
	if _, err := c.FetchStatus(ctx); err != nil {
		t.Fatalf("FetchStatus returned error: %v", err)
	}
	if got := srv.loginCount(); got != 2 {
		t.Fatalf("login count = %d, want 2 after expiry", got)
	}
}

func TestClient_RetriesOnceAfter401(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	logins := 0
	statusCalls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.URL.Path {
		case "/authorize":
			logins++
			_, _ = w.Write([]byte(fmt.Sprintf("token-%d", logins)))
		case "/api/status":
			statusCalls++
			// First request is rejected as if the token had been
			// revoked server-side; the retry succeeds.
			if statusCalls == 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			_ = json.NewEncoder(w).Encode(ServerStatus{Queue: 3})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "admin", "secret")
	status, err := c.FetchStatus(context.Background())
	if err != nil {
		t.Fatalf("FetchStatus returned error: %v", err)
	}
	if status.Queue != 3 {
		t.Fatalf("queue = %d, want 3", status.Queue)
	}

	mu.Lock()
	defer mu.Unlock()
	if logins != 2 {
		t.Fatalf("logins = %d, want 2 (initial + one relogin)", logins)
	}
	if statusCalls != 2 {
		t.Fatalf("status calls = %d, want 2 (original + one retry)", statusCalls)
	}
}

func TestClient_SecondConsecutive401Fails(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	logins := 0
	statusCalls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.URL.Path {
		case "/authorize":
			logins++
			_, _ = w.Write([]byte("token"))
		case "/api/status":
			statusCalls++
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "admin", "secret")
	_, err := c.FetchStatus(context.Background())
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("FetchStatus error = %v, want ErrAuth", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if logins != 2 {
		t.Fatalf("logins = %d, want 2 (no login loop)", logins)
	}
	if statusCalls != 2 {
		t.Fatalf("status calls = %d, want 2 (no retry loop)", statusCalls)
	}
}

func TestClient_LoginRejectedIsAuthNotConnect(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "admin", "wrong")
	err := c.Login(context.Background())
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("Login error = %v, want ErrAuth", err)
	}
	if errors.Is(err, ErrConnect) {
		t.Fatalf("Login error classified as connectivity failure: %v", err)
	}
}

func TestClient_UnreachableServerIsConnectError(t *testing.T) {
	t.Parallel()

	// Port 1 on localhost is essentially guaranteed closed.
	c := newTestClient(t, "127.0.0.1:1", "admin", "secret")
	err := c.Login(context.Background())
	if !errors.Is(err, ErrConnect) {
		t.Fatalf("Login error = %v, want ErrConnect", err)
	}

	public := newTestClient(t, "127.0.0.1:1", "", "")
	if err := public.TestConnection(context.Background()); !errors.Is(err, ErrConnect) {
		t.Fatalf("TestConnection error = %v, want ErrConnect", err)
	}
}

func TestClient_NoBearerHeaderWithoutCredentials(t *testing.T) {
	t.Parallel()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(ServerStatus{Queue: 1700})
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "", "")
	status, err := c.FetchRemoteStatus(context.Background())
	if err != nil {
		t.Fatalf("FetchRemoteStatus returned error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization header = %q, want empty without credentials", gotAuth)
	}
	if status.Queue != 1700 {
		t.Fatalf("queue = %d, want 1700", status.Queue)
	}
}

func TestClient_ZeroCountsSurviveDecoding(t *testing.T) {
	t.Parallel()

	srv, server := newAuthServer(t)
	srv.handle("/api/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"queue":0,"processing":0,"processed":412}`))
	})

	c := newTestClient(t, server.URL, "admin", "secret")
	status, err := c.FetchStatus(context.Background())
	if err != nil {
		t.Fatalf("FetchStatus returned error: %v", err)
	}
	if status.Queue != 0 || status.Processing != 0 {
		t.Fatalf("zero counts mangled: %+v", status)
	}
	if status.Processed != 412 {
		t.Fatalf("processed = %d, want 412", status.Processed)
	}
}

func TestClient_CapabilityCacheSkipsMissingEndpoint(t *testing.T) {
	t.Parallel()

	srv, server := newAuthServer(t)
	// No handler for /api/system/info: the authServer 404s it.

	c := newTestClient(t, server.URL, "admin", "secret")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.FetchSystemInfo(ctx)
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("FetchSystemInfo %d error = %v, want ErrUnavailable", i, err)
		}
	}

	if got := srv.count("/api/system/info"); got != 1 {
		t.Fatalf("system info probed %d times, want 1", got)
	}
}

func TestClient_VersionAcceptsBothShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"quoted string", `"24.08.1.3421"`, "24.08.1.3421"},
		{"bare string", `24.08.1.3421`, "24.08.1.3421"},
		{"object", `{"Version":"25.01.0.100"}`, "25.01.0.100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			c := newTestClient(t, server.URL, "", "")
			got, err := c.FetchRemoteVersion(context.Background())
			if err != nil {
				t.Fatalf("FetchRemoteVersion returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("version = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_DecodeErrorIsReported(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not-json"))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL, "", "")
	_, err := c.FetchRemoteStatus(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchRemoteStatus error = %v, want decode response error", err)
	}
}
