// Package fileflows provides an HTTP client for the FileFlows server API.
//
// # Overview
//
// The client abstracts the server's HTTP surface into typed fetch
// operations and manages bearer authentication transparently. One call to
// FetchSnapshot produces the full Snapshot a poll cycle needs.
//
// # Endpoint families
//
// FileFlows exposes two parallel API surfaces:
//
//   - /api/*: the full surface. Requires a bearer token when the server
//     has authentication enabled.
//   - /remote/info/*: a reduced public surface offering basic queue and
//     storage metrics without authentication.
//
// Whether credentials are configured is the sole branching signal: a
// cycle uses exactly one family, never both. Calling the public family
// alongside the authenticated one produces spurious "unauthorized" noise
// in the server log, so the selection is made once per aggregate fetch
// rather than per call site.
//
// # Authentication
//
// POST /authorize with a JSON username/password body returns the raw
// token string. The client caches it for 23 hours — under the server's
// 24 hour session lifetime — and attaches it as "Authorization: Bearer"
// on every authenticated request. A 401 drops the cached token, logs in
// once more and retries the request exactly once. Logins are serialized
// behind a mutex so concurrent fetches cannot race into duplicate
// /authorize calls. The token lives only in memory.
//
// # Error handling
//
// Three sentinel errors cover the taxonomy, tested with errors.Is:
//
//   - ErrConnect: dial failures, timeouts, DNS problems
//   - ErrAuth: rejected credentials or a twice-rejected token
//   - ErrUnavailable: endpoints this server version does not serve
//
// Inside FetchSnapshot, individual resource failures are absorbed: the
// failing section stays empty and the rest of the snapshot is returned.
// Only a failed login or a fully unreachable server fails the cycle.
//
// # Capability cache
//
// Server versions disagree on which endpoints exist (/api/system/info in
// particular comes and goes). A 404 is remembered per client and the
// endpoint is skipped on later cycles instead of re-probed every poll.
//
// # Zero values
//
// A queue of zero files is a real measurement. Numeric fields decode to
// typed zeros, and pointer-typed snapshot sections are how "not fetched"
// is expressed — never a zeroed-out struct.
package fileflows
