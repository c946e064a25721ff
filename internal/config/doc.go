// Package config handles loading and parsing flowtop configuration files.
//
// # Overview
//
// This package reads flowtop's TOML configuration to discover which
// FileFlows server to monitor, how to reach it, and how often to poll.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/flowtop/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/flowtop/config.toml
//   - Server: localhost:19200, plain HTTP
//   - TLS verification: enabled (verify_ssl = true)
//   - Poll interval: 30 seconds
//   - Request timeout: 10 seconds
//
// # TOML Format
//
// Example config.toml:
//
//	host = "nas.local"
//	port = 19200
//	ssl = false
//	verify_ssl = true
//	username = "admin"
//	password = "secret"
//	poll_seconds = 30
//	timeout_seconds = 10
//
// All fields are optional. When username and password are both set, flowtop
// authenticates against the server and monitors the full API; otherwise it
// uses the reduced public endpoints. verify_ssl only matters with ssl = true
// and exists for servers running on self-signed certificates.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults) and TOML parsing errors. A missing
// config file is NOT an error: flowtop works out-of-the-box against a local
// server with authentication disabled.
//
// The config package is read-only and stateless. It loads configuration once
// at startup and returns an immutable Config struct.
package config
