package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the connection and polling settings for a FileFlows server.
type Config struct {
	Host      string
	Port      int
	SSL       bool
	VerifySSL bool

	// Username and Password select the authenticated endpoint family.
	// Leave both empty to monitor via the public endpoints only.
	Username string
	Password string

	PollSeconds    int
	TimeoutSeconds int
}

const (
	defaultConfigPath = "~/.config/flowtop/config.toml"

	defaultHost           = "localhost"
	defaultPort           = 19200
	defaultPollSeconds    = 30
	defaultTimeoutSeconds = 10
)

// Load locates and parses the flowtop config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	// verify_ssl defaults to true, so it has to be a pointer to tell
	// "absent" apart from an explicit false.
	var raw struct {
		Host           string `toml:"host"`
		Port           int    `toml:"port"`
		SSL            bool   `toml:"ssl"`
		VerifySSL      *bool  `toml:"verify_ssl"`
		Username       string `toml:"username"`
		Password       string `toml:"password"`
		PollSeconds    int    `toml:"poll_seconds"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if host := strings.TrimSpace(raw.Host); host != "" {
		cfg.Host = host
	}
	if raw.Port > 0 {
		cfg.Port = raw.Port
	}
	cfg.SSL = raw.SSL
	if raw.VerifySSL != nil {
		cfg.VerifySSL = *raw.VerifySSL
	}
	cfg.Username = strings.TrimSpace(raw.Username)
	cfg.Password = raw.Password
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	if raw.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = raw.TimeoutSeconds
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		Host:           defaultHost,
		Port:           defaultPort,
		VerifySSL:      true,
		PollSeconds:    defaultPollSeconds,
		TimeoutSeconds: defaultTimeoutSeconds,
	}
}

// BaseURL assembles the server root URL from host, port and SSL settings.
func (c Config) BaseURL() string {
	scheme := "http"
	if c.SSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// PollInterval returns the poll interval as a duration.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return defaultPollSeconds * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

// Timeout returns the per-request timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
