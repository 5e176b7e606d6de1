// Package config loads user defaults for the kaiser CLI from ~/.kaiser/config.json and the
// KAISER_* environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvConfigDir = "KAISER_CONFIG_DIR"
	EnvBoard     = "KAISER_BOARD"
	EnvBackend   = "KAISER_BACKEND"
	EnvDSN       = "KAISER_DSN"
	EnvNamespace = "KAISER_NAMESPACE"
	EnvUser      = "KAISER_USER"

	fileName = "config.json"
)

// Config holds defaults. Empty fields mean "not set"; Resolve fills backend locations.
type Config struct {
	Board     string `json:"board,omitempty"`
	Backend   string `json:"backend,omitempty"`
	DSN       string `json:"dsn,omitempty"`
	Namespace string `json:"namespace,omitempty"`
	Username  string `json:"username,omitempty"`
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.kaiser).
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kaiser"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config file. A missing file is an empty config.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, fileName+".*.tmp", path, b, 0o600)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

// ApplyEnv returns c with every non-empty KAISER_* variable taking precedence.
func (c Config) ApplyEnv() Config {
	c.Board = envOr(EnvBoard, c.Board)
	c.Backend = envOr(EnvBackend, c.Backend)
	c.DSN = envOr(EnvDSN, c.DSN)
	c.Namespace = envOr(EnvNamespace, c.Namespace)
	c.Username = envOr(EnvUser, c.Username)
	return c
}

// DefaultDSN is where a local backend keeps its data when no DSN is configured.
// Network backends have no default.
func DefaultDSN(backend string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", "sqlite":
		return filepath.Join(dir, "kaiser.db"), nil
	case "file":
		return filepath.Join(dir, "boards"), nil
	default:
		return "", nil
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Keys lists the settable config keys in display order.
var Keys = []string{"board", "backend", "dsn", "namespace", "username"}

// Set assigns one key by name. An empty value clears it.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "board":
		c.Board = value
	case "backend":
		c.Backend = value
	case "dsn":
		c.DSN = value
	case "namespace":
		c.Namespace = value
	case "username", "user":
		c.Username = value
	default:
		return fmt.Errorf("unknown config key: %s (expected %s)", key, strings.Join(Keys, "|"))
	}
	return nil
}
