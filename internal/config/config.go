package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/pressgang/pressgang/internal/utils"
)

var (
	home, _           = os.UserHomeDir()
	DefaultConfigPath = filepath.Join(home, ".pressgang", "config.json")
	DefaultStatePath  = filepath.Join(home, ".pressgang", "state.db")
)

const (
	// StateBackendRemote keeps the repository state on the publishing service.
	StateBackendRemote = "remote"
	// StateBackendSQLite keeps the repository state in a local sqlite file.
	StateBackendSQLite = "sqlite"

	DefaultMaxConcurrent = 4
	DefaultMaxAttempts   = 3
)

// Formats accepted in Config.Formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Config is the explicit configuration value handed to the orchestrator.
// There is no ambient state; everything the engine needs is in here.
type Config struct {
	RepoID        string   `json:"repo_id"`
	RepoName      string   `json:"repo_name"`
	ContentDir    string   `json:"content_dir"`
	Formats       []string `json:"formats"`
	Exclude       []string `json:"exclude,omitempty"`
	ServerURL     string   `json:"server_url"`
	APIToken      string   `json:"api_token"`
	StateBackend  string   `json:"state_backend"`
	StatePath     string   `json:"state_path,omitempty"`
	MaxConcurrent int      `json:"max_concurrent,omitempty"`
	MaxAttempts   int      `json:"max_attempts,omitempty"`
	Path          string   `json:"-"`
}

// Validate normalizes paths and applies defaults. Returns the first invalid field.
func (c *Config) Validate() error {
	if c.RepoID == "" {
		return fmt.Errorf("repo_id is required")
	}
	if c.RepoName == "" {
		c.RepoName = c.RepoID
	}

	dir, err := utils.ResolvePath(c.ContentDir)
	if err != nil {
		return fmt.Errorf("content_dir: %w", err)
	}
	if !utils.DirExists(dir) {
		return fmt.Errorf("content_dir %q does not exist", dir)
	}
	c.ContentDir = dir

	if len(c.Formats) == 0 {
		c.Formats = []string{FormatMarkdown}
	}
	for _, f := range c.Formats {
		if f != FormatMarkdown && f != FormatHTML {
			return fmt.Errorf("unknown format %q", f)
		}
	}

	if err := validateServerURL(c.ServerURL); err != nil {
		return err
	}

	switch c.StateBackend {
	case "":
		c.StateBackend = StateBackendRemote
	case StateBackendRemote:
	case StateBackendSQLite:
		if c.StatePath == "" {
			c.StatePath = DefaultStatePath
		}
		statePath, err := utils.ResolvePath(c.StatePath)
		if err != nil {
			return fmt.Errorf("state_path: %w", err)
		}
		c.StatePath = statePath
	default:
		return fmt.Errorf("unknown state_backend %q", c.StateBackend)
	}

	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}

	return nil
}

func validateServerURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("server_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("server_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server_url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("server_url: missing host")
	}
	return nil
}

// Save writes the config as JSON, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Load reads a config file from disk. The caller is expected to Validate it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.Path = path
	return &cfg, nil
}
