package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmLog "github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"
)

type LayoutBackend string

const (
	LayoutBackendSQLite LayoutBackend = "sqlite"
	LayoutBackendRemote LayoutBackend = "remote"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Grid     GridConfig     `toml:"grid"`
	Layout   LayoutConfig   `toml:"layout"`
	Server   ServerConfig   `toml:"server"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"` // debug | info | warn | error
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type GridConfig struct {
	ClickHistoryCap   int      `toml:"click_history_cap"`
	DataMode          string   `toml:"data_mode"` // client | server_paged
	SuppressedColumns []string `toml:"suppressed_columns"`
	// SinglePrimaryClick selects only the clicked row on the first unmodified click.
	SinglePrimaryClick bool `toml:"single_primary_click"`
	Assertions         bool `toml:"assertions"`
}

type LayoutConfig struct {
	Backend     LayoutBackend `toml:"backend"`
	RemoteURL   string        `toml:"remote_url"`
	LoadTimeout string        `toml:"load_timeout"`
	SaveTimeout string        `toml:"save_timeout"`
	ViewID      string        `toml:"view_id"`
}

type ServerConfig struct {
	HTTPBind    string `toml:"http_bind"`
	APIEndpoint string `toml:"api_endpoint"`
	MCPEndpoint string `toml:"mcp_endpoint"`
}

func Default(dbPath string) Config {
	return Config{
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".gridline/log",
			},
		},
		Grid: GridConfig{
			ClickHistoryCap:   2,
			DataMode:          "client",
			SuppressedColumns: []string{"notes"},
			Assertions:        false,
		},
		Layout: LayoutConfig{
			Backend:     LayoutBackendSQLite,
			LoadTimeout: "2s",
			SaveTimeout: "5s",
			ViewID:      "orders",
		},
		Server: ServerConfig{
			HTTPBind:    "127.0.0.1:8080",
			APIEndpoint: "/api/v1",
			MCPEndpoint: "/mcp",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}

	if _, err := charmLog.ParseLevel(strings.ToLower(strings.TrimSpace(c.Logging.Level))); err != nil {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if c.Logging.DevFile.Enabled && strings.TrimSpace(c.Logging.DevFile.Dir) == "" {
		return errors.New("logging.dev_file.dir is required when enabled")
	}

	if c.Grid.ClickHistoryCap < 1 {
		return errors.New("grid.click_history_cap must be >= 1")
	}
	switch strings.TrimSpace(c.Grid.DataMode) {
	case "", "client", "server_paged":
	default:
		return fmt.Errorf("invalid grid.data_mode: %q", c.Grid.DataMode)
	}
	seen := map[string]struct{}{}
	for idx, field := range c.Grid.SuppressedColumns {
		field = strings.TrimSpace(field)
		if field == "" {
			return fmt.Errorf("grid.suppressed_columns[%d] is empty", idx)
		}
		if _, ok := seen[field]; ok {
			return fmt.Errorf("grid.suppressed_columns[%d] is duplicated: %s", idx, field)
		}
		seen[field] = struct{}{}
	}

	switch c.Layout.Backend {
	case LayoutBackendSQLite:
	case LayoutBackendRemote:
		raw := strings.TrimSpace(c.Layout.RemoteURL)
		if raw == "" {
			return errors.New("layout.remote_url is required for the remote backend")
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid layout.remote_url: %q", c.Layout.RemoteURL)
		}
	default:
		return fmt.Errorf("invalid layout.backend: %q", c.Layout.Backend)
	}
	if _, err := parseTimeout("layout.load_timeout", c.Layout.LoadTimeout); err != nil {
		return err
	}
	if _, err := parseTimeout("layout.save_timeout", c.Layout.SaveTimeout); err != nil {
		return err
	}
	if strings.TrimSpace(c.Layout.ViewID) == "" {
		return errors.New("layout.view_id is required")
	}

	if strings.TrimSpace(c.Server.HTTPBind) == "" {
		return errors.New("server.http_bind is required")
	}
	api := "/" + strings.Trim(strings.TrimSpace(c.Server.APIEndpoint), "/")
	mcp := "/" + strings.Trim(strings.TrimSpace(c.Server.MCPEndpoint), "/")
	if api == mcp {
		return fmt.Errorf("server.api_endpoint and server.mcp_endpoint must differ: %q", api)
	}

	return nil
}

// LoadTimeoutDuration returns the parsed layout load timeout; zero means the service default.
func (c LayoutConfig) LoadTimeoutDuration() time.Duration {
	d, _ := parseTimeout("layout.load_timeout", c.LoadTimeout)
	return d
}

// SaveTimeoutDuration returns the parsed layout save timeout; zero means the service default.
func (c LayoutConfig) SaveTimeoutDuration() time.Duration {
	d, _ := parseTimeout("layout.save_timeout", c.SaveTimeout)
	return d
}

func parseTimeout(key, raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
