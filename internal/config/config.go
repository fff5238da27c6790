package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/cloudy-poro/scout/internal/progress"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvAPIBaseURL = "SCOUT_API_BASE_URL"
	EnvWSURL      = "SCOUT_WS_URL"
	EnvUseMock    = "SCOUT_USE_MOCK"
	EnvOurTeam    = "SCOUT_OUR_TEAM"
	EnvTheme      = "SCOUT_THEME"
)

// Dashboard themes, passed to glamour as standard style names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type Config struct {
	API    APIConfig    `yaml:"api"`
	Report ReportConfig `yaml:"report"`
	Server ServerConfig `yaml:"server"`
	UI     UIConfig     `yaml:"ui"`
	Log    LogConfig    `yaml:"log"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ReportConfig struct {
	WSURL            string        `yaml:"ws_url"`
	UseMock          bool          `yaml:"use_mock"`
	OurTeam          string        `yaml:"our_team"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
}

type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ScriptScale    float64       `yaml:"script_scale"`
	AnalysisDelay  time.Duration `yaml:"analysis_delay"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
}

type UIConfig struct {
	Theme string `yaml:"theme"`
}

type LogConfig struct {
	Verbosity int    `yaml:"verbosity"`
	File      string `yaml:"file"`
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		Report: ReportConfig{
			WSURL:            "ws://localhost:8000/ws/report",
			OurTeam:          "Cloud9",
			HandshakeTimeout: 45 * time.Second,
		},
		Server: ServerConfig{
			Host:          "127.0.0.1",
			Port:          8000,
			ScriptScale:   1.0,
			AnalysisDelay: 800 * time.Millisecond,
		},
		UI: UIConfig{Theme: ThemeDark},
	}
}

// Load reads path (a missing file is not an error), then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIBaseURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvWSURL); ok && v != "" {
		c.Report.WSURL = v
	}
	if v, ok := lookup(EnvOurTeam); ok && v != "" {
		c.Report.OurTeam = v
	}
	if v, ok := lookup(EnvTheme); ok && v != "" {
		c.UI.Theme = v
	}
	if v, ok := lookup(EnvUseMock); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvUseMock, err)
		}
		c.Report.UseMock = b
	}
	return nil
}

// Validate checks the settings the clients depend on.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if err := c.ProgressConfig().Validate(); err != nil {
		return err
	}
	if c.Server.ScriptScale < 0 {
		return fmt.Errorf("server.script_scale must not be negative, got %v", c.Server.ScriptScale)
	}
	if c.UI.Theme != ThemeDark && c.UI.Theme != ThemeLight {
		return fmt.Errorf("ui.theme must be %q or %q, got %q", ThemeDark, ThemeLight, c.UI.Theme)
	}
	return nil
}

// ProgressConfig returns the settings for a report progress client.
func (c *Config) ProgressConfig() progress.Config {
	return progress.Config{
		Endpoint:         c.Report.WSURL,
		Simulate:         c.Report.UseMock,
		ContextTeamName:  c.Report.OurTeam,
		HandshakeTimeout: c.Report.HandshakeTimeout,
	}
}

// ListenAddr is the host:port the simulated backend binds.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// APIBaseFromWS converts a report websocket URL (ws://host:port/ws/report)
// into the REST base on the same host (http://host:port).
func APIBaseFromWS(wsURL string) (string, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("websocket url %q has no host", wsURL)
	}
	scheme := "http"
	if u.Scheme == "wss" {
		scheme = "https"
	}
	return scheme + "://" + u.Host, nil
}
