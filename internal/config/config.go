// Package config resolves SolveWise settings. Sources are applied in order,
// each overriding the last: built-in defaults, the YAML config file, a .env
// file in the working directory, SOLVEWISE_* environment variables, and
// finally command-line flags (applied by cmd).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultEndpoint = "http://localhost:5000"

type Config struct {
	Endpoint  string `yaml:"endpoint"`
	Topic     string `yaml:"topic"`
	SessionID string `yaml:"session_id"`

	// Strict rejects replies that are neither a lesson nor a practice
	// object.
	Strict bool `yaml:"strict"`

	DBPath string    `yaml:"db_path"`
	Log    LogConfig `yaml:"log"`
	Server Server    `yaml:"server"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Server configures `solvewise serve`.
type Server struct {
	Addr          string `yaml:"addr"`
	AllowedOrigin string `yaml:"allowed_origin"`
	RequireTopic  bool   `yaml:"require_topic"`
}

func Default() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Log:      LogConfig{Level: "info"},
		Server: Server{
			Addr:          ":5000",
			AllowedOrigin: "*",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/solvewise/config.yaml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "solvewise", "config.yaml"), nil
}

// Load builds a Config from defaults, the config file, .env and the
// environment. An empty path means DefaultPath, which may be absent; an
// explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
	}

	// A missing .env is the normal case.
	_ = godotenv.Load()
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Endpoint = getEnvDefault("SOLVEWISE_ENDPOINT", c.Endpoint)
	c.Topic = getEnvDefault("SOLVEWISE_TOPIC", c.Topic)
	c.SessionID = getEnvDefault("SOLVEWISE_SESSION_ID", c.SessionID)
	c.Strict = getEnvBoolDefault("SOLVEWISE_STRICT", c.Strict)
	c.DBPath = getEnvDefault("SOLVEWISE_DB", c.DBPath)

	c.Log.File = getEnvDefault("SOLVEWISE_LOG_FILE", c.Log.File)
	c.Log.Level = getEnvDefault("SOLVEWISE_LOG_LEVEL", c.Log.Level)
	c.Log.JSON = getEnvBoolDefault("SOLVEWISE_LOG_JSON", c.Log.JSON)

	c.Server.Addr = getEnvDefault("SOLVEWISE_SERVER_ADDR", c.Server.Addr)
	c.Server.AllowedOrigin = getEnvDefault("SOLVEWISE_ALLOWED_ORIGIN", c.Server.AllowedOrigin)
	c.Server.RequireTopic = getEnvBoolDefault("SOLVEWISE_REQUIRE_TOPIC", c.Server.RequireTopic)
}

// Validate checks the fields the client and server depend on.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint %q must be an absolute http(s) URL", c.Endpoint)
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Server.Addr == "" {
		return errors.New("server address must not be empty")
	}
	return nil
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBoolDefault(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return def
}
