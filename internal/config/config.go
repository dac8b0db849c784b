// Package config resolves server settings from defaults, an optional YAML
// file, a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         string      `yaml:"port"`
	Mode         string      `yaml:"mode"`
	LogLevel     string      `yaml:"log_level"`
	ContentPath  string      `yaml:"content_path"`
	DatabasePath string      `yaml:"database_path"`
	Watch        bool        `yaml:"watch"`
	Admin        AdminConfig `yaml:"admin"`
	Scene        SceneConfig `yaml:"scene"`
	// Retention bounds how long visitor analytics are kept.
	Retention       time.Duration `yaml:"retention"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type SceneConfig struct {
	FPS          int `yaml:"fps"`
	PosterWidth  int `yaml:"poster_width"`
	PosterHeight int `yaml:"poster_height"`
}

func Default() Config {
	return Config{
		Port:     "8080",
		Mode:     "release",
		LogLevel: "info",
		Admin:    AdminConfig{Username: "admin", Password: "admin123"},
		Scene: SceneConfig{
			FPS:          30,
			PosterWidth:  1200,
			PosterHeight: 630,
		},
		Retention:       365 * 24 * time.Hour,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds a Config. path may be empty; a missing .env file is ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("decoding config %s: %w", path, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Port)
	str("GIN_MODE", &c.Mode)
	str("LOG_LEVEL", &c.LogLevel)
	str("CONTENT_PATH", &c.ContentPath)
	str("DATABASE_PATH", &c.DatabasePath)
	str("ADMIN_USERNAME", &c.Admin.Username)
	str("ADMIN_PASSWORD", &c.Admin.Password)

	if v, ok := lookup("CONTENT_WATCH"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CONTENT_WATCH: %w", err)
		}
		c.Watch = b
	}
	if v, ok := lookup("SCENE_FPS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SCENE_FPS: %w", err)
		}
		c.Scene.FPS = n
	}
	if v, ok := lookup("ANALYTICS_RETENTION"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ANALYTICS_RETENTION: %w", err)
		}
		c.Retention = d
	}
	return nil
}

func (c Config) Validate() error {
	var problems []string
	if _, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("port %q is not a number", c.Port))
	}
	switch c.Mode {
	case "debug", "release", "test":
	default:
		problems = append(problems, fmt.Sprintf("mode %q must be debug, release or test", c.Mode))
	}
	if c.Scene.FPS < 1 || c.Scene.FPS > 120 {
		problems = append(problems, fmt.Sprintf("scene fps %d out of range 1..120", c.Scene.FPS))
	}
	if c.Scene.PosterWidth < 1 || c.Scene.PosterHeight < 1 {
		problems = append(problems, "poster size must be positive")
	}
	if c.Retention <= 0 {
		problems = append(problems, "retention must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string { return ":" + c.Port }

// AnalyticsEnabled reports whether a database is configured.
func (c Config) AnalyticsEnabled() bool { return c.DatabasePath != "" }

// DefaultAdminCredentials reports whether the built-in development
// credentials are still in use.
func (c Config) DefaultAdminCredentials() bool {
	d := Default().Admin
	return c.Admin.Username == d.Username || c.Admin.Password == d.Password
}
