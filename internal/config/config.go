package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is the config file looked up in the working directory.
	DefaultFile = ".storectl.yaml"

	// DotEnvFile is loaded if present. Its values never override variables
	// already set in the environment.
	DotEnvFile = ".env"

	// Default configuration values
	DefaultBaseURL  = "http://localhost:8081"
	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "warn"
)

// Config holds the resolved client configuration.
type Config struct {
	// BaseURL is the root of the store REST API.
	BaseURL string `yaml:"base_url" env:"STORE_API_BASE_URL"`

	// Timeout bounds each API request.
	Timeout time.Duration `yaml:"timeout" env:"STORE_API_TIMEOUT"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"STORECTL_LOG_LEVEL"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  DefaultBaseURL,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
	}
}

// Loader resolves a Config from defaults, a YAML file, a .env file and the
// environment, in that order.
type Loader struct {
	// Path is the YAML file to read. Empty means DefaultFile, which may be
	// absent. An explicit Path must exist.
	Path string

	// DotEnv is the .env file to read. Empty means DotEnvFile.
	DotEnv string

	// Environ replaces the process environment when non-nil.
	Environ map[string]string
}

// Load resolves the configuration. Partial config files are merged with
// defaults.
func (l Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := l.loadFile(cfg); err != nil {
		return nil, err
	}

	environ, err := l.environ()
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

func (l Loader) loadFile(cfg *Config) error {
	path := l.Path
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && l.Path == "" {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (l Loader) environ() (map[string]string, error) {
	environ := l.Environ
	if environ == nil {
		environ = env.ToMap(os.Environ())
	} else {
		copied := make(map[string]string, len(environ))
		for k, v := range environ {
			copied[k] = v
		}
		environ = copied
	}

	path := l.DotEnv
	if path == "" {
		path = DotEnvFile
	}
	dotenv, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return environ, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	for k, v := range dotenv {
		if _, ok := environ[k]; !ok {
			environ[k] = v
		}
	}
	return environ, nil
}

// Validate trims trailing slashes from BaseURL and checks that it is an
// absolute http(s) URL and that Timeout is positive.
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s: must be positive", c.Timeout)
	}
	return nil
}
