package app

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"yatra/internal/api"
	"yatra/internal/services/catalog"
)

const (
	configFile = "config.yml"
	envFile    = ".env"

	EnvAPIURL     = "YATRA_API_URL"
	EnvTimeout    = "YATRA_TIMEOUT"
	EnvLogLevel   = "YATRA_LOG_LEVEL"
	EnvPassphrase = "YATRA_PASSPHRASE"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string        `yaml:"-" validate:"required"`                                              // config directory, e.g. $HOME/.yatra
	BaseURL    string        `yaml:"base_url" validate:"required,url"`                                   // API root, e.g. http://127.0.0.1:8000/api
	Timeout    time.Duration `yaml:"timeout" validate:"gt=0"`                                            // per-attempt HTTP timeout
	Passphrase string        `yaml:"passphrase"`                                                         // encrypts the credential file when set
	LogLevel   string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"` // debug|info|warn|error
	CacheTTL   time.Duration `yaml:"cache_ttl" validate:"gte=0"`                                         // listing cache lifetime

	HTTP            *http.Client `yaml:"-" validate:"-"` // optional; built from Timeout when nil
	LogOutput       io.Writer    `yaml:"-" validate:"-"` // optional; defaults to stderr
	OnLoginRequired func(error)  `yaml:"-" validate:"-"` // called when a session expires
}

// Overrides are values given on the command line. Empty fields are ignored.
type Overrides struct {
	BaseURL    string
	Passphrase string
	LogLevel   string
	Timeout    time.Duration
}

// DefaultHome returns ~/.yatra.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".yatra"), nil
}

// Defaults returns the built-in configuration rooted at home.
func Defaults(home string) Config {
	return Config{
		Home:     home,
		BaseURL:  api.DefaultBaseURL,
		Timeout:  api.DefaultTimeout,
		LogLevel: "warn",
		CacheTTL: catalog.DefaultTTL,
	}
}

// LoadConfig builds and validates a Config for home. An empty home selects
// DefaultHome. Missing config.yml and .env files are not errors.
func LoadConfig(home string, flags Overrides) (Config, error) {
	if home == "" {
		var err error
		if home, err = DefaultHome(); err != nil {
			return Config{}, fmt.Errorf("resolve home: %w", err)
		}
	}
	cfg := Defaults(home)

	path := filepath.Join(home, configFile)
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.Home = home
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	dotenv, err := readDotenv(envFile, filepath.Join(home, envFile))
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(dotenv[key])
	}
	if v := lookup(EnvAPIURL); v != "" {
		cfg.BaseURL = v
	}
	if v := lookup(EnvTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := lookup(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := lookup(EnvPassphrase); v != "" {
		cfg.Passphrase = v
	}

	if flags.BaseURL != "" {
		cfg.BaseURL = flags.BaseURL
	}
	if flags.Passphrase != "" {
		cfg.Passphrase = flags.Passphrase
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	if flags.Timeout > 0 {
		cfg.Timeout = flags.Timeout
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// readDotenv merges the given .env files; earlier files win.
func readDotenv(paths ...string) (map[string]string, error) {
	out := map[string]string{}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		vals, err := godotenv.Read(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		for k, v := range vals {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}

// parseTimeout accepts a Go duration ("20s") or a whole number of seconds.
func parseTimeout(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}
