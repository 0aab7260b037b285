package config

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const DefaultAPIURL = "https://api.yourdomain.com"

// Config holds the front-end settings.
// Precedence: defaults, then the YAML file, then environment, then CLI flags.
type Config struct {
	APIURL         string        `yaml:"api_url"`
	Port           string        `yaml:"port"`
	SitePassword   string        `yaml:"site_password"`
	LogLevel       string        `yaml:"log_level"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CacheSizeMB    int           `yaml:"cache_size_mb"`
	RecentLimit    int           `yaml:"recent_limit"`
}

func Default() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		Port:           "8080",
		LogLevel:       "info",
		RequestTimeout: 15 * time.Second,
		CacheSizeMB:    64,
		RecentLimit:    20,
	}
}

// Load reads the YAML config at path on top of the defaults.
// An empty path or a missing file yields the defaults and a nil error.
// A file that exists but cannot be parsed is an error so callers can report it.
// The result is not validated; call Validate once env and flags are applied.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, errors.Wrap(err, "open config")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c, errors.Wrap(err, "read config")
	}
	if len(data) == 0 {
		return c, nil
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, errors.Wrap(err, "decode config")
	}
	return c, nil
}

// ApplyEnv overrides fields from API_URL, PORT, SITE_PASSWORD and LOG_LEVEL.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("API_URL"); v != "" {
		c.APIURL = v
	}
	if v := getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := getenv("SITE_PASSWORD"); v != "" {
		c.SitePassword = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate normalises the config and rejects unusable values.
func (c *Config) Validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		return errors.New("api_url must not be empty")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return errors.Errorf("api_url must be an http(s) URL, got %q", c.APIURL)
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		return errors.Errorf("invalid port %q", c.Port)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 15 * time.Second
	}
	if c.CacheSizeMB < 0 {
		c.CacheSizeMB = 0
	}
	if c.RecentLimit <= 0 {
		c.RecentLimit = 20
	}
	return nil
}
