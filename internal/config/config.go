package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/station-saarthi/saarthi-cli/internal/api"
	"github.com/station-saarthi/saarthi-cli/internal/cache"
)

type Config struct {
	BaseURL string
	Timeout time.Duration

	Cache    string // file|redis|none
	CacheTTL time.Duration
	CacheDir string
	Redis    cache.RedisOptions

	LogFormat string // console|json
	Debug     bool
	LogFile   string

	MetricsAddr string
}

// File mirrors config.toml. Durations are Go duration strings ("10s").
type File struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`

	Cache struct {
		Backend string `toml:"backend"`
		TTL     string `toml:"ttl"`
		Dir     string `toml:"dir"`
	} `toml:"cache"`

	Redis struct {
		Address  string `toml:"address"`
		Password string `toml:"password"`
		Database int    `toml:"database"`
	} `toml:"redis"`

	Log struct {
		Format string `toml:"format"`
		Debug  bool   `toml:"debug"`
		File   string `toml:"file"`
	} `toml:"log"`

	Metrics struct {
		Addr string `toml:"addr"`
	} `toml:"metrics"`
}

// LoadOptions tells Load where to look. Empty fields use the defaults.
type LoadOptions struct {
	ConfigPath string // explicit --config; must exist when set
	EnvFile    string // .env in the working directory when empty
}

func Default() Config {
	return Config{
		BaseURL:   api.BaseURL,
		Timeout:   10 * time.Second,
		Cache:     cache.BackendFile,
		CacheTTL:  30 * time.Second,
		Redis:     cache.RedisOptions{Address: "localhost:6379"},
		LogFormat: "console",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/saarthi/config.toml, falling back to ~/.config
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "saarthi", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "saarthi", "config.toml")
}

// Load builds the configuration from defaults, the TOML file, the .env file
// and the environment, in increasing order of precedence
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	// Load .env into environment (ignore if missing)
	if opts.EnvFile != "" {
		_ = godotenv.Load(opts.EnvFile)
	} else {
		_ = godotenv.Load()
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyFile(path string) error {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	setString(&c.BaseURL, f.BaseURL)
	setString(&c.Cache, f.Cache.Backend)
	setString(&c.CacheDir, f.Cache.Dir)
	setString(&c.Redis.Address, f.Redis.Address)
	setString(&c.Redis.Password, f.Redis.Password)
	if f.Redis.Database != 0 {
		c.Redis.Database = f.Redis.Database
	}
	setString(&c.LogFormat, strings.ToLower(f.Log.Format))
	setString(&c.LogFile, f.Log.File)
	c.Debug = c.Debug || f.Log.Debug
	setString(&c.MetricsAddr, f.Metrics.Addr)

	if err := setDuration(&c.Timeout, "timeout", f.Timeout); err != nil {
		return err
	}
	return setDuration(&c.CacheTTL, "cache.ttl", f.Cache.TTL)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	setString(&c.BaseURL, getenv("SAARTHI_BASE_URL"))
	setString(&c.Cache, getenv("SAARTHI_CACHE"))
	setString(&c.CacheDir, getenv("SAARTHI_CACHE_DIR"))
	setString(&c.Redis.Address, getenv("SAARTHI_REDIS_ADDRESS"))
	setString(&c.Redis.Password, getenv("SAARTHI_REDIS_PASSWORD"))
	setString(&c.LogFile, getenv("SAARTHI_LOG_FILE"))
	setString(&c.MetricsAddr, getenv("SAARTHI_METRICS_ADDR"))

	if v := getenv("SAARTHI_REDIS_DATABASE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SAARTHI_REDIS_DATABASE: %q", v)
		}
		c.Redis.Database = n
	}
	setString(&c.LogFormat, strings.ToLower(getenv("SAARTHI_LOG_FORMAT")))
	if getenv("SAARTHI_DEBUG") == "YES" {
		c.Debug = true
	}

	if err := setDuration(&c.Timeout, "SAARTHI_TIMEOUT", getenv("SAARTHI_TIMEOUT")); err != nil {
		return err
	}
	return setDuration(&c.CacheTTL, "SAARTHI_CACHE_TTL", getenv("SAARTHI_CACHE_TTL"))
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.CacheTTL)
	}
	switch c.Cache {
	case cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return fmt.Errorf("cache backend must be one of file, redis, none; got %q", c.Cache)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log format must be console or json, got %q", c.LogFormat)
	}
	return nil
}

// CacheOptions converts the cache settings for cache.Open
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache,
		TTL:     c.CacheTTL,
		Dir:     c.CacheDir,
		Redis:   c.Redis,
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", name, v)
	}
	*dst = d
	return nil
}
