// Package config loads the mathproblem configuration file.
//
// The file is TOML, by default at $XDG_CONFIG_HOME/mathproblem/config.toml
// (~/.config/mathproblem/config.toml), with one table per concern:
//
//	[log]
//	level = "debug"
//	file  = "/var/log/mathproblem/server.log"
//
//	[cache]
//	backend    = "redis"
//	redis_addr = "localhost:6379"
//
//	[store]
//	backend = "sqlite"
//	path    = "/var/lib/mathproblem/sets.db"
//
//	[server]
//	addr          = ":8080"
//	write_timeout = "30s"
//
// Keys missing from the file keep their [Defaults]. Environment variables
// named MATHPROBLEM_* override the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/store"
)

// AppName names the config, cache and data directories.
const AppName = "mathproblem"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Environment overrides.
const (
	EnvLogLevel      = "MATHPROBLEM_LOG_LEVEL"
	EnvLogFile       = "MATHPROBLEM_LOG_FILE"
	EnvCacheBackend  = "MATHPROBLEM_CACHE_BACKEND"
	EnvCacheDir      = "MATHPROBLEM_CACHE_DIR"
	EnvRedisAddr     = "MATHPROBLEM_REDIS_ADDR"
	EnvRedisPassword = "MATHPROBLEM_REDIS_PASSWORD"
	EnvStoreBackend  = "MATHPROBLEM_STORE_BACKEND"
	EnvStorePath     = "MATHPROBLEM_STORE_PATH"
	EnvMongoURI      = "MATHPROBLEM_MONGO_URI"
	EnvAddr          = "MATHPROBLEM_ADDR"
)

// Duration is a time.Duration written as a string such as "30s".
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats d as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

// LogConfig configures logging. An empty File logs to stderr only.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// CacheConfig selects the render cache.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file, redis or none
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64    `toml:"max_body_bytes"`
}

// Config is the complete configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Cache  CacheConfig  `toml:"cache"`
	Store  store.Config `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Prefix:  AppName + ":",
		},
		Store: store.Config{
			Backend: store.BackendSQLite,
			Path:    filepath.Join(DataDir(), "sets.db"),
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
			MaxBodyBytes:    1 << 20,
		},
	}
}

// Load reads the file at path over the defaults and applies environment
// overrides. An empty path reads [DefaultPath] and tolerates its absence;
// an explicit path must exist. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return cfg, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	} else if explicit {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis cache")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server.addr cannot be empty")
	}
	return nil
}

// ParseLevel returns the configured log level.
func (l LogConfig) ParseLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(l.Level)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid log level %q", l.Level)
	}
	return lvl, nil
}

func applyEnv(cfg *Config) {
	set := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	set(EnvLogLevel, &cfg.Log.Level)
	set(EnvLogFile, &cfg.Log.File)
	set(EnvCacheBackend, &cfg.Cache.Backend)
	set(EnvCacheDir, &cfg.Cache.Dir)
	set(EnvRedisAddr, &cfg.Cache.RedisAddr)
	set(EnvRedisPassword, &cfg.Cache.RedisPassword)
	set(EnvStoreBackend, &cfg.Store.Backend)
	set(EnvStorePath, &cfg.Store.Path)
	set(EnvMongoURI, &cfg.Store.URI)
	set(EnvAddr, &cfg.Server.Addr)

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
}

// EnvOverrideFor returns the environment variable overriding key, such as
// "store.backend", when it is set.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := map[string]string{
		"log.level":            EnvLogLevel,
		"log.file":             EnvLogFile,
		"cache.backend":        EnvCacheBackend,
		"cache.dir":            EnvCacheDir,
		"cache.redis_addr":     EnvRedisAddr,
		"cache.redis_password": EnvRedisPassword,
		"store.backend":        EnvStoreBackend,
		"store.path":           EnvStorePath,
		"store.uri":            EnvMongoURI,
		"server.addr":          EnvAddr,
	}[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns the config file path using the XDG standard
// (~/.config/mathproblem/config.toml).
func DefaultPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "config.toml")
}

// CacheDir returns the cache directory (~/.cache/mathproblem).
func CacheDir() string { return xdgDir("XDG_CACHE_HOME", ".cache") }

// DataDir returns the data directory (~/.local/share/mathproblem).
func DataDir() string { return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")) }

func xdgDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName)
	}
	return filepath.Join(home, fallback, AppName)
}
