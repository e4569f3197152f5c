package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mathproblem/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	want := Defaults()
	if cfg.Server.Addr != want.Server.Addr || cfg.Cache.Backend != CacheFile || cfg.Log.Level != "info" {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "DEBUG"
file = "/tmp/mp.log"

[cache]
backend = "redis"
redis_addr = "localhost:6379"

[store]
backend = "mongo"
uri = "mongodb://localhost:27017"

[server]
addr = ":9000"
write_timeout = "1m"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/mp.log" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Log.MaxBackups != 3 {
		t.Errorf("unset key lost its default: %+v", cfg.Log)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Store.Backend != "mongo" || cfg.Store.URI != "mongodb://localhost:27017" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Server.Addr != ":9000" || time.Duration(cfg.Server.WriteTimeout) != time.Minute {
		t.Errorf("server = %+v", cfg.Server)
	}
	if time.Duration(cfg.Server.ReadTimeout) != 10*time.Second {
		t.Errorf("ReadTimeout = %v", time.Duration(cfg.Server.ReadTimeout))
	}
	if lvl, _ := cfg.Log.ParseLevel(); lvl != log.DebugLevel {
		t.Errorf("ParseLevel = %v", lvl)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "[server]\naddr = \":9000\"\n")
	t.Setenv(EnvAddr, ":7000")
	t.Setenv(EnvStoreBackend, "memory")
	t.Setenv(EnvCacheBackend, "NONE")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":7000" || cfg.Store.Backend != "memory" || cfg.Cache.Backend != CacheNone {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if name, ok := EnvOverrideFor("server.addr"); !ok || name != EnvAddr {
		t.Errorf("EnvOverrideFor(server.addr) = %q, %v", name, ok)
	}
	if _, ok := EnvOverrideFor("log.file"); ok {
		t.Error("log.file is not overridden")
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[log\nlevel = 1"},
		{"unknown key", "[log]\ncolour = \"red\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"bad cache", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"bad duration", "[server]\nread_timeout = \"soon\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, err := Load(writeConfig(t, "[cache]\nbackend = \"memcached\"\n"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %v", errors.GetCode(err))
	}
}

func TestXDGDirs(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("XDG_CACHE_HOME", base)
	t.Setenv("XDG_DATA_HOME", base)

	if got, want := DefaultPath(), filepath.Join(base, AppName, "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
	if got := CacheDir(); got != filepath.Join(base, AppName) {
		t.Errorf("CacheDir() = %q", got)
	}
	if got := Defaults().Store.Path; got != filepath.Join(base, AppName, "sets.db") {
		t.Errorf("default store path = %q", got)
	}
}
