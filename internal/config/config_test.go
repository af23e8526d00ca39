package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/polyfold/polyfold/pkg/cache"
	"github.com/polyfold/polyfold/pkg/errors"
)

func TestDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	c := Default()

	if c.Cache.Backend != BackendFile {
		t.Errorf("backend = %q, want %q", c.Cache.Backend, BackendFile)
	}
	if c.Cache.Dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("dir = %q", c.Cache.Dir)
	}
	if c.Cache.TTL != cache.DefaultTTL {
		t.Errorf("ttl = %s, want %s", c.Cache.TTL, cache.DefaultTTL)
	}
	if c.Server.Addr != DefaultServerAddr {
		t.Errorf("addr = %q", c.Server.Addr)
	}
	if c.Search.Timeout != 0 {
		t.Errorf("timeout = %s, want unbounded", c.Search.Timeout)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDecode(t *testing.T) {
	const src = `
[log]
level = "DEBUG"

[cache]
backend = "redis"
redis_addr = "cache:6379"
prefix = "ci"
ttl = "1h"

[search]
timeout = "30s"
workers = 4

[server]
addr = "127.0.0.1:9000"
`
	c, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	level, err := c.LogLevel()
	if err != nil || level != log.DebugLevel {
		t.Errorf("level = %v, %v", level, err)
	}
	if c.Cache.Backend != BackendRedis || c.Cache.RedisAddr != "cache:6379" || c.Cache.Prefix != "ci" {
		t.Errorf("cache = %+v", c.Cache)
	}
	if c.Cache.TTL != time.Hour {
		t.Errorf("ttl = %s", c.Cache.TTL)
	}
	if c.Search.Timeout != 30*time.Second || c.Search.Workers != 4 {
		t.Errorf("search = %+v", c.Search)
	}
	if c.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("addr = %q", c.Server.Addr)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"syntax", "[log\nlevel=", errors.ErrCodeInvalidFormat},
		{"unknown key", "[cache]\nbackend = \"file\"\ncolour = \"red\"\n", errors.ErrCodeInvalidFormat},
		{"backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidInput},
		{"level", "[log]\nlevel = \"loud\"\n", errors.ErrCodeInvalidInput},
		{"negative timeout", "[search]\ntimeout = \"-1s\"\n", errors.ErrCodeInvalidInput},
		{"negative workers", "[search]\nworkers = -2\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// No default file: defaults.
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Cache.Backend != BackendFile {
		t.Errorf("backend = %q", c.Cache.Backend)
	}

	// Explicit missing file: error.
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit file: got %v", err)
	}

	// Default file present.
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Cache.Backend != BackendNone {
		t.Errorf("backend = %q, want none", c.Cache.Backend)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := "/tmp/xdg-config/polyfold/config.toml"; path != want {
		t.Errorf("got %q, want %q", path, want)
	}
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	dir, _ = CacheDir()
	if want := "/tmp/custom-cache/polyfold"; dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}
}
