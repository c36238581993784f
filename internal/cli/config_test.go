package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/webcomb/webcomb/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webcomb.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
markers = ["component.toml"]
output = "out.json"

[cache]
dir = ".cache"
ttl_hours = 12
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if len(cfg.Markers) != 1 || cfg.Markers[0] != "component.toml" {
		t.Errorf("Markers = %v, want [component.toml]", cfg.Markers)
	}
	if cfg.Output != "out.json" {
		t.Errorf("Output = %q, want out.json", cfg.Output)
	}
	if cfg.Cache.Dir != ".cache" || cfg.Cache.TTLHours != 12 {
		t.Errorf("Cache = %+v, want dir=.cache ttl_hours=12", cfg.Cache)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("loadConfig() error = nil, want error for explicit missing file")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestLoadConfigDefaultMissing(t *testing.T) {
	// With no explicit path, absence of webcomb.toml yields defaults.
	t.Chdir(t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error = %v, want defaults", err)
	}
	if len(cfg.Markers) != 0 {
		t.Errorf("Markers = %v, want empty", cfg.Markers)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, `marker = ["typo"]`)

	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("loadConfig() error = nil, want unknown key error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestLoadConfigInvalidMarker(t *testing.T) {
	path := writeConfig(t, `markers = ["pkg/bower.json"]`)

	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("loadConfig() error = nil, want invalid marker error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidConfig)
	}
}

func TestConfigMarkersFallback(t *testing.T) {
	var cfg Config
	markers := cfg.markers()
	if len(markers) != 2 || markers[0] != "bower.json" || markers[1] != "package.json" {
		t.Errorf("markers() = %v, want defaults", markers)
	}

	cfg.Markers = []string{"custom.json"}
	if got := cfg.markers(); len(got) != 1 || got[0] != "custom.json" {
		t.Errorf("markers() = %v, want [custom.json]", got)
	}
}

func TestConfigCacheDir(t *testing.T) {
	cfg := Config{Cache: CacheConfig{Dir: "/tmp/explicit"}}
	dir, err := cfg.cacheDir()
	if err != nil || dir != "/tmp/explicit" {
		t.Errorf("cacheDir() = (%q, %v), want the configured dir", dir, err)
	}

	var def Config
	dir, err = def.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("default cacheDir = %q, want a %s subdirectory", dir, appName)
	}
}
