package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/webcomb/webcomb/pkg/analysis"
	"github.com/webcomb/webcomb/pkg/errors"
)

// defaultConfigFile is looked up in the working directory when --config is
// not given. A missing file is not an error; defaults apply.
const defaultConfigFile = "webcomb.toml"

// Config is the project-level configuration read from webcomb.toml.
//
// Example:
//
//	markers = ["bower.json", "package.json"]
//	output  = "analysis.json"
//
//	[cache]
//	dir = ".webcomb-cache"
//	ttl_hours = 24
type Config struct {
	// Markers overrides the manifest basenames used for package
	// attribution.
	Markers []string `toml:"markers"`

	// Output is the default path for the serialized analysis.
	Output string `toml:"output"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig configures the analysis result cache.
type CacheConfig struct {
	// Dir is the cache directory. Empty selects the user cache dir.
	Dir string `toml:"dir"`

	// TTLHours bounds entry lifetime. Zero selects the pipeline default.
	TTLHours int `toml:"ttl_hours"`
}

// loadConfig reads the TOML config at path. When path is empty, the
// default file is tried and absence is tolerated.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	for _, m := range cfg.Markers {
		if err := errors.ValidateMarkerFilename(m); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid marker in %s", path)
		}
	}
	return cfg, nil
}

// markers returns the configured marker set, falling back to the analysis
// defaults.
func (c Config) markers() []string {
	if len(c.Markers) > 0 {
		return c.Markers
	}
	return analysis.DefaultPackageMarkers
}

// cacheDir returns the configured cache directory, or the per-user
// default.
func (c Config) cacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}
