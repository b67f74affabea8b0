package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/qrforge/pkg/cache"
	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/pipeline"
	"github.com/matzehuels/qrforge/pkg/qr"
)

// Cache backends selectable in the config file.
const (
	backendMemory = "memory"
	backendFile   = "file"
	backendRedis  = "redis"
	backendNone   = "none"
)

// config holds defaults loaded from config.toml. Flags override every field.
type config struct {
	Size            int     `toml:"size"`
	Margin          *int    `toml:"margin"`
	LogoSizeRatio   float64 `toml:"logo_size_ratio"`
	Background      string  `toml:"background"`
	Foreground      string  `toml:"foreground"`
	ErrorCorrection string  `toml:"error_correction"`
	Quality         int     `toml:"quality"`

	Cache cacheConfig `toml:"cache"`
}

type cacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	Prefix    string `toml:"prefix"`
	Namespace string `toml:"namespace"`
	TTL       string `toml:"ttl"`
}

// defaultConfig mirrors the library defaults. The CLI persists renders on disk.
func defaultConfig() config {
	return config{
		Size:            qr.DefaultSize,
		LogoSizeRatio:   qr.DefaultLogoSizeRatio,
		Background:      qr.DefaultBackground,
		Foreground:      qr.DefaultForeground,
		ErrorCorrection: qr.DefaultECLevel.String(),
		Quality:         pipeline.DefaultQuality,
		Cache: cacheConfig{
			Backend: backendFile,
			Prefix:  appName + ":",
		},
	}
}

// loadConfig reads path on top of the defaults.
// An empty path falls back to the XDG location, which may be absent.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	switch c.Cache.Backend {
	case backendMemory, backendFile, backendRedis, backendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q (must be memory, file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == backendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if _, err := c.ttl(); err != nil {
		return err
	}
	if _, err := qr.ParseECLevel(c.ErrorCorrection); err != nil {
		return err
	}
	return nil
}

// ttl returns the configured cache lifetime, or the library default.
func (c config) ttl() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.TTLArtifact, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid cache.ttl %q", c.Cache.TTL)
	}
	return d, nil
}

// cacheDirectory returns the configured file cache location.
func (c config) cacheDirectory() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return cacheDir()
}
