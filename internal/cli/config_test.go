package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/qrforge/pkg/cache"
	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/pipeline"
	"github.com/matzehuels/qrforge/pkg/qr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Size != qr.DefaultSize {
		t.Errorf("Size = %d, want %d", cfg.Size, qr.DefaultSize)
	}
	if cfg.Margin != nil {
		t.Errorf("Margin = %v, want unset", *cfg.Margin)
	}
	if cfg.Quality != pipeline.DefaultQuality {
		t.Errorf("Quality = %d, want %d", cfg.Quality, pipeline.DefaultQuality)
	}
	if cfg.Cache.Backend != backendFile {
		t.Errorf("Backend = %q, want %q", cfg.Cache.Backend, backendFile)
	}
	ttl, err := cfg.ttl()
	if err != nil || ttl != cache.TTLArtifact {
		t.Errorf("ttl() = %v, %v; want %v", ttl, err, cache.TTLArtifact)
	}
}

func TestLoadConfigXDGFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("size = 320\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Size != 320 {
		t.Errorf("Size = %d, want 320", cfg.Size)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
size = 400
margin = 0
background = "navy"
foreground = "#fff"
error_correction = "H"
quality = 75

[cache]
backend = "memory"
namespace = "tenant-a"
ttl = "1h"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Size != 400 {
		t.Errorf("Size = %d, want 400", cfg.Size)
	}
	if cfg.Margin == nil || *cfg.Margin != 0 {
		t.Errorf("Margin = %v, want explicit 0", cfg.Margin)
	}
	if cfg.Background != "navy" || cfg.Foreground != "#fff" {
		t.Errorf("colors = %q/%q", cfg.Background, cfg.Foreground)
	}
	if cfg.ErrorCorrection != "H" || cfg.Quality != 75 {
		t.Errorf("ec/quality = %q/%d", cfg.ErrorCorrection, cfg.Quality)
	}
	if cfg.LogoSizeRatio != qr.DefaultLogoSizeRatio {
		t.Errorf("LogoSizeRatio = %v, want default", cfg.LogoSizeRatio)
	}
	if cfg.Cache.Backend != backendMemory || cfg.Cache.Namespace != "tenant-a" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if ttl, _ := cfg.ttl(); ttl != time.Hour {
		t.Errorf("ttl() = %v, want 1h", ttl)
	}
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("loadConfig(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed toml", "size = ="},
		{"unknown backend", "[cache]\nbackend = \"s3\""},
		{"redis without address", "[cache]\nbackend = \"redis\""},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"negative ttl", "[cache]\nttl = \"-1h\""},
		{"bad error correction", "error_correction = \"X\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("loadConfig() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestCacheDirectoryOverride(t *testing.T) {
	cfg := defaultConfig()
	cfg.Cache.Dir = "/srv/qr-cache"
	dir, err := cfg.cacheDirectory()
	if err != nil || dir != "/srv/qr-cache" {
		t.Errorf("cacheDirectory() = %q, %v", dir, err)
	}
}
