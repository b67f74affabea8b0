package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnRenderStart(ctx, "svg")
	p.OnRenderComplete(ctx, "svg", "vector-svg", false, time.Second, nil)
	p.OnNotice(ctx, "LOGO_NOT_FOUND")

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "vector")
	c.OnCacheMiss(ctx, "raster")
	c.OnCacheSet(ctx, "raster", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	h := NewPrometheusHooks(reg)

	h.OnRenderStart(ctx, "png")
	h.OnRenderComplete(ctx, "png", "raster-png:90", false, 10*time.Millisecond, nil)
	h.OnRenderComplete(ctx, "png", "raster-png:90", true, time.Millisecond, nil)
	h.OnRenderComplete(ctx, "svg", "", false, time.Millisecond, errors.New("boom"))
	h.OnNotice(ctx, "LOGO_NOT_FOUND")
	h.OnCacheHit(ctx, "raster")
	h.OnCacheMiss(ctx, "raster")
	h.OnCacheMiss(ctx, "vector")
	h.OnCacheSet(ctx, "raster", 2048)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"png miss", testutil.ToFloat64(h.rendersTotal.WithLabelValues("png", "false", "ok")), 1},
		{"png hit", testutil.ToFloat64(h.rendersTotal.WithLabelValues("png", "true", "ok")), 1},
		{"svg error", testutil.ToFloat64(h.rendersTotal.WithLabelValues("svg", "false", "error")), 1},
		{"notices", testutil.ToFloat64(h.noticesTotal.WithLabelValues("LOGO_NOT_FOUND")), 1},
		{"raster hits", testutil.ToFloat64(h.cacheEvents.WithLabelValues("raster", "hit")), 1},
		{"raster misses", testutil.ToFloat64(h.cacheEvents.WithLabelValues("raster", "miss")), 1},
		{"vector misses", testutil.ToFloat64(h.cacheEvents.WithLabelValues("vector", "miss")), 1},
		{"raster sets", testutil.ToFloat64(h.cacheEvents.WithLabelValues("raster", "set")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if n := testutil.CollectAndCount(h.renderDuration); n != 2 {
		t.Errorf("render duration series = %d, want 2", n)
	}
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
