package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when one store is shared by several applications or tenants
// that must never see each other's entries.
//
// Example usage:
//
//	// Keys for the marketing site's badges
//	siteKeyer := NewScopedKeyer(NewDefaultKeyer(), "site:marketing:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey generates a prefixed render fingerprint.
func (k *ScopedKeyer) RenderKey(opts RenderKeyOpts, tag string) string {
	return k.prefix + k.inner.RenderKey(opts, tag)
}
