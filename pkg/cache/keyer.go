package cache

// keyPrefix namespaces every render fingerprint.
const keyPrefix = "qr"

// Keyer derives cache fingerprints.
type Keyer interface {
	// RenderKey returns the fingerprint of one (request, render path) pair.
	RenderKey(opts RenderKeyOpts, tag string) string
}

// RenderKeyOpts lists every request field that can change output bytes.
//
// Fields that cannot affect output (whether caching is enabled, which store
// is used) are deliberately absent. The struct is hashed through encoding/json,
// whose field order is fixed by declaration order, so fingerprints are stable
// across calls and processes.
type RenderKeyOpts struct {
	Text string `json:"text"`
	Size int    `json:"size"`
	// Margin is nil when unset; JSON encodes it as null, distinct from 0.
	Margin        *int    `json:"margin"`
	Logo          string  `json:"logo"` // logo identity, see logo.Source.Identity
	LogoSizeRatio float64 `json:"logo_size_ratio"`
	Background    string  `json:"background"`
	Foreground    string  `json:"foreground"`
	ECLevel       string  `json:"ec_level"`
}

// DefaultKeyer produces "qr:<sha256>" fingerprints.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey hashes opts together with the render-path tag.
func (DefaultKeyer) RenderKey(opts RenderKeyOpts, tag string) string {
	return hashKey(keyPrefix, opts, tag)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = DefaultKeyer{}
