// Package logo classifies and resolves the optional image composited into the
// centre of a QR symbol.
//
// A logo reference is one of three variants: none, a file path, or an
// in-memory image buffer. The variant is decided once, by [Classify] or by the
// [Path] and [Bytes] constructors, and carried as a [Source] from then on so
// that callers never re-inspect the dynamic type.
//
// Path references are checked with [Exists] before rendering. A path that does
// not exist is not an error: [Resolve] drops it and returns the fixed notice
// produced by [NotFoundMessage], and the symbol is rendered without a logo.
package logo

import (
	"bytes"
	"fmt"
	"io"

	"github.com/matzehuels/qrforge/pkg/cache"
	"github.com/matzehuels/qrforge/pkg/errors"
)

// Kind identifies which variant a Source holds.
type Kind int

const (
	KindNone Kind = iota
	KindPath
	KindBuffer
)

// String returns the lowercase variant name.
func (k Kind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindBuffer:
		return "buffer"
	default:
		return "none"
	}
}

// Source is a resolved logo reference. The zero value is KindNone.
type Source struct {
	kind Kind
	path string
	data []byte
}

// None returns the empty logo reference.
func None() Source { return Source{} }

// Path returns a file-path reference. An empty path yields None.
func Path(p string) Source {
	if p == "" {
		return Source{}
	}
	return Source{kind: KindPath, path: p}
}

// Bytes returns an in-memory image reference. The buffer is copied; an empty
// buffer yields None.
func Bytes(b []byte) Source {
	if len(b) == 0 {
		return Source{}
	}
	return Source{kind: KindBuffer, data: bytes.Clone(b)}
}

// Classify maps a dynamically typed logo value onto a Source.
//
// Accepted inputs:
//   - nil: None
//   - Source or *Source: returned as-is
//   - []byte: buffer (recognized structurally, before any string check)
//   - io.Reader: read fully into a buffer
//   - string: file path
//
// Any other type is rejected with INVALID_LOGO.
func Classify(v any) (Source, error) {
	switch x := v.(type) {
	case nil:
		return None(), nil
	case Source:
		return x, nil
	case *Source:
		if x == nil {
			return None(), nil
		}
		return *x, nil
	case []byte:
		return Bytes(x), nil
	case io.Reader:
		data, err := io.ReadAll(x)
		if err != nil {
			return None(), errors.Wrap(errors.ErrCodeInvalidLogo, err, "read logo")
		}
		return Bytes(data), nil
	case string:
		return Path(x), nil
	default:
		return None(), errors.New(errors.ErrCodeInvalidLogo, "unsupported logo type %T", v)
	}
}

// Kind returns the variant held by s.
func (s Source) Kind() Kind { return s.kind }

// IsZero reports whether s references no logo.
func (s Source) IsZero() bool { return s.kind == KindNone }

// Path returns the file path for KindPath sources, "" otherwise.
func (s Source) Path() string { return s.path }

// Data returns the image bytes for KindBuffer sources, nil otherwise.
// The returned slice must not be modified.
func (s Source) Data() []byte { return s.data }

// Clone returns a copy of s that shares no memory with it.
func (s Source) Clone() Source {
	if s.kind == KindBuffer {
		s.data = bytes.Clone(s.data)
	}
	return s
}

// Identity returns a stable string identifying the logo for cache keys:
// "" for none, "path:<path>" for files and "sha256:<hex>" for buffers.
// Buffers are identified by content, never by slice address.
func (s Source) Identity() string {
	switch s.kind {
	case KindPath:
		return "path:" + s.path
	case KindBuffer:
		return "sha256:" + cache.Hash(s.data)
	default:
		return ""
	}
}

// String implements fmt.Stringer for logging.
func (s Source) String() string {
	switch s.kind {
	case KindPath:
		return s.path
	case KindBuffer:
		return fmt.Sprintf("<%d bytes>", len(s.data))
	default:
		return "<none>"
	}
}
