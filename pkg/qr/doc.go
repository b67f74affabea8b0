// Package qr defines the render request: what to encode and how it should look.
//
// A [Request] is a plain value holding the payload text, symbol geometry,
// colours, error-correction level, an optional centred logo and a cache
// policy. It performs no validation; the rendering engine rejects bad values
// when a render is attempted.
//
//	req := qr.New("https://example.com",
//	    qr.WithSize(300),
//	    qr.WithMargin(12),
//	    qr.WithLogoPath("assets/logo.png", 0.25),
//	    qr.WithErrorCorrection(qr.High),
//	)
//
// Requests are mutable between calls, either through the exported fields or
// the chainable setters:
//
//	req.SetSize(400).SetColors("#ffffff", "navy")
//
// Renderers take a [Request.Clone] before doing any work, so later mutation
// never affects a render in progress.
package qr
