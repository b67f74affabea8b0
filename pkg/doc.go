// Package pkg provides the core libraries for qrforge QR code rendering.
//
// # Overview
//
// qrforge encodes text as a QR symbol and renders it to SVG, PNG, JPEG or
// WebP, optionally with a logo centred on the code. Every artifact is cached
// under a fingerprint of the inputs that can change its bytes, so a repeated
// request is answered without touching the encoder.
//
//  1. [qr] - Render requests, functional options and format/level parsing
//  2. [logo] - Logo sources and missing-file resolution
//  3. [symbol] - QR symbol encoding (module matrix)
//  4. [render] - SVG generation, rasterization and raster encoders
//  5. [engine] - The rendering backend used by the pipeline
//  6. [cache] - Artifact stores and fingerprinting
//  7. [pipeline] - Orchestration (logo resolution → path selection → cache → engine)
//
// # Architecture
//
//	qr.Request
//	     ↓
//	[logo] resolve (a missing file degrades to no logo plus a notice)
//	     ↓
//	[pipeline] pick a render path and fingerprint it
//	     ↓
//	[cache] hit? → return
//	     ↓
//	[engine] → [symbol] + [render]
//	     ↓
//	SVG / PNG / JPEG / WebP
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	req := qr.New("https://example.com", qr.WithSize(300), qr.WithLogoPath("logo.png", 0.2))
//	res, err := runner.PNG(ctx, req)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("code.png", res.Data, 0o644)
//
// Supporting packages: [errors] for coded errors, [observability] for
// render and cache hooks (with a Prometheus implementation), and [buildinfo]
// for version stamping.
package pkg
