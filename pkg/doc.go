// Package pkg provides the core libraries for Timegrid timetable rendering.
//
// # Overview
//
// Timegrid lays out time-bounded records on a day/week grid and renders
// the result as SVG, PNG, PDF, or raw layout geometry. The pkg directory
// is organized into four main areas:
//
//  1. [timetable] - Domain logic (columns, intervals, rectangles, axis)
//  2. [source] - Input loading (JSON, YAML, ICS; local files and URLs)
//  3. [render] - Output generation (styles, sinks, format conversion)
//  4. [pipeline] - Orchestration (load → layout → render, with caching)
//
// # Architecture
//
// The typical data flow through Timegrid:
//
//	JSON/YAML/ICS source
//	         ↓
//	    [source] package (load raw records)
//	         ↓
//	    [timetable] package (columns + card rectangles + axis)
//	         ↓
//	    [render] package (styles + sinks)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Compute a layout and render it to SVG:
//
//	import (
//	    "github.com/kreistad/timegrid/pkg/render/sink"
//	    "github.com/kreistad/timegrid/pkg/timetable"
//	)
//
//	rng, _ := timetable.ParseRange("2026-03-02", "2026-03-06")
//	res := timetable.Compute(rng,
//	    timetable.HourWindow{FromHour: 8, ToHour: 20},
//	    records, timetable.Config{})
//	svg := sink.RenderSVG(res)
//
// Or run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Source: "schedule.ics",
//	    From:   "2026-03-02",
//	    Till:   "2026-03-06",
//	})
//
// # Main Packages
//
// [timetable] - The layout engine. Pure and deterministic: identical
// inputs produce byte-identical results. Bad input degrades to
// diagnostics, never to errors.
//
// [source] - Record loading from local files or http(s) URLs, with
// format dispatch by extension. ICS parsing lives in [source/ics].
//
// [render] - Visual output. [render/styles] defines the look
// (simple, ink), [render/sink] writes SVG/JSON and converts to
// PDF/PNG via librsvg.
//
// [pipeline] - The load → layout → render orchestrator with per-stage
// memoization, shared by the CLI and the HTTP server.
//
// [cache] - Memory, file, Redis, and null cache backends plus the
// cache key derivation for each pipeline stage.
//
// [errors] - Coded errors shared across all packages.
//
// [httputil] - HTTP fetching with retries, size limits, and a TTL'd
// response cache for remote calendar feeds.
//
// [observability] - Pluggable hooks for layout, cache, and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/timetable    # Layout engine only
//
// [timetable]: https://pkg.go.dev/github.com/kreistad/timegrid/pkg/timetable
// [source]: https://pkg.go.dev/github.com/kreistad/timegrid/pkg/source
// [source/ics]: https://pkg.go.dev/github.com/kreistad/timegrid/pkg/source/ics
// [render]: https://pkg.go.dev/github.com/kreistad/timegrid/pkg/render
// [render/styles]: https://pkg.go.dev/github.com/kreistad/timegrid/pkg/render/styles
// [render/sink]: https://pkg.go.dev/github.com/kreistad/timegrid/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/kreistad/timegrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/kreistad/timegrid/pkg/cache
// [errors]: https://pkg.go.dev/github.com/kreistad/timegrid/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/kreistad/timegrid/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/kreistad/timegrid/pkg/observability
package pkg
