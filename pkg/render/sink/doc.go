// Package sink provides output format renderers for timetable layouts.
//
// # Overview
//
// A "sink" transforms a computed [timetable.Result] into a final output
// format. This package provides renderers for:
//
//   - SVG: Scalable vector graphics with optional interactivity
//   - JSON: Layout geometry export for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] produces a standalone SVG document with day headers, hour
// rows, and one card per visible item slice. Basic usage:
//
//	svg := sink.RenderSVG(result,
//	    sink.WithStyle(styles.Ink{}),
//	    sink.WithNow(time.Now()),
//	)
//
// # SVG Options
//
//   - [WithStyle]: Visual style ([styles.Simple] or [styles.Ink])
//   - [WithNow]: Draw the current-time marker
//   - [WithInteraction]: Embed hover-highlight script for browsers
//
// # JSON Output
//
// [RenderJSON] exports the full geometry (frame, columns, axis, cards,
// optional now marker) so external renderers can draw the same layout
// without reimplementing the positioning math. Output order and number
// formatting are deterministic.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] first render SVG, then convert via
// [render.ToPDF] and [render.ToPNG]. They require librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [timetable.Result]: github.com/kreistad/timegrid/pkg/timetable.Result
// [render.ToPDF]: github.com/kreistad/timegrid/pkg/render.ToPDF
// [render.ToPNG]: github.com/kreistad/timegrid/pkg/render.ToPNG
// [styles.Simple]: github.com/kreistad/timegrid/pkg/render/styles.Simple
// [styles.Ink]: github.com/kreistad/timegrid/pkg/render/styles.Ink
package sink
