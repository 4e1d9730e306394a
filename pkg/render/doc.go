// Package render turns computed timetable layouts into visual outputs.
//
// # Overview
//
// This package contains the rendering half of the pipeline. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Output sinks (in [sink] subpackage)
//   - Visual styles (in [styles] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(result, sink.WithStyle(styles.Ink{}))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Sinks and Styles
//
// The [sink] subpackage writes a layout as an SVG document or a JSON
// geometry export. The [styles] subpackage controls how day headers,
// hour rows, and item cards look; [styles.Simple] is the default and
// [styles.Ink] produces a hand-inked variant.
//
// [sink]: github.com/kreistad/timegrid/pkg/render/sink
// [styles]: github.com/kreistad/timegrid/pkg/render/styles
// [styles.Simple]: github.com/kreistad/timegrid/pkg/render/styles.Simple
// [styles.Ink]: github.com/kreistad/timegrid/pkg/render/styles.Ink
package render
