package sink

import (
	"github.com/kreistad/timegrid/pkg/render"
	"github.com/kreistad/timegrid/pkg/timetable"
)

// DefaultPNGScale is the raster scale used when none is given.
const DefaultPNGScale = 2.0

// RenderPDF renders the layout as a PDF document via SVG conversion.
func RenderPDF(res timetable.Result, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(res, opts...))
}

// RenderPNG renders the layout as a PNG image via SVG conversion. scale
// multiplies the raster resolution; values <= 0 fall back to
// [DefaultPNGScale].
func RenderPNG(res timetable.Result, scale float64, opts ...SVGOption) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultPNGScale
	}
	return render.ToPNG(RenderSVG(res, opts...), scale)
}
