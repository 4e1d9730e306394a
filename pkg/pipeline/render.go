package pipeline

import (
	errs "github.com/kreistad/timegrid/pkg/errors"
	"github.com/kreistad/timegrid/pkg/render/sink"
	"github.com/kreistad/timegrid/pkg/render/styles"
	"github.com/kreistad/timegrid/pkg/timetable"
)

// renderFormats generates output artifacts in the requested formats.
func (r *Runner) renderFormats(layout timetable.Result, opts Options) (map[string][]byte, error) {
	svgOpts := r.buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(layout, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(layout, opts.PNGScale, svgOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(layout, svgOpts...)
		case FormatJSON:
			jsonOpts := []sink.JSONOption{sink.WithJSONStyle(opts.Style)}
			if opts.NowLine {
				jsonOpts = append(jsonOpts, sink.WithJSONNow(r.now()))
			}
			data, err = sink.RenderJSON(layout, jsonOpts...)
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errs.Wrap(errs.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func (r *Runner) buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption

	switch opts.Style {
	case StyleInk:
		svgOpts = append(svgOpts, sink.WithStyle(styles.Ink{}))
	case StyleSimple:
		svgOpts = append(svgOpts, sink.WithStyle(styles.Simple{}))
	}

	if opts.NowLine {
		svgOpts = append(svgOpts, sink.WithNow(r.now()))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}

	return svgOpts
}
