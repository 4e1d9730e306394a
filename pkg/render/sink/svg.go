package sink

import (
	"bytes"
	"fmt"
	"time"

	"github.com/kreistad/timegrid/pkg/render/styles"
	"github.com/kreistad/timegrid/pkg/timetable"
)

const cardInteractionCSS = `
    .card { transition: stroke-width 0.2s ease; }
    .card.highlight { stroke-width: 3; }
    .card-text { transition: transform 0.2s ease; transform-origin: center; transform-box: fill-box; }
    .card-text.highlight { font-weight: bold; }`

const cardInteractionJS = `
    function highlight(keys) {
      document.querySelectorAll('.card').forEach(c => c.classList.toggle('highlight', keys.includes(c.id.replace('card-', ''))));
      document.querySelectorAll('.card-text').forEach(t => t.classList.toggle('highlight', keys.includes(t.dataset.card)));
    }
    function clearHighlight() {
      document.querySelectorAll('.card, .card-text').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.card, .card-text').forEach(el => {
      el.addEventListener('mouseenter', () => highlight([(el.id || 'card-' + el.dataset.card).replace('card-', '')]));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	now         time.Time
	showNow     bool
	interactive bool
}

// WithStyle selects the visual style. Defaults to [styles.Simple].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithNow draws the current-time marker at the given instant.
func WithNow(now time.Time) SVGOption {
	return func(r *svgRenderer) { r.now = now; r.showNow = true }
}

// WithInteraction embeds hover-highlight CSS and script. Only useful for
// SVGs viewed in a browser; converters ignore the script.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// RenderSVG draws a computed layout as a standalone SVG document. The
// output is deterministic for a fixed layout and option set; the now
// marker is the only time-dependent element and is opt-in.
func RenderSVG(res timetable.Result, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}}
	for _, opt := range opts {
		opt(&r)
	}

	cfg := res.Config
	frame := frameFor(res)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		frame.width, frame.height, frame.width, frame.height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.2f" height="%.2f" fill="white"/>`+"\n",
		frame.width, frame.height)

	r.style.RenderDefs(&buf)

	renderHeaders(&buf, r.style, res, frame)
	renderRows(&buf, r.style, res, frame)
	renderGridBorders(&buf, res, frame)

	for _, it := range res.Items {
		r.style.RenderCard(&buf, styles.Card{
			Key:       it.Key,
			Label:     it.Item.Label(),
			X:         it.Rect.Left,
			Y:         frame.gridTop + it.Rect.Top,
			W:         it.Rect.Width,
			H:         it.Rect.Height,
			DayIndex:  it.DayIndex,
			DaysTotal: it.DaysTotal,
		})
	}

	if r.showNow && len(res.Columns) > 0 {
		m := timetable.NowLine(r.now, len(res.Columns), res.Window, cfg)
		r.style.RenderNowLine(&buf, styles.Line{
			X: m.Left, Y: frame.gridTop + m.Top, W: m.Width,
		})
	}

	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", cardInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", cardInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// frameGeometry fixes the outer dimensions of the document and the pixel
// origin of the grid region, which sits below the day headers.
type frameGeometry struct {
	width      float64
	height     float64
	gridTop    float64
	gridRight  float64
	gridBottom float64 // last full hour boundary, where side borders stop
}

func frameFor(res timetable.Result) frameGeometry {
	cfg := res.Config
	w := res.Window

	right := cfg.LinesLeftOffset() + cfg.ColumnWidth*float64(len(res.Columns))
	width := right
	if width < cfg.TimeWidth {
		width = cfg.TimeWidth
	}

	gridTop := cfg.ColumnHeaderHeight
	if len(res.Columns) == 0 {
		gridTop = 0
	}

	return frameGeometry{
		width:      width,
		height:     gridTop + timetable.GridHeight(w, cfg),
		gridTop:    gridTop,
		gridRight:  right,
		gridBottom: gridTop + cfg.LinesTopOffset + float64(w.Hours())*cfg.HourHeight,
	}
}

func renderHeaders(buf *bytes.Buffer, style styles.Style, res timetable.Result, frame frameGeometry) {
	cfg := res.Config
	for i, col := range res.Columns {
		style.RenderHeader(buf, styles.Header{
			Label: col.Date.Format("Mon 02 Jan"),
			X:     cfg.LinesLeftOffset() + float64(i)*cfg.ColumnWidth,
			Y:     0,
			W:     cfg.ColumnWidth,
			H:     cfg.ColumnHeaderHeight,
		})
	}
}

func renderRows(buf *bytes.Buffer, style styles.Style, res timetable.Result, frame frameGeometry) {
	cfg := res.Config
	y := frame.gridTop + cfg.LinesTopOffset
	for _, row := range res.Axis {
		style.RenderRow(buf, styles.Row{
			Label:     row.Label,
			Y:         y,
			LineStart: cfg.LinesLeftOffset(),
			LineEnd:   frame.gridRight,
			LabelX:    cfg.TimeWidth / 2,
			Cap:       row.Cap,
		})
		if !row.Cap {
			y += row.Height
		}
	}
}

// renderGridBorders draws the vertical column separators. They stop at
// the last full hour boundary; the cap row below stays open on the sides.
func renderGridBorders(buf *bytes.Buffer, res timetable.Result, frame frameGeometry) {
	if len(res.Columns) == 0 {
		return
	}
	cfg := res.Config
	for i := 0; i <= len(res.Columns); i++ {
		x := cfg.LinesLeftOffset() + float64(i)*cfg.ColumnWidth
		fmt.Fprintf(buf,
			`  <line class="column-border" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#ccc" stroke-width="1"/>`+"\n",
			x, frame.gridTop, x, frame.gridBottom)
	}
}
