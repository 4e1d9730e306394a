package styles

import (
	"bytes"
	"fmt"
)

// Simple renders plain rectangular cards with thin grid lines. It is
// the default style and produces the smallest output.
type Simple struct{}

func (Simple) Name() string { return "simple" }

// RenderDefs writes nothing; the simple style needs no defs.
func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderHeader(buf *bytes.Buffer, h Header) {
	fmt.Fprintf(buf,
		`  <rect class="day-header" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#f4f4f4" stroke="#333" stroke-width="1"/>`+"\n",
		h.X, h.Y, h.W, h.H)
	fmt.Fprintf(buf,
		`  <text class="day-header-text" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.0f" text-anchor="middle" dominant-baseline="middle" fill="#333">%s</text>`+"\n",
		h.X+h.W/2, h.Y+h.H/2, axisFontSize, EscapeXML(h.Label))
}

func (Simple) RenderRow(buf *bytes.Buffer, r Row) {
	// The cap row closes the grid, so its line matches the border color.
	stroke := "#ddd"
	if r.Cap {
		stroke = "#ccc"
	}
	fmt.Fprintf(buf,
		`  <line class="hour-line" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
		r.LineStart, r.Y, r.LineEnd, r.Y, stroke)
	fmt.Fprintf(buf,
		`  <text class="hour-label" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.0f" text-anchor="middle" dominant-baseline="middle" fill="#666">%s</text>`+"\n",
		r.LabelX, r.Y, axisFontSize, EscapeXML(r.Label))
}

func (Simple) RenderCard(buf *bytes.Buffer, c Card) {
	fmt.Fprintf(buf,
		`  <rect id="card-%s" class="card" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" ry="3" fill="#dbeafe" stroke="#1d4ed8" stroke-width="1"/>`+"\n",
		EscapeXML(c.Key), c.X, c.Y, c.W, c.H)

	label := TruncateLabel(c)
	if c.DaysTotal > 1 {
		label = fmt.Sprintf("%s (%d/%d)", label, c.DayIndex, c.DaysTotal)
	}
	if label == "" || c.H < cardFontSize {
		return
	}
	fmt.Fprintf(buf,
		`  <text class="card-text" data-card="%s" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.0f" fill="#1e3a8a">%s</text>`+"\n",
		EscapeXML(c.Key), c.X+labelPadding, c.Y+cardFontSize+2, cardFontSize, EscapeXML(label))
}

func (Simple) RenderNowLine(buf *bytes.Buffer, l Line) {
	fmt.Fprintf(buf,
		`  <line class="now-line" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#dc2626" stroke-width="2"/>`+"\n",
		l.X, l.Y, l.X+l.W, l.Y)
	fmt.Fprintf(buf,
		`  <circle class="now-dot" cx="%.2f" cy="%.2f" r="4" fill="#dc2626"/>`+"\n",
		l.X, l.Y)
}
