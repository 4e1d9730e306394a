package styles

import (
	"bytes"
	"fmt"
	"hash/fnv"
)

// inkPalette cycles card fills so adjacent items stay distinguishable.
// Fill is picked by hashing the card key, keeping renders deterministic.
var inkPalette = []string{"#fde68a", "#bbf7d0", "#bae6fd", "#fbcfe8", "#ddd6fe"}

const inkRoughFilter = `    <filter id="ink-rough">
      <feTurbulence type="fractalNoise" baseFrequency="0.015" numOctaves="2" seed="7" result="noise"/>
      <feDisplacementMap in="SourceGraphic" in2="noise" scale="2"/>
    </filter>`

// Ink renders a sketchy, hand-inked look using a turbulence filter and
// a serif typeface.
type Ink struct{}

func (Ink) Name() string { return "ink" }

func (Ink) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <defs>\n%s\n  </defs>\n", inkRoughFilter)
}

func (Ink) RenderHeader(buf *bytes.Buffer, h Header) {
	fmt.Fprintf(buf,
		`  <rect class="day-header" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#fffbeb" stroke="#78350f" stroke-width="1.5" filter="url(#ink-rough)"/>`+"\n",
		h.X, h.Y, h.W, h.H)
	fmt.Fprintf(buf,
		`  <text class="day-header-text" x="%.2f" y="%.2f" font-family="serif" font-style="italic" font-size="%.0f" text-anchor="middle" dominant-baseline="middle" fill="#78350f">%s</text>`+"\n",
		h.X+h.W/2, h.Y+h.H/2, axisFontSize+1, EscapeXML(h.Label))
}

func (Ink) RenderRow(buf *bytes.Buffer, r Row) {
	dash := ` stroke-dasharray="4 3"`
	if r.Cap {
		dash = ""
	}
	fmt.Fprintf(buf,
		`  <line class="hour-line" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#a8a29e" stroke-width="1"%s/>`+"\n",
		r.LineStart, r.Y, r.LineEnd, r.Y, dash)
	fmt.Fprintf(buf,
		`  <text class="hour-label" x="%.2f" y="%.2f" font-family="serif" font-size="%.0f" text-anchor="middle" dominant-baseline="middle" fill="#57534e">%s</text>`+"\n",
		r.LabelX, r.Y, axisFontSize, EscapeXML(r.Label))
}

func (Ink) RenderCard(buf *bytes.Buffer, c Card) {
	fmt.Fprintf(buf,
		`  <rect id="card-%s" class="card" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="5" ry="5" fill="%s" stroke="#44403c" stroke-width="1.5" filter="url(#ink-rough)"/>`+"\n",
		EscapeXML(c.Key), c.X, c.Y, c.W, c.H, inkFill(c.Key))

	label := TruncateLabel(c)
	if c.Continued() {
		label = "… " + label
	}
	if label == "" || c.H < cardFontSize {
		return
	}
	fmt.Fprintf(buf,
		`  <text class="card-text" data-card="%s" x="%.2f" y="%.2f" font-family="serif" font-size="%.0f" fill="#292524">%s</text>`+"\n",
		EscapeXML(c.Key), c.X+labelPadding, c.Y+cardFontSize+2, cardFontSize, EscapeXML(label))
}

func (Ink) RenderNowLine(buf *bytes.Buffer, l Line) {
	fmt.Fprintf(buf,
		`  <line class="now-line" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#b91c1c" stroke-width="2" stroke-dasharray="6 2" filter="url(#ink-rough)"/>`+"\n",
		l.X, l.Y, l.X+l.W, l.Y)
}

func inkFill(key string) string {
	h := fnv.New32a()
	h.Write([]byte(key))
	return inkPalette[int(h.Sum32())%len(inkPalette)]
}
