package styles

import (
	"bytes"
	"encoding/xml"
)

const (
	cardFontSize  = 12.0
	axisFontSize  = 12.0
	fontCharWidth = 0.55
	labelPadding  = 6.0
)

// TruncateLabel shortens a card label so it fits the card width at the
// style's font size.
func TruncateLabel(c Card) string {
	label := c.Label
	availW := c.W - 2*labelPadding
	if availW <= 0 {
		return ""
	}

	charWidth := cardFontSize * fontCharWidth
	maxChars := int(availW / charWidth)
	if maxChars < 3 {
		maxChars = 3
	}

	if len(label) <= maxChars {
		return label
	}
	return label[:maxChars-2] + ".."
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
