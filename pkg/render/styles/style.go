package styles

import "bytes"

// Style defines the visual appearance for timetable rendering.
// Implementations control how day headers, hour rows, item cards,
// and the now line are drawn.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderHeader writes the SVG for a single day column header.
	RenderHeader(buf *bytes.Buffer, h Header)
	// RenderRow writes the SVG for one hour row (grid line plus axis label).
	RenderRow(buf *bytes.Buffer, r Row)
	// RenderCard writes the SVG for a positioned item card.
	RenderCard(buf *bytes.Buffer, c Card)
	// RenderNowLine writes the SVG marker for the current time.
	RenderNowLine(buf *bytes.Buffer, l Line)
	// Name reports the style identifier recorded in exported artifacts.
	Name() string
}

// Card contains all data needed to render a single item card.
type Card struct {
	Key        string  // Stable card identifier
	Label      string  // Display text
	X, Y, W, H float64 // Position and dimensions
	DayIndex   int     // 1-based day of the item this card shows
	DaysTotal  int     // Total days the item spans
}

// Continued reports whether the card is a middle or trailing slice of
// a multi-day item.
func (c Card) Continued() bool { return c.DaysTotal > 1 && c.DayIndex > 1 }

// Header contains positioning data for a day column header.
type Header struct {
	Label      string  // Weekday plus date, e.g. "Mon 02"
	X, Y, W, H float64 // Position and dimensions
}

// Row contains positioning data for one hour row of the grid.
type Row struct {
	Label     string  // Axis label, e.g. "09:00"
	Y         float64 // Baseline of the hour boundary
	LineStart float64 // Left edge of the grid line
	LineEnd   float64 // Right edge of the grid line
	LabelX    float64 // Center of the axis label column
	Cap       bool    // Final short row closing the grid
}

// Line contains positioning data for the now marker.
type Line struct {
	X, Y, W float64
}
