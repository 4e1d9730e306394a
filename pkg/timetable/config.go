package timetable

import (
	errs "github.com/kreistad/timegrid/pkg/errors"
)

// Default measurement values. A zero field in Config means "use the
// default"; Resolve applies them.
const (
	// DefaultWidth is the overall frame width in pixels when the host
	// surface does not supply one.
	DefaultWidth = 800.0

	// DefaultTimeWidth is the width of the hour-label gutter.
	DefaultTimeWidth = 50.0

	// DefaultHourHeight is the number of pixels per 60 minutes.
	DefaultHourHeight = 60.0

	// DefaultLinesTopOffset is the vertical start of the grid below the
	// column headers.
	DefaultLinesTopOffset = 18.0

	// DefaultLinesLeftInset is the overlap correction applied to the
	// first column, whose nominal left edge sits under the time gutter.
	DefaultLinesLeftInset = 15.0

	// DefaultColumnHorizontalPadding is the card inset within a column.
	DefaultColumnHorizontalPadding = 10.0
)

// Default item field names holding the time bounds.
const (
	DefaultStartProperty = "startDate"
	DefaultEndProperty   = "endDate"
)

// Config is the immutable set of measurements and item-field names the
// layout derives rectangles from. All pixel fields are float64 so sinks
// can scale without rounding drift.
type Config struct {
	// Width is the overall pixel width of the frame.
	Width float64 `json:"width"`

	// TimeWidth is the width of the hour-label gutter.
	TimeWidth float64 `json:"time_width"`

	// HourHeight is pixels per 60 minutes.
	HourHeight float64 `json:"hour_height"`

	// ColumnWidth is the pixel width of one day column.
	// Defaults to Width - (TimeWidth - LinesLeftInset).
	ColumnWidth float64 `json:"column_width"`

	// ColumnHeaderHeight is the header row height. Defaults to HourHeight/2.
	ColumnHeaderHeight float64 `json:"column_header_height"`

	// LinesTopOffset is the vertical start of the grid.
	LinesTopOffset float64 `json:"lines_top_offset"`

	// LinesLeftInset is the first-column overlap correction.
	LinesLeftInset float64 `json:"lines_left_inset"`

	// ColumnHorizontalPadding is the card inset within a column.
	ColumnHorizontalPadding float64 `json:"column_horizontal_padding"`

	// StartProperty and EndProperty name the item fields holding the
	// time bounds. Values may be time.Time or ISO-8601 strings.
	StartProperty string `json:"start_property"`
	EndProperty   string `json:"end_property"`
}

// Resolve returns a copy of c with every zero field replaced by its
// default, including the computed defaults for ColumnWidth and
// ColumnHeaderHeight. Resolve is idempotent.
func (c Config) Resolve() Config {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.TimeWidth == 0 {
		c.TimeWidth = DefaultTimeWidth
	}
	if c.HourHeight == 0 {
		c.HourHeight = DefaultHourHeight
	}
	if c.LinesTopOffset == 0 {
		c.LinesTopOffset = DefaultLinesTopOffset
	}
	if c.LinesLeftInset == 0 {
		c.LinesLeftInset = DefaultLinesLeftInset
	}
	if c.ColumnHorizontalPadding == 0 {
		c.ColumnHorizontalPadding = DefaultColumnHorizontalPadding
	}
	if c.ColumnWidth == 0 {
		c.ColumnWidth = c.Width - (c.TimeWidth - c.LinesLeftInset)
	}
	if c.ColumnHeaderHeight == 0 {
		c.ColumnHeaderHeight = c.HourHeight / 2
	}
	if c.StartProperty == "" {
		c.StartProperty = DefaultStartProperty
	}
	if c.EndProperty == "" {
		c.EndProperty = DefaultEndProperty
	}
	return c
}

// MinuteHeight returns the number of pixels per minute.
func (c Config) MinuteHeight() float64 { return c.HourHeight / 60 }

// LinesLeftOffset returns the horizontal origin of the column band:
// the gutter width minus the first-column inset.
func (c Config) LinesLeftOffset() float64 { return c.TimeWidth - c.LinesLeftInset }

// HourWindow is the visible hour-of-day window [FromHour, ToHour).
// The zero value resolves to the full day.
type HourWindow struct {
	FromHour int `json:"from_hour"`
	ToHour   int `json:"to_hour"`
}

// Resolve maps the zero window to the full-day default [0, 24].
func (w HourWindow) Resolve() HourWindow {
	if w.FromHour == 0 && w.ToHour == 0 {
		return HourWindow{FromHour: 0, ToHour: 24}
	}
	return w
}

// Validate checks that both bounds are within [0, 24] and that the
// window is non-empty.
func (w HourWindow) Validate() error {
	if w.FromHour < 0 || w.FromHour > 24 || w.ToHour < 0 || w.ToHour > 24 {
		return errs.New(errs.ErrCodeInvalidHourWindow, "hour bounds must be within [0, 24], got [%d, %d]", w.FromHour, w.ToHour)
	}
	if w.FromHour >= w.ToHour {
		return errs.New(errs.ErrCodeInvalidHourWindow, "fromHour must be before toHour, got [%d, %d]", w.FromHour, w.ToHour)
	}
	return nil
}

// Hours returns the number of full hour rows in the window.
func (w HourWindow) Hours() int { return w.ToHour - w.FromHour }
