package timetable

import "time"

// TopOffset is the canonical time→pixel mapping: the vertical offset of
// instant t within the grid region. Card placement and the now-line
// marker share this single function, so the two can never drift apart.
//
// Times at or before FromHour:00 clamp to the top of the grid rather
// than producing a negative offset. Seconds are ignored; the grid's
// resolution is one minute.
func TopOffset(t time.Time, w HourWindow, cfg Config) float64 {
	minutes := (t.Hour()-w.FromHour)*60 + t.Minute()
	if minutes < 0 {
		minutes = 0
	}
	return float64(minutes)*cfg.MinuteHeight() + cfg.LinesTopOffset
}

// NowMarker is the geometry of the current-time indicator: a horizontal
// line spanning every visible column. The engine only computes the
// geometry; the collaborator owning the redraw clock recomputes it
// against wall-clock time as often as it likes.
type NowMarker struct {
	Top   float64 `json:"top"`
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// NowLine places the current-time indicator for the given instant across
// columnCount visible columns.
func NowLine(now time.Time, columnCount int, w HourWindow, cfg Config) NowMarker {
	return NowMarker{
		Top:   TopOffset(now, w, cfg),
		Left:  cfg.LinesLeftOffset(),
		Width: cfg.ColumnWidth * float64(columnCount),
	}
}
