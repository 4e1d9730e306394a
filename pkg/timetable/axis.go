package timetable

import "fmt"

// axisLabelFontSize is the nominal hour-label font size used to size the
// trailing cap row. Sinks are free to render labels at their own size;
// only the cap row height depends on this value.
const axisLabelFontSize = 12.0

// AxisRow is one hour row of the grid. The final row (Hour == ToHour) is
// a closing cap: reduced height, no side borders, never hosts cards -- it
// only terminates the grid below the last full hour.
type AxisRow struct {
	Hour   int     `json:"hour"`
	Label  string  `json:"label"`
	Height float64 `json:"height"`
	Cap    bool    `json:"cap,omitempty"`
}

// BuildAxis produces one row per hour in [FromHour, ToHour] inclusive.
// The inclusive upper bound yields the trailing cap row, not a repeat of
// the first row.
func BuildAxis(w HourWindow, cfg Config) []AxisRow {
	rows := make([]AxisRow, 0, w.Hours()+1)
	for h := w.FromHour; h <= w.ToHour; h++ {
		row := AxisRow{
			Hour:   h,
			Label:  axisLabel(h),
			Height: cfg.HourHeight,
		}
		if h == w.ToHour {
			row.Height = capRowHeight(cfg)
			row.Cap = true
		}
		rows = append(rows, row)
	}
	return rows
}

// capRowHeight is the reduced height of the closing cap row.
func capRowHeight(cfg Config) float64 {
	return cfg.LinesTopOffset + axisLabelFontSize/2
}

// GridHeight returns the total pixel height of the grid region below the
// column headers: the top offset, one full row per hour, and the cap row.
func GridHeight(w HourWindow, cfg Config) float64 {
	return cfg.LinesTopOffset + float64(w.Hours())*cfg.HourHeight + capRowHeight(cfg)
}

// axisLabel formats an hour as "HH:00". Hour 24 wraps to "00:00".
func axisLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour%24)
}
