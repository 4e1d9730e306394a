package timetable

import (
	"math"
	"time"

	errs "github.com/kreistad/timegrid/pkg/errors"
)

// DateRange is the inclusive visible date window. Time-of-day on the
// bounds is ignored when expanding into columns.
type DateRange struct {
	From time.Time `json:"from"`
	Till time.Time `json:"till"`
}

// SingleDay returns a range covering just the given day.
func SingleDay(d time.Time) DateRange {
	return DateRange{From: d, Till: d}
}

// Validate checks that both bounds are set and ordered.
func (r DateRange) Validate() error {
	if r.From.IsZero() || r.Till.IsZero() {
		return errs.New(errs.ErrCodeInvalidRange, "range bounds must both be set")
	}
	if StartOfDay(r.From).After(StartOfDay(r.Till)) {
		return errs.New(errs.ErrCodeInvalidRange, "range start %s is after end %s",
			r.From.Format("2006-01-02"), r.Till.Format("2006-01-02"))
	}
	return nil
}

// rangeLayouts are the accepted textual forms for range bounds, tried in
// order. Date-only forms are interpreted at midnight local time.
var rangeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRange parses textual range bounds. An empty till reuses from, so a
// single date yields a one-day range.
func ParseRange(from, till string) (DateRange, error) {
	if till == "" {
		till = from
	}
	f, err := parseInstantString(from)
	if err != nil {
		return DateRange{}, errs.Wrap(errs.ErrCodeInvalidRange, err, "unparseable range start %q", from)
	}
	t, err := parseInstantString(till)
	if err != nil {
		return DateRange{}, errs.Wrap(errs.ErrCodeInvalidRange, err, "unparseable range end %q", till)
	}
	r := DateRange{From: f, Till: t}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// ColumnDay is one visible calendar day: Date is midnight of the day,
// Start and End are the day clipped to the hour window. Columns are
// created fresh on every layout pass and never mutated.
type ColumnDay struct {
	Date  time.Time `json:"date"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the day-granularity difference between a and b,
// ignoring time-of-day. Zero when both fall on the same day; negative
// when b precedes a. Rounding absorbs DST-shortened and -lengthened days.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(StartOfDay(b).Sub(StartOfDay(a)).Hours() / 24))
}

// BuildColumns expands the range into one ColumnDay per calendar day,
// from .. till inclusive, each clipped to the hour window. The range and
// window are assumed valid; Compute routes invalid inputs to diagnostics
// before calling this.
func BuildColumns(r DateRange, w HourWindow) []ColumnDay {
	n := DaysBetween(r.From, r.Till) + 1
	cols := make([]ColumnDay, 0, n)
	for i := 0; i < n; i++ {
		date := StartOfDay(r.From).AddDate(0, 0, i)
		y, m, d := date.Date()
		cols = append(cols, ColumnDay{
			Date:  date,
			Start: time.Date(y, m, d, w.FromHour, 0, 0, 0, date.Location()),
			End:   time.Date(y, m, d, w.ToHour-1, 59, 59, int(999*time.Millisecond), date.Location()),
		})
	}
	return cols
}
