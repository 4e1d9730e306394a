package sink

import (
	"encoding/json"
	"time"

	errs "github.com/kreistad/timegrid/pkg/errors"
	"github.com/kreistad/timegrid/pkg/timetable"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style   string
	now     time.Time
	showNow bool
}

// WithJSONStyle records the style name in the output for documentation
// or round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONNow includes the now-marker geometry for the given instant.
func WithJSONNow(now time.Time) JSONOption {
	return func(r *jsonRenderer) { r.now = now; r.showNow = true }
}

type jsonOutput struct {
	Width       float64                `json:"width"`
	Height      float64                `json:"height"`
	Style       string                 `json:"style,omitempty"`
	Window      timetable.HourWindow   `json:"window"`
	Columns     []jsonColumn           `json:"columns"`
	Axis        []timetable.AxisRow    `json:"axis"`
	Cards       []jsonCard             `json:"cards"`
	Now         *timetable.NowMarker   `json:"now,omitempty"`
	Diagnostics []timetable.Diagnostic `json:"diagnostics,omitempty"`
}

type jsonColumn struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type jsonCard struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	Top       float64 `json:"top"`
	Left      float64 `json:"left"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	DayIndex  int     `json:"day_index"`
	DaysTotal int     `json:"days_total"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
}

// RenderJSON exports the computed layout as a pretty-printed JSON
// document, the data interchange format for embedding the geometry in
// other renderers. Output is deterministic: cards appear in layout
// order and timestamps use RFC 3339 with millisecond precision.
func RenderJSON(res timetable.Result, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	frame := frameFor(res)
	out := jsonOutput{
		Width:       frame.width,
		Height:      frame.height,
		Style:       r.style,
		Window:      res.Window,
		Columns:     make([]jsonColumn, 0, len(res.Columns)),
		Axis:        res.Axis,
		Cards:       make([]jsonCard, 0, len(res.Items)),
		Diagnostics: res.Diagnostics,
	}

	for _, col := range res.Columns {
		out.Columns = append(out.Columns, jsonColumn{
			Date:  stamp(col.Date),
			Start: stamp(col.Start),
			End:   stamp(col.End),
		})
	}
	for _, it := range res.Items {
		out.Cards = append(out.Cards, jsonCard{
			Key:       it.Key,
			Label:     it.Item.Label(),
			Top:       it.Rect.Top,
			Left:      it.Rect.Left,
			Width:     it.Rect.Width,
			Height:    it.Rect.Height,
			DayIndex:  it.DayIndex,
			DaysTotal: it.DaysTotal,
			Start:     stamp(it.Item.Start),
			End:       stamp(it.Item.End),
		})
	}

	if r.showNow && len(res.Columns) > 0 {
		m := timetable.NowLine(r.now, len(res.Columns), res.Window, res.Config)
		out.Now = &m
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "marshal layout")
	}
	return append(data, '\n'), nil
}

func stamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000Z07:00")
}
