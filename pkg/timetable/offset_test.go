package timetable

import (
	"testing"
	"time"
)

func TestTopOffset(t *testing.T) {
	cfg := Config{}.Resolve()
	w := HourWindow{FromHour: 8, ToHour: 20}
	at := func(h, m int) time.Time {
		return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"window start", at(8, 0), 18},
		{"one hour in", at(9, 0), 78},
		{"half hour", at(9, 30), 108},
		{"before window clamps", at(7, 15), 18},
		{"seconds ignored", at(9, 0).Add(59 * time.Second), 78},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TopOffset(tt.t, w, cfg); got != tt.want {
				t.Errorf("TopOffset = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopOffsetMonotonic(t *testing.T) {
	cfg := Config{}.Resolve()
	w := HourWindow{FromHour: 0, ToHour: 24}

	prev := -1.0
	for m := 0; m < 24*60; m += 17 {
		ts := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC).Add(time.Duration(m) * time.Minute)
		got := TopOffset(ts, w, cfg)
		if got <= prev {
			t.Fatalf("offset not increasing at minute %d: %v <= %v", m, got, prev)
		}
		prev = got
	}
}

func TestNowLine(t *testing.T) {
	cfg := Config{}.Resolve()
	w := HourWindow{FromHour: 8, ToHour: 20}
	now := time.Date(2026, 3, 2, 12, 30, 0, 0, time.UTC)

	m := NowLine(now, 5, w, cfg)
	if m.Top != TopOffset(now, w, cfg) {
		t.Errorf("now-line top %v differs from TopOffset %v", m.Top, TopOffset(now, w, cfg))
	}
	if m.Left != cfg.LinesLeftOffset() {
		t.Errorf("Left = %v, want %v", m.Left, cfg.LinesLeftOffset())
	}
	if m.Width != 5*cfg.ColumnWidth {
		t.Errorf("Width = %v, want %v", m.Width, 5*cfg.ColumnWidth)
	}
}
