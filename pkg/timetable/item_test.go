package timetable

import (
	"testing"
	"time"

	errs "github.com/kreistad/timegrid/pkg/errors"
)

func TestParseInstant(t *testing.T) {
	want := time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)

	// time.Time passes through.
	got, err := ParseInstant(want)
	if err != nil || !got.Equal(want) {
		t.Errorf("time.Time: got %v, %v", got, err)
	}

	// *time.Time dereferences.
	got, err = ParseInstant(&want)
	if err != nil || !got.Equal(want) {
		t.Errorf("*time.Time: got %v, %v", got, err)
	}

	// nil *time.Time is an error.
	var nilTime *time.Time
	if _, err := ParseInstant(nilTime); err == nil {
		t.Error("nil *time.Time should error")
	}

	// String forms.
	for _, s := range []string{"2026-03-02T09:00:00", "2026-03-02 09:00:00"} {
		got, err = ParseInstant(s)
		if err != nil || !got.Equal(want) {
			t.Errorf("string %q: got %v, %v", s, got, err)
		}
	}

	// Non-date values are errors with the item code.
	if _, err := ParseInstant(42); !errs.Is(err, errs.ErrCodeInvalidItem) {
		t.Errorf("int should yield INVALID_ITEM, got %v", err)
	}
}

func TestResolveItems(t *testing.T) {
	records := []any{
		map[string]any{"startDate": "2026-03-02T09:00:00", "endDate": "2026-03-02T10:00:00"},
		map[string]any{"startDate": "garbage", "endDate": "2026-03-02T10:00:00"},
		map[string]any{"endDate": "2026-03-02T10:00:00"},
		nil,
		map[string]any{"startDate": "2026-03-02T10:00:00", "endDate": "2026-03-02T09:00:00"},
		map[string]any{"startDate": "2026-03-03T14:00:00", "endDate": "2026-03-03T15:00:00"},
	}

	items, diags := ResolveItems(records, "startDate", "endDate")
	if len(items) != 2 {
		t.Fatalf("expected 2 valid items, got %d", len(items))
	}
	if len(diags) != 4 {
		t.Fatalf("expected 4 diagnostics, got %d", len(diags))
	}

	// Diagnostics reference the offending record index.
	wantRecords := []int{1, 2, 3, 4}
	for i, d := range diags {
		if d.Record != wantRecords[i] {
			t.Errorf("diagnostic %d record = %d, want %d", i, d.Record, wantRecords[i])
		}
		if d.Code != errs.ErrCodeInvalidItem {
			t.Errorf("diagnostic %d code = %s", i, d.Code)
		}
	}
}

func TestResolveItemsCustomProperties(t *testing.T) {
	records := []any{
		map[string]any{"begins": "2026-03-02T09:00:00", "ends": "2026-03-02T10:00:00"},
	}
	items, diags := ResolveItems(records, "begins", "ends")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestResolveItemsStructRecord(t *testing.T) {
	type shift struct {
		Start time.Time
		End   time.Time
	}
	rec := shift{
		Start: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
	}

	items, diags := ResolveItems([]any{rec, &rec}, "Start", "End")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].Start.Equal(rec.Start) {
		t.Errorf("Start = %v, want %v", items[0].Start, rec.Start)
	}
}

func TestItemLabel(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"title wins", map[string]any{"title": "Standup", "name": "ignored"}, "Standup"},
		{"summary next", map[string]any{"summary": "Review", "name": "ignored"}, "Review"},
		{"name", map[string]any{"name": "Retro"}, "Retro"},
		{"label", map[string]any{"label": "Focus"}, "Focus"},
		{"empty title skipped", map[string]any{"title": "", "name": "Fallback"}, "Fallback"},
		{"no label fields", map[string]any{"startDate": "x"}, ""},
		{"nil raw", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (Item{Raw: tt.raw}).Label(); got != tt.want {
				t.Errorf("Label = %q, want %q", got, tt.want)
			}
		})
	}
}
