package timetable

import "testing"

func TestConfigResolveDefaults(t *testing.T) {
	cfg := Config{}.Resolve()

	if cfg.Width != 800 {
		t.Errorf("Width = %v, want 800", cfg.Width)
	}
	if cfg.TimeWidth != 50 {
		t.Errorf("TimeWidth = %v, want 50", cfg.TimeWidth)
	}
	if cfg.HourHeight != 60 {
		t.Errorf("HourHeight = %v, want 60", cfg.HourHeight)
	}
	// ColumnWidth default is derived: Width - (TimeWidth - LinesLeftInset).
	if cfg.ColumnWidth != 765 {
		t.Errorf("ColumnWidth = %v, want 765", cfg.ColumnWidth)
	}
	if cfg.ColumnHeaderHeight != 30 {
		t.Errorf("ColumnHeaderHeight = %v, want 30", cfg.ColumnHeaderHeight)
	}
	if cfg.StartProperty != "startDate" || cfg.EndProperty != "endDate" {
		t.Errorf("property defaults = %q/%q", cfg.StartProperty, cfg.EndProperty)
	}
}

func TestConfigResolveKeepsExplicit(t *testing.T) {
	cfg := Config{Width: 1200, ColumnWidth: 300, HourHeight: 40}.Resolve()

	if cfg.Width != 1200 {
		t.Errorf("Width = %v, want 1200", cfg.Width)
	}
	if cfg.ColumnWidth != 300 {
		t.Errorf("explicit ColumnWidth overridden: %v", cfg.ColumnWidth)
	}
	if cfg.ColumnHeaderHeight != 20 {
		t.Errorf("ColumnHeaderHeight = %v, want HourHeight/2 = 20", cfg.ColumnHeaderHeight)
	}
}

func TestConfigResolveIdempotent(t *testing.T) {
	once := Config{Width: 640}.Resolve()
	twice := once.Resolve()
	if once != twice {
		t.Errorf("Resolve not idempotent: %+v vs %+v", once, twice)
	}
}

func TestConfigDerived(t *testing.T) {
	cfg := Config{}.Resolve()
	if cfg.MinuteHeight() != 1 {
		t.Errorf("MinuteHeight = %v, want 1", cfg.MinuteHeight())
	}
	if cfg.LinesLeftOffset() != 35 {
		t.Errorf("LinesLeftOffset = %v, want 35", cfg.LinesLeftOffset())
	}
}

func TestHourWindowResolve(t *testing.T) {
	if w := (HourWindow{}).Resolve(); w.FromHour != 0 || w.ToHour != 24 {
		t.Errorf("zero window should resolve to [0, 24], got %+v", w)
	}
	if w := (HourWindow{FromHour: 8, ToHour: 20}).Resolve(); w.FromHour != 8 || w.ToHour != 20 {
		t.Errorf("explicit window changed by Resolve: %+v", w)
	}
}

func TestHourWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		w       HourWindow
		wantErr bool
	}{
		{"full day", HourWindow{0, 24}, false},
		{"working hours", HourWindow{8, 20}, false},
		{"single hour", HourWindow{9, 10}, false},
		{"empty", HourWindow{9, 9}, true},
		{"reversed", HourWindow{20, 8}, true},
		{"negative from", HourWindow{-1, 12}, true},
		{"till past 24", HourWindow{8, 25}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
