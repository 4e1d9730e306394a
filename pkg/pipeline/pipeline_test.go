package pipeline

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	errs "github.com/kreistad/timegrid/pkg/errors"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"svg", "png", "pdf", "json"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("gif"); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("expected INVALID_FORMAT, got %v", err)
	}
	if err := ValidateFormats([]string{"svg", "bmp"}); err == nil {
		t.Error("ValidateFormats should reject any bad entry")
	}
}

func TestValidateStyle(t *testing.T) {
	for _, s := range []string{StyleSimple, StyleInk} {
		if err := ValidateStyle(s); err != nil {
			t.Errorf("ValidateStyle(%q) = %v", s, err)
		}
	}
	if err := ValidateStyle("neon"); !errs.Is(err, errs.ErrCodeInvalidStyle) {
		t.Errorf("expected INVALID_STYLE, got %v", err)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{
		Source: "schedule.json",
		From:   "2026-03-02",
		Logger: quietLogger(),
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Till != "2026-03-02" {
		t.Errorf("Till should default to From: %q", opts.Till)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style = %q", opts.Style)
	}
	if opts.PNGScale != 2.0 {
		t.Errorf("PNGScale = %v", opts.PNGScale)
	}

	// Idempotent.
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if opts.Till != before.Till || opts.Style != before.Style {
		t.Error("second call changed options")
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"missing source", Options{From: "2026-03-02"}, errs.ErrCodeInvalidSource},
		{"bad scheme", Options{Source: "ftp://host/cal.ics", From: "2026-03-02"}, errs.ErrCodeInvalidSource},
		{"bad property", Options{Source: "a.json", StartProperty: "has space", From: "2026-03-02"}, errs.ErrCodeInvalidConfig},
		{"bad format", Options{Source: "a.json", From: "2026-03-02", Formats: []string{"gif"}}, errs.ErrCodeInvalidFormat},
		{"bad style", Options{Source: "a.json", From: "2026-03-02", Style: "neon"}, errs.ErrCodeInvalidStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = quietLogger()
			err := tt.opts.ValidateAndSetDefaults()
			if !errs.Is(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestOptionsRange(t *testing.T) {
	opts := Options{From: "2026-03-02", Till: "2026-03-06"}
	rng, err := opts.Range()
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if rng.From.IsZero() || rng.Till.IsZero() {
		t.Error("range bounds unset")
	}

	opts = Options{From: "bogus"}
	if _, err := opts.Range(); !errs.Is(err, errs.ErrCodeInvalidRange) {
		t.Errorf("expected INVALID_RANGE, got %v", err)
	}
}

func TestOptionsConfig(t *testing.T) {
	opts := Options{
		Width:         1200,
		HourHeight:    40,
		StartProperty: "begins",
	}
	cfg := opts.Config()
	if cfg.Width != 1200 || cfg.HourHeight != 40 {
		t.Errorf("config geometry = %+v", cfg)
	}
	if cfg.StartProperty != "begins" {
		t.Errorf("StartProperty = %q", cfg.StartProperty)
	}
	// Config is handed over unresolved; the engine applies defaults.
	if cfg.TimeWidth != 0 {
		t.Errorf("TimeWidth should stay zero: %v", cfg.TimeWidth)
	}
}

func TestLayoutKeyOptsNormalized(t *testing.T) {
	// Explicit defaults and omitted values must map to the same cache key.
	implicit := Options{From: "2026-03-02", Till: "2026-03-02"}
	explicit := Options{
		From:     "2026-03-02",
		Till:     "2026-03-02",
		FromHour: 0, ToHour: 24,
		Width:      800,
		HourHeight: 60,
	}
	if implicit.LayoutKeyOpts() != explicit.LayoutKeyOpts() {
		t.Error("resolved defaults should normalize layout key opts")
	}

	different := Options{From: "2026-03-02", Till: "2026-03-02", Width: 1200}
	if implicit.LayoutKeyOpts() == different.LayoutKeyOpts() {
		t.Error("distinct geometry must produce distinct key opts")
	}

	// The property names feed the layout, so they are part of the key.
	defaultProps := Options{
		From: "2026-03-02", Till: "2026-03-02",
		StartProperty: "startDate", EndProperty: "endDate",
	}
	if implicit.LayoutKeyOpts() != defaultProps.LayoutKeyOpts() {
		t.Error("explicit default property names should normalize")
	}
	customProps := Options{
		From: "2026-03-02", Till: "2026-03-02",
		StartProperty: "begin", EndProperty: "finish",
	}
	if implicit.LayoutKeyOpts() == customProps.LayoutKeyOpts() {
		t.Error("distinct property names must produce distinct key opts")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Style: "ink"}
	ko := opts.ArtifactKeyOpts("svg")
	if ko.Format != "svg" || ko.Style != "ink" {
		t.Errorf("ArtifactKeyOpts = %+v", ko)
	}
}
