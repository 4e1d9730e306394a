// Package pipeline provides the core timetable pipeline for Timegrid.
//
// This package implements the complete load → layout → render pipeline
// that can be used by CLI, server, and library components. By
// centralizing this logic, we ensure consistent behavior across all
// entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read item records from a JSON, YAML, or ICS source
//  2. Layout: Compute day columns, card rectangles, and the hour axis
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete
// pipeline, and each stage is memoized independently: loaded records by
// source, layouts by items hash plus geometry, artifacts by layout hash
// plus render options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "schedule.json",
//	    From:    "2026-03-02",
//	    Till:    "2026-03-06",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kreistad/timegrid/pkg/cache"
	errs "github.com/kreistad/timegrid/pkg/errors"
	"github.com/kreistad/timegrid/pkg/timetable"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultStyle is the default visual style.
const DefaultStyle = StyleSimple

// Style constants for visual styles.
const (
	StyleSimple = "simple" // plain rectangular cards
	StyleInk    = "ink"    // sketchy hand-inked look
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	StyleSimple: true,
	StyleInk:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the timetable pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Load options
	Source        string `json:"source"`
	StartProperty string `json:"start_property,omitempty"`
	EndProperty   string `json:"end_property,omitempty"`
	Refresh       bool   `json:"refresh,omitempty"`

	// Layout options
	From     string `json:"from"`
	Till     string `json:"till,omitempty"`
	FromHour int    `json:"from_hour,omitempty"`
	ToHour   int    `json:"to_hour,omitempty"`

	Width                   float64 `json:"width,omitempty"`
	TimeWidth               float64 `json:"time_width,omitempty"`
	HourHeight              float64 `json:"hour_height,omitempty"`
	ColumnWidth             float64 `json:"column_width,omitempty"`
	ColumnHeaderHeight      float64 `json:"column_header_height,omitempty"`
	LinesTopOffset          float64 `json:"lines_top_offset,omitempty"`
	LinesLeftInset          float64 `json:"lines_left_inset,omitempty"`
	ColumnHorizontalPadding float64 `json:"column_horizontal_padding,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	NowLine     bool     `json:"now_line,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	PNGScale    float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records are the loaded raw item records.
	Records []any

	// ItemsHash is the content hash of the loaded records.
	ItemsHash string

	// Layout is the computed timetable geometry.
	Layout timetable.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RecordCount int
	ColumnCount int
	CardCount   int
	LoadTime    time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether loaded records came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errs.New(errs.ErrCodeInvalidStyle,
			"invalid style: %q (must be one of: simple, ink)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading records.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" {
		return errs.New(errs.ErrCodeInvalidSource, "source is required")
	}
	if err := errs.ValidateSourcePath(o.Source); err != nil {
		return err
	}
	if o.StartProperty != "" {
		if err := errs.ValidatePropertyName(o.StartProperty); err != nil {
			return err
		}
	}
	if o.EndProperty != "" {
		if err := errs.ValidatePropertyName(o.EndProperty); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation. Geometry
// zeros are left in place; the layout engine resolves them itself so
// library callers and cached layouts agree on the applied values.
func (o *Options) SetLayoutDefaults() {
	if o.Till == "" {
		o.Till = o.From
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.PNGScale == 0 {
		o.PNGScale = 2.0
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// Range parses the textual date bounds into a DateRange.
func (o *Options) Range() (timetable.DateRange, error) {
	return timetable.ParseRange(o.From, o.Till)
}

// HourWindow returns the visible hour window, unresolved.
func (o *Options) HourWindow() timetable.HourWindow {
	return timetable.HourWindow{FromHour: o.FromHour, ToHour: o.ToHour}
}

// Config returns the layout configuration built from the options,
// unresolved.
func (o *Options) Config() timetable.Config {
	return timetable.Config{
		Width:                   o.Width,
		TimeWidth:               o.TimeWidth,
		HourHeight:              o.HourHeight,
		ColumnWidth:             o.ColumnWidth,
		ColumnHeaderHeight:      o.ColumnHeaderHeight,
		LinesTopOffset:          o.LinesTopOffset,
		LinesLeftInset:          o.LinesLeftInset,
		ColumnHorizontalPadding: o.ColumnHorizontalPadding,
		StartProperty:           o.StartProperty,
		EndProperty:             o.EndProperty,
	}
}

// ItemsKeyOpts returns cache key options for record loading.
func (o *Options) ItemsKeyOpts() cache.ItemsKeyOpts {
	return cache.ItemsKeyOpts{
		StartProperty: o.StartProperty,
		EndProperty:   o.EndProperty,
	}
}

// LayoutKeyOpts returns cache key options for layout computation. The
// resolved config is used so explicit defaults and omitted values map to
// the same key.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := o.Config().Resolve()
	w := o.HourWindow().Resolve()
	return cache.LayoutKeyOpts{
		From:          o.From,
		Till:          o.Till,
		FromHour:      w.FromHour,
		ToHour:        w.ToHour,
		StartProperty: cfg.StartProperty,
		EndProperty:   cfg.EndProperty,

		Width:                   cfg.Width,
		TimeWidth:               cfg.TimeWidth,
		HourHeight:              cfg.HourHeight,
		ColumnWidth:             cfg.ColumnWidth,
		ColumnHeaderHeight:      cfg.ColumnHeaderHeight,
		LinesTopOffset:          cfg.LinesTopOffset,
		LinesLeftInset:          cfg.LinesLeftInset,
		ColumnHorizontalPadding: cfg.ColumnHorizontalPadding,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
	}
}
