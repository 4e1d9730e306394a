package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kreistad/timegrid/pkg/cache"
	errs "github.com/kreistad/timegrid/pkg/errors"
	"github.com/kreistad/timegrid/pkg/observability"
	"github.com/kreistad/timegrid/pkg/source"
	"github.com/kreistad/timegrid/pkg/timetable"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Now supplies the instant for the now marker. Defaults to
	// time.Now; tests inject a fixed clock.
	Now func() time.Time
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Now:    time.Now,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errs.Wrap(errs.GetCode(err), err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	records, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, errs.Wrap(errs.GetCode(err), err, "load %s", opts.Source)
	}
	result.Records = records
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.RecordCount = len(records)
	result.CacheInfo.LoadHit = loadHit

	if data, err := json.Marshal(records); err == nil {
		result.ItemsHash = cache.Hash(data)
	}

	r.Logger.Info("loaded records",
		"source", opts.Source,
		"records", len(records),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, layoutHit := r.ComputeLayoutWithCacheInfo(ctx, records, opts)
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.ColumnCount = len(layout.Columns)
	result.Stats.CardCount = len(layout.Items)
	result.CacheInfo.LayoutHit = layoutHit

	for _, d := range layout.Diagnostics {
		r.Logger.Warn("layout diagnostic",
			"code", d.Code, "record", d.Record, "message", d.Message)
	}
	r.Logger.Info("computed layout",
		"columns", len(layout.Columns),
		"cards", len(layout.Items),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, errs.Wrap(errs.GetCode(err), err, "render")
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads item records with caching and returns cache
// hit info.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]any, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ItemsKey(opts.Source, opts.ItemsKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var records []any
			if err := json.Unmarshal(data, &records); err == nil {
				observability.Cache().OnCacheHit(ctx, "items")
				return records, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "items")
	}

	records, err := source.LoadCached(ctx, opts.Source, r.Cache, r.Keyer)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(records); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLItems)
		observability.Cache().OnCacheSet(ctx, "items", len(data))
	}

	return records, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]any, error) {
	records, _, err := r.LoadWithCacheInfo(ctx, opts)
	return records, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info. Layout computation never fails: malformed ranges or
// records degrade to diagnostics on the returned result.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, records []any, opts Options) (timetable.Result, bool) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	itemsData, _ := json.Marshal(records)
	itemsHash := cache.Hash(itemsData)
	cacheKey := r.Keyer.LayoutKey(itemsHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached timetable.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true
			}
			// Corrupt entries fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	layout := r.computeLayout(ctx, records, opts)

	if data, err := json.Marshal(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return layout, false
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, records []any, opts Options) timetable.Result {
	layout, _ := r.ComputeLayoutWithCacheInfo(ctx, records, opts)
	return layout
}

// computeLayout runs the layout engine and emits observability events.
func (r *Runner) computeLayout(ctx context.Context, records []any, opts Options) timetable.Result {
	hooks := observability.Layout()

	rng, err := opts.Range()
	if err != nil {
		hooks.OnRangeRejected(ctx, opts.From, opts.Till, err)
		res := timetable.Compute(timetable.DateRange{}, opts.HourWindow(), nil, opts.Config())
		res.Diagnostics = []timetable.Diagnostic{{
			Code:    errs.GetCode(err),
			Message: err.Error(),
			Record:  -1,
		}}
		return res
	}

	start := time.Now()
	hooks.OnLayoutStart(ctx, timetable.DaysBetween(rng.From, rng.Till)+1, len(records))

	res := timetable.Compute(rng, opts.HourWindow(), records, opts.Config())

	for _, d := range res.Diagnostics {
		if d.Record >= 0 {
			hooks.OnItemSkipped(ctx, d.Record, errs.New(d.Code, "%s", d.Message))
		}
	}
	hooks.OnLayoutComplete(ctx, len(res.Items), time.Since(start))
	return res
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. Artifacts are never served from or written to the cache when
// the now marker is enabled, since its position depends on wall-clock
// time.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout timetable.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheable := !opts.NowLine
	var layoutHash string
	if cacheable {
		layoutData, err := json.Marshal(layout)
		if err != nil {
			return nil, false, errs.Wrap(errs.ErrCodeInternal, err, "serialize layout for cache key")
		}
		layoutHash = cache.Hash(layoutData)

		allCached := true
		artifacts := make(map[string][]byte)
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Layout()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	rendered, err := r.renderFormats(layout, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, layout timetable.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// now returns the runner's clock, falling back to wall-clock time for
// zero-value runners.
func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
