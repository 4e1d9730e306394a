package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kreistad/timegrid/pkg/cache"
	errs "github.com/kreistad/timegrid/pkg/errors"
)

func writeSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.json")
	content := `[
		{"title": "Standup", "startDate": "2026-03-02T09:00:00", "endDate": "2026-03-02T09:15:00"},
		{"title": "Review", "startDate": "2026-03-03T10:00:00", "endDate": "2026-03-03T11:30:00"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func testOptions(t *testing.T) Options {
	return Options{
		Source: writeSource(t),
		From:   "2026-03-02",
		Till:   "2026-03-06",
		Logger: quietLogger(),
	}
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(cache.NewMemoryCache(), nil, quietLogger())
	defer runner.Close()

	result, err := runner.Execute(context.Background(), testOptions(t))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.RecordCount != 2 {
		t.Errorf("records = %d, want 2", result.Stats.RecordCount)
	}
	if result.Stats.ColumnCount != 5 {
		t.Errorf("columns = %d, want 5", result.Stats.ColumnCount)
	}
	if result.Stats.CardCount != 2 {
		t.Errorf("cards = %d, want 2", result.Stats.CardCount)
	}
	if result.ItemsHash == "" {
		t.Error("items hash unset")
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok {
		t.Fatal("svg artifact missing")
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Error("svg artifact malformed")
	}

	// Fresh cache: nothing hits on the first run.
	if result.CacheInfo.LoadHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("first run should miss everywhere: %+v", result.CacheInfo)
	}
}

func TestRunnerExecuteCacheHits(t *testing.T) {
	runner := NewRunner(cache.NewMemoryCache(), nil, quietLogger())
	defer runner.Close()
	opts := testOptions(t)

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LoadHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit every stage: %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from fresh render")
	}

	// Refresh bypasses the items cache.
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.LoadHit {
		t.Error("refresh should reload the source")
	}
}

func TestRunnerExecuteNowLineBypassesArtifactCache(t *testing.T) {
	runner := NewRunner(cache.NewMemoryCache(), nil, quietLogger())
	defer runner.Close()

	clock := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local)
	runner.Now = func() time.Time { return clock }

	opts := testOptions(t)
	opts.NowLine = true

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if !strings.Contains(string(first.Artifacts[FormatSVG]), `class="now-line"`) {
		t.Error("now marker missing from artifact")
	}

	// Advance the clock; the second run must re-render, not replay.
	clock = clock.Add(2 * time.Hour)
	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if second.CacheInfo.RenderHit {
		t.Error("time-dependent artifacts must not come from cache")
	}
	if string(first.Artifacts[FormatSVG]) == string(second.Artifacts[FormatSVG]) {
		t.Error("now marker should move with the clock")
	}
}

func TestRunnerExecuteInvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{From: "2026-03-02", Logger: quietLogger()})
	if !errs.Is(err, errs.ErrCodeInvalidSource) {
		t.Errorf("expected INVALID_SOURCE, got %v", err)
	}
}

func TestRunnerExecuteMissingSource(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	opts := Options{
		Source: filepath.Join(t.TempDir(), "absent.json"),
		From:   "2026-03-02",
		Logger: quietLogger(),
	}
	_, err := runner.Execute(context.Background(), opts)
	if !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestRunnerLayoutRangeErrorDegrades(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	defer runner.Close()

	opts := Options{From: "notadate", Logger: quietLogger()}
	layout := runner.ComputeLayout(context.Background(), nil, opts)

	if len(layout.Columns) != 0 {
		t.Error("unparseable range should yield zero columns")
	}
	if len(layout.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(layout.Diagnostics))
	}
	d := layout.Diagnostics[0]
	if d.Code != errs.ErrCodeInvalidRange || d.Record != -1 {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestRunnerLayoutKeyedOnPropertyNames(t *testing.T) {
	// Records whose times live under non-default field names produce an
	// empty layout under the default property names. Recomputing with the
	// right names must not be served that empty layout from cache.
	runner := NewRunner(cache.NewMemoryCache(), nil, quietLogger())
	defer runner.Close()

	records := []any{
		map[string]any{
			"title":  "Standup",
			"begin":  "2026-03-02T09:00:00",
			"finish": "2026-03-02T09:15:00",
		},
	}

	opts := Options{From: "2026-03-02", Till: "2026-03-02", Logger: quietLogger()}
	first := runner.ComputeLayout(context.Background(), records, opts)
	if len(first.Items) != 0 {
		t.Fatalf("default property names should place no cards, got %d", len(first.Items))
	}

	opts.StartProperty = "begin"
	opts.EndProperty = "finish"
	second, hit := runner.ComputeLayoutWithCacheInfo(context.Background(), records, opts)
	if hit {
		t.Error("changed property names must not hit the cached layout")
	}
	if len(second.Items) != 1 {
		t.Errorf("cards = %d, want 1", len(second.Items))
	}
}

func TestRunnerRenderAllFormats(t *testing.T) {
	// PNG and PDF shell out to rsvg-convert, so only the always-available
	// formats are exercised here.
	runner := NewRunner(cache.NewMemoryCache(), nil, quietLogger())
	defer runner.Close()

	opts := testOptions(t)
	opts.Formats = []string{FormatSVG, FormatJSON}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.Artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(result.Artifacts))
	}
	if !strings.Contains(string(result.Artifacts[FormatJSON]), `"cards"`) {
		t.Error("json artifact missing cards")
	}
}

func TestRunnerDistinctStylesDistinctArtifacts(t *testing.T) {
	runner := NewRunner(cache.NewMemoryCache(), nil, quietLogger())
	defer runner.Close()

	opts := testOptions(t)
	opts.Style = StyleSimple
	simple, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute simple: %v", err)
	}

	inkOpts := testOptions(t)
	inkOpts.Style = StyleInk
	ink, err := runner.Execute(context.Background(), inkOpts)
	if err != nil {
		t.Fatalf("Execute ink: %v", err)
	}

	if string(simple.Artifacts[FormatSVG]) == string(ink.Artifacts[FormatSVG]) {
		t.Error("styles should produce different artifacts")
	}
}

func TestNewRunnerNilDefaults(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	if runner.Cache == nil || runner.Keyer == nil || runner.Logger == nil || runner.Now == nil {
		t.Error("nil constructor arguments should get defaults")
	}
}
