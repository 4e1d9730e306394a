package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/kreistad/timegrid/pkg/cache"
	errs "github.com/kreistad/timegrid/pkg/errors"
	"github.com/kreistad/timegrid/pkg/pipeline"
)

func TestRequestOptions(t *testing.T) {
	defaults := pipeline.Options{
		Source: "default.json",
		From:   "2026-03-02",
		Style:  "simple",
	}

	req := httptest.NewRequest(http.MethodGet, "/timetable.svg?"+url.Values{
		"source":   {"override.ics"},
		"from":     {"2026-04-01"},
		"till":     {"2026-04-05"},
		"fromHour": {"8"},
		"toHour":   {"20"},
		"style":    {"ink"},
		"now":      {"1"},
	}.Encode(), nil)

	opts := requestOptions(defaults, req)
	if opts.Source != "override.ics" || opts.From != "2026-04-01" || opts.Till != "2026-04-05" {
		t.Errorf("opts = %+v", opts)
	}
	if opts.FromHour != 8 || opts.ToHour != 20 {
		t.Errorf("hours = %d..%d", opts.FromHour, opts.ToHour)
	}
	if opts.Style != "ink" || !opts.NowLine {
		t.Errorf("style/now = %q/%v", opts.Style, opts.NowLine)
	}

	// No parameters: defaults pass through untouched.
	req = httptest.NewRequest(http.MethodGet, "/timetable.svg", nil)
	opts = requestOptions(defaults, req)
	if opts.Source != "default.json" || opts.From != "2026-03-02" || opts.NowLine {
		t.Errorf("defaults changed: %+v", opts)
	}

	// Non-numeric hour parameters are ignored.
	req = httptest.NewRequest(http.MethodGet, "/timetable.svg?fromHour=abc", nil)
	opts = requestOptions(defaults, req)
	if opts.FromHour != 0 {
		t.Errorf("bad fromHour applied: %d", opts.FromHour)
	}
}

func TestWriteHTTPError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid range", errs.New(errs.ErrCodeInvalidRange, "bad range"), http.StatusBadRequest},
		{"invalid style", errs.New(errs.ErrCodeInvalidStyle, "bad style"), http.StatusBadRequest},
		{"not found", errs.New(errs.ErrCodeNotFound, "missing"), http.StatusNotFound},
		{"timeout", errs.New(errs.ErrCodeTimeout, "slow"), http.StatusGatewayTimeout},
		{"network", errs.New(errs.ErrCodeNetwork, "down"), http.StatusBadGateway},
		{"internal", errs.New(errs.ErrCodeInternal, "boom"), http.StatusInternalServerError},
		{"uncoded", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeHTTPError(rec, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestServeMux(t *testing.T) {
	source := filepath.Join(t.TempDir(), "schedule.json")
	content := `[{"title": "Standup", "startDate": "2026-03-02T09:00:00", "endDate": "2026-03-02T09:15:00"}]`
	if err := os.WriteFile(source, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	logger := log.NewWithOptions(io.Discard, log.Options{})
	c := &CLI{Logger: logger}
	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
	defer runner.Close()

	defaults := pipeline.Options{Source: source, From: "2026-03-02", Logger: logger}
	mux := c.newServeMux(runner, defaults)

	// Health endpoint.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}

	// SVG endpoint.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/timetable.svg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("svg status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), ">Standup<") {
		t.Error("svg body missing card")
	}

	// JSON endpoint with an override.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/timetable.json?till=2026-03-04", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("json status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := strings.Count(rec.Body.String(), `"date"`); got != 3 {
		t.Errorf("expected 3 columns in JSON body, got %d date fields", got)
	}

	// A bad range override surfaces as 400.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/timetable.svg?source=absent.csv", nil))
	if rec.Code == http.StatusOK {
		t.Error("unloadable source should not return 200")
	}
}
