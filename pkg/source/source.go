// Package source loads item records for the layout pipeline.
//
// A source is a JSON or YAML file of loose records, or an ICS calendar
// (local file or http/https URL). Loading always produces []any of
// map[string]any records -- the shape pkg/timetable's item boundary
// expects -- and never interprets the time fields itself; validation is
// the layout's job.
package source

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kreistad/timegrid/pkg/cache"
	errs "github.com/kreistad/timegrid/pkg/errors"
	"github.com/kreistad/timegrid/pkg/source/ics"
)

// document is the accepted file shape: either a top-level array of
// records, or an object with an "items" array.
type document struct {
	Items []any `json:"items" yaml:"items"`
}

// Load reads item records from path, which may be a local .json, .yaml,
// .yml, or .ics file, or an http/https URL to an ICS calendar.
func Load(ctx context.Context, path string) ([]any, error) {
	return LoadCached(ctx, path, nil, nil)
}

// LoadCached is Load with remote fetches routed through a TTL'd
// response cache. Local files are always read fresh; a nil cache
// behaves like Load.
func LoadCached(ctx context.Context, path string, c cache.Cache, keyer cache.Keyer) ([]any, error) {
	if err := errs.ValidateSourcePath(path); err != nil {
		return nil, err
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return ics.FetchCached(ctx, nil, path, c, keyer)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeNotFound, err, "source %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "read %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSON(path, data)
	case ".yaml", ".yml":
		return decodeYAML(path, data)
	case ".ics":
		return ics.Parse(data)
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported source type %q (want .json, .yaml, or .ics)", filepath.Ext(path))
	}
}

func decodeJSON(path string, data []byte) ([]any, error) {
	var records []any
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "decode %s", path)
	}
	if doc.Items == nil {
		return nil, errs.New(errs.ErrCodeInvalidSource, "%s has neither a top-level array nor an \"items\" array", path)
	}
	return doc.Items, nil
}

func decodeYAML(path string, data []byte) ([]any, error) {
	var records []any
	if err := yaml.Unmarshal(data, &records); err == nil && records != nil {
		return records, nil
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "decode %s", path)
	}
	if doc.Items == nil {
		return nil, errs.New(errs.ErrCodeInvalidSource, "%s has neither a top-level list nor an \"items\" list", path)
	}
	return doc.Items, nil
}
