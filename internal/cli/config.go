package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	errs "github.com/kreistad/timegrid/pkg/errors"
	"github.com/kreistad/timegrid/pkg/pipeline"
)

// configFileName is the per-user configuration file, looked up under
// XDG_CONFIG_HOME (or ~/.config) when --config is not given.
const configFileName = "config.toml"

// fileConfig mirrors the flag surface of the render and serve commands.
// Values act as defaults: explicit flags always win.
type fileConfig struct {
	Source        string `toml:"source"`
	StartProperty string `toml:"start_property"`
	EndProperty   string `toml:"end_property"`

	FromHour int `toml:"from_hour"`
	ToHour   int `toml:"to_hour"`

	Style   string `toml:"style"`
	NowLine bool   `toml:"now_line"`

	Geometry geometryConfig `toml:"geometry"`
}

type geometryConfig struct {
	Width                   float64 `toml:"width"`
	TimeWidth               float64 `toml:"time_width"`
	HourHeight              float64 `toml:"hour_height"`
	ColumnWidth             float64 `toml:"column_width"`
	ColumnHeaderHeight      float64 `toml:"column_header_height"`
	LinesTopOffset          float64 `toml:"lines_top_offset"`
	LinesLeftInset          float64 `toml:"lines_left_inset"`
	ColumnHorizontalPadding float64 `toml:"column_horizontal_padding"`
}

// loadFileConfig reads the config file at path, or the default location
// when path is empty. A missing default file is not an error.
func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return fileConfig{}, nil
		}
		return fileConfig{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return cfg, nil
}

// apply copies file-config values into opts for every field the user
// left unset on the command line.
func (cfg fileConfig) apply(opts *pipeline.Options) {
	if opts.Source == "" {
		opts.Source = cfg.Source
	}
	if opts.StartProperty == "" {
		opts.StartProperty = cfg.StartProperty
	}
	if opts.EndProperty == "" {
		opts.EndProperty = cfg.EndProperty
	}
	if opts.FromHour == 0 {
		opts.FromHour = cfg.FromHour
	}
	if opts.ToHour == 0 {
		opts.ToHour = cfg.ToHour
	}
	if opts.Style == "" {
		opts.Style = cfg.Style
	}
	if cfg.NowLine {
		opts.NowLine = true
	}

	g := cfg.Geometry
	if opts.Width == 0 {
		opts.Width = g.Width
	}
	if opts.TimeWidth == 0 {
		opts.TimeWidth = g.TimeWidth
	}
	if opts.HourHeight == 0 {
		opts.HourHeight = g.HourHeight
	}
	if opts.ColumnWidth == 0 {
		opts.ColumnWidth = g.ColumnWidth
	}
	if opts.ColumnHeaderHeight == 0 {
		opts.ColumnHeaderHeight = g.ColumnHeaderHeight
	}
	if opts.LinesTopOffset == 0 {
		opts.LinesTopOffset = g.LinesTopOffset
	}
	if opts.LinesLeftInset == 0 {
		opts.LinesLeftInset = g.LinesLeftInset
	}
	if opts.ColumnHorizontalPadding == 0 {
		opts.ColumnHorizontalPadding = g.ColumnHorizontalPadding
	}
}

// configDir returns the config directory using XDG standard
// (~/.config/timegrid/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
