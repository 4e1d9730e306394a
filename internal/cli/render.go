package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kreistad/timegrid/pkg/pipeline"
)

// renderCommand creates the render command for generating timetable
// outputs from a source file or URL.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [source]",
		Short: "Render a timetable from a JSON, YAML, or ICS source",
		Long: `Render a timetable from a JSON, YAML, or ICS source.

The source may be a local file or an http(s) URL. Items are placed on a
day-column grid between --from and --till; hours outside the
--from-hour/--to-hour window are not drawn.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Source = args[0]
			}
			fileCfg, err := loadFileConfig(configPath)
			if err != nil {
				return err
			}
			fileCfg.apply(&opts)
			opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/timegrid/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().StringVar(&opts.From, "from", "", "first visible day (e.g. 2026-03-02)")
	cmd.Flags().StringVar(&opts.Till, "till", "", "last visible day (default: same as --from)")
	cmd.Flags().IntVar(&opts.FromHour, "from-hour", 0, "first visible hour (0-23)")
	cmd.Flags().IntVar(&opts.ToHour, "to-hour", 0, "hour the grid ends at (1-24, default 24)")
	cmd.Flags().StringVar(&opts.StartProperty, "start-prop", "", "item field holding the start time (default startDate)")
	cmd.Flags().StringVar(&opts.EndProperty, "end-prop", "", "item field holding the end time (default endDate)")
	cmd.Flags().StringVar(&opts.Style, "style", "", "visual style: simple (default), ink")
	cmd.Flags().BoolVar(&opts.NowLine, "now", false, "draw the current-time marker")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "embed hover-highlight script in SVG output")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass caches and recompute everything")

	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width in pixels")
	cmd.Flags().Float64Var(&opts.HourHeight, "hour-height", 0, "pixels per hour")
	cmd.Flags().Float64Var(&opts.ColumnWidth, "column-width", 0, "pixel width of one day column")

	return cmd
}

// runRender executes the pipeline and writes the requested artifacts.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache, "")
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Source))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Render complete")
	for _, d := range result.Layout.Diagnostics {
		if d.Record >= 0 {
			printWarning("record %d skipped: %s", d.Record, d.Message)
		} else {
			printWarning("%s", d.Message)
		}
	}

	for _, format := range opts.Formats {
		path := outputPath(output, opts.Source, format, len(opts.Formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printStats(result.Stats.ColumnCount, result.Stats.CardCount,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// outputPath derives the destination file for one format. With multiple
// formats the output (or source) acts as a base path and each format
// gets its own extension.
func outputPath(output, source, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		name := filepath.Base(source)
		base = strings.TrimSuffix(name, filepath.Ext(name))
		if base == "" || base == "." {
			base = "timetable"
		}
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}
