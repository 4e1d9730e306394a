package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kreistad/timegrid/pkg/pipeline"
)

// layoutCommand creates the layout command for computing raw geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [source]",
		Short: "Compute timetable geometry without rendering",
		Long: `Compute timetable geometry without rendering.

The layout command loads a source and prints the computed columns, card
rectangles, and axis rows as JSON. The output is self-contained: it
includes the resolved hour window and configuration, so external
renderers never re-derive defaults.

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
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <source>.layout.json, \"-\" for stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/timegrid/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().StringVar(&opts.From, "from", "", "first visible day")
	cmd.Flags().StringVar(&opts.Till, "till", "", "last visible day (default: same as --from)")
	cmd.Flags().IntVar(&opts.FromHour, "from-hour", 0, "first visible hour (0-23)")
	cmd.Flags().IntVar(&opts.ToHour, "to-hour", 0, "hour the grid ends at (1-24, default 24)")
	cmd.Flags().StringVar(&opts.StartProperty, "start-prop", "", "item field holding the start time")
	cmd.Flags().StringVar(&opts.EndProperty, "end-prop", "", "item field holding the end time")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass caches and recompute everything")

	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width in pixels")
	cmd.Flags().Float64Var(&opts.HourHeight, "hour-height", 0, "pixels per hour")
	cmd.Flags().Float64Var(&opts.ColumnWidth, "column-width", 0, "pixel width of one day column")

	return cmd
}

// runLayout loads records, computes the layout, and writes it as JSON.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache, "")
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	p := newProgress(c.Logger)

	records, loadHit, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source, err)
	}

	layout, layoutHit := runner.ComputeLayoutWithCacheInfo(ctx, records, opts)
	p.done(fmt.Sprintf("Computed layout for %d records", len(records)))

	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize layout: %w", err)
	}
	data = append(data, '\n')

	if output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	path := output
	if path == "" {
		name := filepath.Base(opts.Source)
		path = strings.TrimSuffix(name, filepath.Ext(name)) + ".layout.json"
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	printSuccess("Layout complete")
	printFile(path)
	printStats(len(layout.Columns), len(layout.Items), loadHit && layoutHit)
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render %s --from %s", appName, opts.Source, opts.From))
	return nil
}
