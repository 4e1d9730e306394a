package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kreistad/timegrid/pkg/pipeline"
	"github.com/kreistad/timegrid/pkg/timetable"
)

// View styles
var (
	viewHourStyle    = lipgloss.NewStyle().Foreground(colorDim)
	viewCardStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	viewTimeStyle    = lipgloss.NewStyle().Foreground(colorGray)
	viewNowStyle     = lipgloss.NewStyle().Foreground(colorRed)
	viewEmptyStyle   = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	viewHeaderSty    = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	viewDimHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command for browsing a schedule in the
// terminal.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "view [source]",
		Short: "Browse a schedule interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Source = args[0]
			}
			fileCfg, err := loadFileConfig(configPath)
			if err != nil {
				return err
			}
			fileCfg.apply(&opts)
			return c.runView(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/timegrid/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.From, "from", "", "day to open (default: today)")
	cmd.Flags().IntVar(&opts.FromHour, "from-hour", 0, "first visible hour (0-23)")
	cmd.Flags().IntVar(&opts.ToHour, "to-hour", 0, "hour the grid ends at (1-24, default 24)")
	cmd.Flags().StringVar(&opts.StartProperty, "start-prop", "", "item field holding the start time")
	cmd.Flags().StringVar(&opts.EndProperty, "end-prop", "", "item field holding the end time")

	return cmd
}

// runView loads the source and starts the interactive day browser.
func (c *CLI) runView(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache, "")
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	records, err := runner.Load(ctx, opts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.Source, err)
	}

	day := time.Now()
	if opts.From != "" {
		rng, err := opts.Range()
		if err != nil {
			return err
		}
		day = rng.From
	}

	model := newDayViewModel(records, day, opts)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// DayViewModel - Interactive single-day browser
// =============================================================================

// DayViewModel is the bubbletea model for paging through days of a
// schedule. Layout is recomputed per day; the computation is cheap
// enough that no caching is needed here.
type DayViewModel struct {
	records []any
	day     time.Time
	opts    pipeline.Options
	window  timetable.HourWindow
}

func newDayViewModel(records []any, day time.Time, opts pipeline.Options) DayViewModel {
	return DayViewModel{
		records: records,
		day:     timetable.StartOfDay(day),
		opts:    opts,
		window:  opts.HourWindow().Resolve(),
	}
}

func (m DayViewModel) Init() tea.Cmd {
	return nil
}

func (m DayViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.day = m.day.AddDate(0, 0, -1)
		case "right", "l":
			m.day = m.day.AddDate(0, 0, 1)
		case "t":
			m.day = timetable.StartOfDay(time.Now())
		}
	}
	return m, nil
}

func (m DayViewModel) View() string {
	res := timetable.Compute(
		timetable.SingleDay(m.day), m.window, m.records, m.opts.Config())

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Timegrid"))
	b.WriteString("  ")
	b.WriteString(viewHeaderSty.Render(m.day.Format("Monday, 02 Jan 2006")))
	b.WriteString("\n")
	b.WriteString(viewDimHelpStyle.Render("←/→ change day  t today  q quit"))
	b.WriteString("\n\n")

	if len(res.Items) == 0 {
		b.WriteString(viewEmptyStyle.Render("  no items in the visible window"))
		b.WriteString("\n")
		return b.String()
	}

	today := timetable.StartOfDay(time.Now()).Equal(m.day)
	nowHour := time.Now().Hour()

	byHour := make(map[int][]timetable.PositionedItem)
	for _, it := range res.Items {
		h := it.Item.Start.Hour()
		if timetable.StartOfDay(it.Item.Start).Before(m.day) {
			h = m.window.FromHour
		}
		if h < m.window.FromHour {
			h = m.window.FromHour
		}
		byHour[h] = append(byHour[h], it)
	}

	for h := m.window.FromHour; h < m.window.ToHour; h++ {
		label := fmt.Sprintf("%02d:00", h%24)
		if today && h == nowHour {
			b.WriteString(viewNowStyle.Render(label + " ▸"))
		} else {
			b.WriteString(viewHourStyle.Render(label + " │"))
		}
		for i, it := range byHour[h] {
			if i > 0 {
				b.WriteString(viewHourStyle.Render("      │"))
			}
			b.WriteString(" ")
			b.WriteString(viewCardStyle.Render(cardTitle(it)))
			b.WriteString(" ")
			b.WriteString(viewTimeStyle.Render(cardSpan(it)))
			b.WriteString("\n")
		}
		if len(byHour[h]) == 0 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func cardTitle(it timetable.PositionedItem) string {
	label := it.Item.Label()
	if label == "" {
		label = "(untitled)"
	}
	if it.DaysTotal > 1 {
		label = fmt.Sprintf("%s (%d/%d)", label, it.DayIndex, it.DaysTotal)
	}
	return label
}

func cardSpan(it timetable.PositionedItem) string {
	return fmt.Sprintf("%s–%s",
		it.Item.Start.Format("15:04"), it.Item.End.Format("15:04"))
}
