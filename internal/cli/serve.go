package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	errs "github.com/kreistad/timegrid/pkg/errors"
	"github.com/kreistad/timegrid/pkg/pipeline"
)

const serverShutdownTimeout = 5 * time.Second

// serveCommand creates the serve command exposing timetables over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		redisURL   string
		configPath string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered timetables over HTTP",
		Long: `Serve rendered timetables over HTTP.

Endpoints:

  GET /timetable.svg   rendered timetable
  GET /timetable.json  layout geometry
  GET /healthz         liveness probe

Query parameters override the configured defaults: source, from, till,
fromHour, toHour, style, now. Responses are cached per parameter set;
requests with now=1 bypass the artifact cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fileCfg, err := loadFileConfig(configPath)
			if err != nil {
				return err
			}
			fileCfg.apply(&opts)
			return c.runServe(cmd.Context(), opts, addr, redisURL, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "cache", "", "redis cache URL (default: local file cache)")
	cmd.Flags().StringVar(&configPath, "config", "", "config file (default: ~/.config/timegrid/config.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.Source, "source", "", "default source for requests without ?source=")
	cmd.Flags().StringVar(&opts.From, "from", "", "default first visible day")
	cmd.Flags().StringVar(&opts.Till, "till", "", "default last visible day")
	cmd.Flags().IntVar(&opts.FromHour, "from-hour", 0, "default first visible hour")
	cmd.Flags().IntVar(&opts.ToHour, "to-hour", 0, "default end hour")
	cmd.Flags().StringVar(&opts.Style, "style", "", "default visual style: simple, ink")

	return cmd
}

// runServe starts the HTTP server and blocks until the context is
// cancelled.
func (c *CLI) runServe(ctx context.Context, defaults pipeline.Options, addr, redisURL string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache, redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	defaults.Logger = c.Logger

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.newServeMux(runner, defaults),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newServeMux builds the chi router for the timetable endpoints.
func (c *CLI) newServeMux(runner *pipeline.Runner, defaults pipeline.Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/timetable.svg", c.timetableHandler(runner, defaults, pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/timetable.json", c.timetableHandler(runner, defaults, pipeline.FormatJSON, "application/json"))

	return r
}

// timetableHandler serves one rendered format, with per-request
// overrides taken from the query string.
func (c *CLI) timetableHandler(runner *pipeline.Runner, defaults pipeline.Options, format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		opts := requestOptions(defaults, req)
		opts.Formats = []string{format}

		result, err := runner.Execute(req.Context(), opts)
		if err != nil {
			writeHTTPError(w, err)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
	}
}

// requestOptions overlays query parameters on the configured defaults.
func requestOptions(defaults pipeline.Options, req *http.Request) pipeline.Options {
	opts := defaults
	q := req.URL.Query()

	if v := q.Get("source"); v != "" {
		opts.Source = v
	}
	if v := q.Get("from"); v != "" {
		opts.From = v
	}
	if v := q.Get("till"); v != "" {
		opts.Till = v
	}
	if v := q.Get("fromHour"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.FromHour = n
		}
	}
	if v := q.Get("toHour"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			opts.ToHour = n
		}
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("now"); v == "1" || v == "true" {
		opts.NowLine = true
	}
	return opts
}

// writeHTTPError maps pipeline error codes onto HTTP status codes.
func writeHTTPError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidSource, errs.ErrCodeInvalidRange,
		errs.ErrCodeInvalidHourWindow, errs.ErrCodeInvalidConfig,
		errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidStyle:
		status = http.StatusBadRequest
	case errs.ErrCodeNotFound:
		status = http.StatusNotFound
	case errs.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case errs.ErrCodeNetwork:
		status = http.StatusBadGateway
	}
	http.Error(w, errs.UserMessage(err), status)
}
