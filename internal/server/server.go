// Package server publishes trial graph descriptions and their renderings over
// HTTP, in the layout the panel's HTTP source fetches from.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/prospect/internal/metrics"
	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/prospective"
	"github.com/matzehuels/prospect/pkg/render"
	"github.com/matzehuels/prospect/pkg/source"
)

// Config configures a [Server].
type Config struct {
	// Dir holds trials/<id>/prospective.dot or trials/<id>/components.toml.
	Dir      string
	Renderer render.Renderer
	Logger   *log.Logger

	// Registry is served on /metrics when set; Metrics records requests.
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	// RPS and Burst bound requests per client on the trial routes.
	// Zero disables limiting.
	RPS   float64
	Burst int
}

// Server serves trials from a directory.
type Server struct {
	cfg     Config
	source  *source.DirSource
	limiter *limiter
	router  chi.Router
}

// New builds the router.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Burst <= 0 && cfg.RPS > 0 {
		cfg.Burst = int(cfg.RPS) + 1
	}
	s := &Server{
		cfg:     cfg,
		source:  source.NewDirSource(cfg.Dir),
		limiter: newLimiter(cfg.RPS, cfg.Burst),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	if cfg.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}
	r.Group(func(r chi.Router) {
		r.Use(s.limiter.middleware)
		r.Get("/trials/{trial}/"+source.FileName, s.handleDOT)
		r.Get("/trials/{trial}/prospective.svg", s.handleSVG)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.cfg.Logger.Info("listening", "addr", addr, "dir", s.cfg.Dir)
		if err := srv.ListenAndServe(); !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	text, ok := s.trialDOT(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.Write([]byte(text))
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	text, ok := s.trialDOT(w, r)
	if !ok {
		return
	}
	doc, err := s.cfg.Renderer.Render(r.Context(), text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(doc.Markup())
}

// trialDOT resolves the trial's description: the stored DOT file, else one
// generated from the trial's components. It writes the error response and
// returns false on failure.
func (s *Server) trialDOT(w http.ResponseWriter, r *http.Request) (string, bool) {
	trial, err := url.PathUnescape(chi.URLParam(r, "trial"))
	if err == nil {
		err = errors.ValidateTrialID(trial)
	}
	if err != nil {
		s.fail(w, r, errors.Wrap(errors.ErrCodeInvalidTrial, err, "invalid trial id"))
		return "", false
	}

	text, err := s.source.Fetch(r.Context(), trial)
	if err == nil {
		return text, true
	}
	var fe *errors.FetchError
	if !stderrors.As(err, &fe) || !fe.NotFound() {
		s.fail(w, r, err)
		return "", false
	}

	path := filepath.Join(s.cfg.Dir, "trials", trial, prospective.ComponentsFile)
	if _, statErr := os.Stat(path); statErr != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return "", false
	}
	components, err := prospective.LoadComponents(path)
	if err == nil {
		components, err = prospective.Select(components, prospective.Filter{Kind: prospective.Everything})
	}
	if err == nil {
		text, err = prospective.Generate(components)
	}
	if err != nil {
		s.fail(w, r, err)
		return "", false
	}
	return text, true
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidTrial, errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeRender:
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.cfg.Logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		s.cfg.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"elapsed", elapsed.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
		if s.cfg.Metrics != nil {
			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				route = rc.RoutePattern()
			}
			s.cfg.Metrics.ObserveRequest(route, status, elapsed)
		}
	})
}
