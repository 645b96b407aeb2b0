package build

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdinclude/internal/config"
	"git.home.luguber.info/inful/mdinclude/internal/logfields"
	"git.home.luguber.info/inful/mdinclude/internal/metrics"
	"git.home.luguber.info/inful/mdinclude/internal/watch"
)

// Server serves the processed output tree over HTTP and rebuilds it when
// the docs tree or any registered included file changes.
type Server struct {
	builder  *Builder
	cfg      *config.Config
	logger   *slog.Logger
	registry *prom.Registry
	recorder metrics.Recorder
}

// NewServer wraps a builder in a preview server. registry may be nil to
// skip the /metrics endpoint.
func NewServer(builder *Builder, cfg *config.Config, logger *slog.Logger, registry *prom.Registry, recorder metrics.Recorder) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		builder:  builder,
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		recorder: metrics.OrNoop(recorder),
	}
}

// Run performs the initial build, then serves and watches until ctx is
// canceled.
func (s *Server) Run(ctx context.Context) error {
	watcher, err := watch.New(s.logger)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := s.rebuild(ctx, watcher); err != nil {
		// An initially broken docs tree still gets a server; the error
		// surfaces again on the next rebuild attempt.
		s.logger.Error("initial build failed", logfields.Error(err))
	}
	if err := watcher.AddDirRecursive(s.builder.DocsDir()); err != nil {
		return err
	}

	httpServer := s.startHTTP()
	defer s.stopHTTP(httpServer)

	trigger, rebuildReq := newDebouncer(time.Duration(s.cfg.Serve.DebounceMS) * time.Millisecond)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rebuildReq:
			if err := s.rebuild(ctx, watcher); err != nil {
				s.logger.Warn("rebuild failed", logfields.Error(err))
			}
		case ev, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if watcher.HandleEvent(ev) {
				trigger()
			}
		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

// rebuild runs one full build cycle and updates the include-file watch set
// with the registrar diff.
func (s *Server) rebuild(ctx context.Context, watcher *watch.Watcher) error {
	jobID := uuid.NewString()
	started := time.Now()
	s.logger.Info("rebuilding", logfields.JobID(jobID))

	err := s.builder.BuildAll(ctx)
	s.recorder.ObserveRebuildDuration(time.Since(started))

	added, removed := s.builder.Registrar().Rotate()
	watcher.Apply(added, removed)

	if err != nil {
		s.recorder.IncRebuildOutcome("failed")
		return err
	}
	s.recorder.IncRebuildOutcome("success")
	s.logger.Info("rebuild finished",
		logfields.JobID(jobID),
		logfields.DurationMS(float64(time.Since(started).Microseconds())/1000.0),
		"watched_added", len(added),
		"watched_removed", len(removed))
	return nil
}

func (s *Server) startHTTP() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.builder.OutDir())))
	if s.registry != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(s.registry))
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(s.cfg.Serve.Port)),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		s.logger.Info("preview server listening", "port", s.cfg.Serve.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server failed", logfields.Error(err))
		}
	}()
	return srv
}

func (s *Server) stopHTTP(srv *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("http server shutdown error", logfields.Error(err))
	}
}

// newDebouncer coalesces bursts of filesystem events into single rebuild
// requests.
func newDebouncer(delay time.Duration) (trigger func(), requests chan struct{}) {
	var mu sync.Mutex
	var timer *time.Timer
	requests = make(chan struct{}, 1)

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(delay, func() {
			select {
			case requests <- struct{}{}:
			default:
			}
		})
	}
	return trigger, requests
}
