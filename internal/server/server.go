package server

import (
	"context"
	"log/slog"
	"net/http"

	appbrackets "bracket-service/internal/app/brackets"
	"bracket-service/internal/bracket"
	"bracket-service/internal/config"
	httpserver "bracket-service/internal/http"
	"bracket-service/internal/logging"
	"bracket-service/internal/metrics"
	"bracket-service/internal/poller"
	"bracket-service/internal/providers"
	"bracket-service/internal/store"
)

var metricsSetup = metrics.Setup

// Server owns every long-lived component: one poller and engine per bracket
// view, the shared snapshot store, and the HTTP and metrics listeners.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.SnapshotStore
	service       *appbrackets.Service
	pollers       []*poller.Poller
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	providerClose func()
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)
	provider, providerClose := newProviderFactory(logger).build(cfg)

	snapshots := store.NewSnapshotStore()
	service := appbrackets.NewService(snapshots)
	pollers := buildPollers(cfg, provider, snapshots, logger, recorder)
	httpSrv := buildHTTPServer(cfg, service, pollers, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         snapshots,
		service:       service,
		pollers:       pollers,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		providerClose: providerClose,
	}
}

// buildPollers wires one engine and poller per configured view. Each view
// keeps its own change-detector state; nothing is shared between views
// except the snapshot store and the provider stack.
func buildPollers(cfg config.Config, provider providers.BracketProvider, snapshots *store.SnapshotStore, logger *slog.Logger, recorder *metrics.Recorder) []*poller.Poller {
	providerName := normalizeProviderName(cfg.Provider)

	pollers := make([]*poller.Poller, 0, len(cfg.Views))
	for _, view := range cfg.Views {
		engine := bracket.NewEngine(engineConfig(view), logger, recorder)
		pollers = append(pollers, poller.New(poller.Config{
			View:              view.Name,
			League:            view.League,
			StandingsKey:      view.StandingsKey,
			CalendarStage:     view.CalendarStage,
			SeasonWindowStart: view.SeasonWindowStart,
			SeasonWindowEnd:   view.SeasonWindowEnd,
			Interval:          view.PollInterval,
			Provider:          providerName,
		}, provider, engine, snapshots, logger, recorder))
	}
	return pollers
}

func engineConfig(view config.ViewConfig) bracket.Config {
	cfg := bracket.Config{
		View:         view.Name,
		WinsTarget:   view.WinsTarget,
		SeedPriority: view.SeedPriority,
	}
	switch view.Mode {
	case config.ModeTwoLeg:
		cfg.Mode = bracket.ModeTwoLegged
		cfg.Keying = bracket.KeyByID
		if view.Pairings {
			cfg.Pairings = bracket.UEFAKnockoutPairings()
		}
	default:
		cfg.Mode = bracket.ModeBestOf
		cfg.Keying = bracket.KeyByName
		cfg.Classifiers = bracket.ClassifierChain{
			bracket.NewHeadlineClassifier(bracket.NBAPlayoffRules()),
		}
	}
	return cfg
}

func buildHTTPServer(cfg config.Config, service *appbrackets.Service, pollers []*poller.Poller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	ready := func() bool {
		for _, p := range pollers {
			if !p.Status().IsReady() {
				return false
			}
		}
		return len(pollers) > 0
	}

	handler := httpserver.NewHandler(service, ready, logger)
	router := httpserver.NewRouter(handler)

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := httpserver.LoggingMiddleware(logger, httpserver.MetricsMiddleware(recorder, router))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

// Run starts the pollers and HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	for _, p := range s.pollers {
		p.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	for _, p := range s.pollers {
		if err := p.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.providerClose != nil {
		s.providerClose()
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}
	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", "addr", srv.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
