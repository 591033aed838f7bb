// Package folioservice boots the ThoughtFolio backend: config, store,
// matcher, learner, HTTP routes and health checking.
package folioservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/thoughtfolio/backend/internal/ai"
	"github.com/thoughtfolio/backend/internal/api"
	"github.com/thoughtfolio/backend/internal/api/recovery"
	"github.com/thoughtfolio/backend/internal/auth"
	"github.com/thoughtfolio/backend/internal/config"
	"github.com/thoughtfolio/backend/internal/events"
	"github.com/thoughtfolio/backend/internal/health"
	"github.com/thoughtfolio/backend/internal/learning"
	"github.com/thoughtfolio/backend/internal/logger"
	"github.com/thoughtfolio/backend/internal/match"
	"github.com/thoughtfolio/backend/internal/services"
	"github.com/thoughtfolio/backend/internal/store"
	"github.com/thoughtfolio/backend/internal/store/postgres"
	"github.com/thoughtfolio/backend/internal/store/sqlite"
)

// Run starts the ThoughtFolio HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("thoughtfolio-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Bool("ai_enabled", cfg.AIEnabled).
		Msg("ThoughtFolio service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	// Initialize dependencies (store, authorizer, optional extractor)
	st, az, extractor, err := initDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}

	// Learning pipeline: bus + learner goroutine
	bus := events.NewBus(cfg.LearningBuffer)
	learner := learning.New(st, bus, log, cfg.HelpfulWeightDelta, cfg.NotHelpfulWeightCut)
	go learner.Run(ctx)

	// Build router
	router := buildRouter(st, az, bus, extractor, cfg, log)

	// Start health checkers and bind service health
	svcHealth := startHealthCheckers(ctx, cfg, log, st, extractor)

	// Block startup until dependencies report healthy; fail fast otherwise
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	// HTTP server and serve
	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// initDependencies constructs required components and enforces fail-fast on missing deps.
func initDependencies(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, auth.Authorizer, *ai.Extractor, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.DBDriver {
	case "postgres":
		st, err = postgres.New(ctx, cfg.PostgresDSN)
	case "sqlite":
		st, err = sqlite.New(ctx, cfg.SQLitePath)
	default:
		err = fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return nil, nil, nil, err
	}

	az, err := auth.NewStaticAuthorizer(cfg.APIKeys)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Authorizer unavailable")
		return nil, nil, nil, err
	}

	var extractor *ai.Extractor
	if cfg.AIEnabled {
		extractor = ai.NewExtractor(cfg.AIBaseURL, cfg.AIModel, cfg.AIAPIKey)
	}
	return st, az, extractor, nil
}

// buildRouter wires HTTP routes to handlers.
func buildRouter(st store.Store, az auth.Authorizer, bus *events.Bus, extractor *ai.Extractor, cfg *config.Config, log zerolog.Logger) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	// Users
	userSvc := services.NewUserService(st)
	userHandler := api.NewUserHandler(userSvc)
	root.HandleFunc("/api/users", userHandler.CreateUser).Methods("POST")
	root.HandleFunc("/api/users/{userId}", userHandler.GetUser).Methods("GET")

	// Contexts and sources
	librarySvc := services.NewLibraryService(st)
	library := api.NewLibraryHandler(librarySvc, az)
	root.HandleFunc("/api/contexts", library.CreateContext).Methods("POST")
	root.HandleFunc("/api/contexts", library.ListContexts).Methods("GET")
	root.HandleFunc("/api/contexts/{contextId}", library.GetContext).Methods("GET")
	root.HandleFunc("/api/contexts/{contextId}", library.DeleteContext).Methods("DELETE")
	root.HandleFunc("/api/sources", library.CreateSource).Methods("POST")
	root.HandleFunc("/api/sources", library.ListSources).Methods("GET")
	root.HandleFunc("/api/sources/{sourceId}", library.GetSource).Methods("GET")
	root.HandleFunc("/api/sources/{sourceId}", library.DeleteSource).Methods("DELETE")

	// Thoughts, active list and discovery
	thoughtSvc := services.NewThoughtService(st, cfg.ActiveListCap)
	thought := api.NewThoughtHandler(thoughtSvc, az)
	root.HandleFunc("/api/thoughts", thought.CreateThought).Methods("POST")
	root.HandleFunc("/api/thoughts", thought.ListThoughts).Methods("GET")
	root.HandleFunc("/api/thoughts/discover", thought.Discover).Methods("GET")
	root.HandleFunc("/api/thoughts/{thoughtId}", thought.GetThought).Methods("GET")
	root.HandleFunc("/api/thoughts/{thoughtId}", thought.DeleteThought).Methods("DELETE")
	root.HandleFunc("/api/thoughts/{thoughtId}/apply", thought.ApplyThought).Methods("POST")
	root.HandleFunc("/api/thoughts/{thoughtId}/activate", thought.AddToActiveList).Methods("POST")
	root.HandleFunc("/api/thoughts/{thoughtId}/activate", thought.RemoveFromActiveList).Methods("DELETE")
	root.HandleFunc("/api/active-list", thought.ActiveList).Methods("GET")

	// Notes
	noteSvc := services.NewNoteService(st)
	note := api.NewNoteHandler(noteSvc, az)
	root.HandleFunc("/api/notes", note.CreateNote).Methods("POST")
	root.HandleFunc("/api/notes", note.ListNotes).Methods("GET")
	root.HandleFunc("/api/notes/{noteId}", note.GetNote).Methods("GET")
	root.HandleFunc("/api/notes/{noteId}", note.UpdateNote).Methods("PUT")
	root.HandleFunc("/api/notes/{noteId}", note.DeleteNote).Methods("DELETE")

	// Moments and learning feedback
	ranker := match.New(st, cfg.MatchThreshold, cfg.MatchLimit)
	momentSvc := services.NewMomentService(st, ranker, bus, log)
	moment := api.NewMomentHandler(momentSvc, az)
	root.HandleFunc("/api/moments", moment.CreateMoment).Methods("POST")
	root.HandleFunc("/api/moments", moment.ListMoments).Methods("GET")
	root.HandleFunc("/api/moments/from-event", moment.CreateFromEvent).Methods("POST")
	root.HandleFunc("/api/moments/learn/helpful", moment.LearnHelpful).Methods("POST")
	root.HandleFunc("/api/moments/learn/not-helpful", moment.LearnNotHelpful).Methods("POST")
	root.HandleFunc("/api/moments/{momentId}", moment.GetMoment).Methods("GET")
	root.HandleFunc("/api/moments/{momentId}/enrich", moment.EnrichMoment).Methods("POST")

	// Title analysis and chips
	title := api.NewTitleHandler()
	root.HandleFunc("/api/titles/analyze", title.AnalyzeTitle).Methods("POST")
	root.HandleFunc("/api/chips", title.SearchChips).Methods("GET")

	// AI extraction, only when configured
	if extractor != nil {
		extract := api.NewExtractHandler(extractor, az)
		root.HandleFunc("/api/thoughts/extract", extract.ExtractThoughts).Methods("POST")
	}

	// Health
	healthHandler := api.NewHealthHandler()
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	return root
}

// startHealthCheckers starts component checkers and service-level aggregator; binds health.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store, extractor *ai.Extractor) *health.ServiceHealthChecker {
	var checkers []health.HealthChecker
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	if pinger, ok := st.(health.HealthPinger); ok {
		storeChecker := health.NewPingChecker("store", pinger, log, probeTimeout)
		go storeChecker.Start(ctx, interval)
		checkers = append(checkers, storeChecker)
	}

	if extractor != nil {
		aiChecker := health.NewPingChecker("ai", extractor, log, probeTimeout)
		go aiChecker.Start(ctx, interval)
		checkers = append(checkers, aiChecker)
	}

	svcHealth := health.NewServiceHealthChecker(log, checkers...)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
