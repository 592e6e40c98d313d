package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messenger-client/internal/domain/repository"
	"messenger-client/internal/infrastructure/config"
	"messenger-client/internal/infrastructure/oauth"
	"messenger-client/internal/infrastructure/persistence"
	"messenger-client/internal/infrastructure/router"
	"messenger-client/internal/interface/graphapi"
	reuseRepo "messenger-client/internal/interface/repository"
	"messenger-client/internal/usecase"
	"messenger-client/pkg/logger"
	"messenger-client/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		return 1
	}

	// Create logger
	log := logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()

	// Set up context cancelled on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tokens, err := oauth.NewPageTokenSource(cfg.PageAccessToken)
	if err != nil {
		log.Error("Failed to set up credentials", "error", err)
		return 1
	}

	m := metrics.NewMetrics("messenger")

	client, err := graphapi.NewClient(tokens,
		graphapi.WithBaseURL(cfg.GraphAPIURL),
		graphapi.WithAPIVersion(cfg.GraphAPIVersion),
		graphapi.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		graphapi.WithLogger(log),
		graphapi.WithMetrics(m),
	)
	if err != nil {
		log.Error("Failed to create Graph API client", "error", err)
		return 1
	}

	// Set up the reusable attachment store
	repo, closeRepo, err := newReuseRepository(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to set up reuse store", "store", cfg.ReuseStore, "error", err)
		return 1
	}
	defer closeRepo()

	cache := usecase.NewAttachmentCache(repo, log, m)
	a := &app{
		profile:              usecase.NewProfileService(client, log),
		send:                 usecase.NewSendService(client, cache, log, m),
		broadcastConcurrency: cfg.BroadcastConcurrency,
		out:                  os.Stdout,
	}

	commandRouter := router.NewCommandRouter(log)
	commands := a.commands()
	for _, c := range commands {
		commandRouter.Register(c)
	}

	if len(args) == 0 {
		printUsage(commands)
		return 2
	}
	handler := commandRouter.GetHandler(args[0])
	if handler == nil {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		printUsage(commands)
		return 2
	}

	if cfg.MetricsPort != "" {
		server := startMetricsServer(cfg.MetricsPort, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error("HTTP server shutdown error", "error", err)
			}
		}()
	}

	log.Debug("Running command", "command", args[0], "version", cfg.AppVersion)
	if err := handler.Run(ctx, args[1:]); err != nil {
		log.Error("Command failed", "command", args[0], "error", err)
		return 1
	}
	return 0
}

func newReuseRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.ReusableAttachmentRepository, func(), error) {
	switch cfg.ReuseStore {
	case config.StoreMemory:
		return reuseRepo.NewMemoryReusableRepository(), func() {}, nil

	case config.StoreMongo:
		log.Info("Connecting to MongoDB")
		store, err := persistence.NewMongoStore(ctx, persistence.MongoOptionsFromConfig(cfg))
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := store.Close(context.Background()); err != nil {
				log.Error("MongoDB disconnect error", "error", err)
			}
		}

		repo, err := reuseRepo.NewMongoReusableRepository(ctx, store.Database)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		return repo, closeFn, nil

	case config.StorePostgres:
		log.Info("Connecting to PostgreSQL")
		gormDB, err := persistence.NewPostgresDB(ctx, cfg.PostgresURI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				sqlDB.Close()
			}
		}

		repo, err := reuseRepo.NewGormReusableRepository(ctx, gormDB)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		return repo, closeFn, nil
	}

	return nil, nil, fmt.Errorf("unknown reuse store %q", cfg.ReuseStore)
}

// startMetricsServer serves /metrics and /health while the command runs.
func startMetricsServer(port string, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return server
}

func printUsage(commands []*command) {
	fmt.Fprintln(os.Stderr, "usage: messenger <command> [flags]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "commands:")
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-16s %s\n", c.name, c.usage)
	}
}
