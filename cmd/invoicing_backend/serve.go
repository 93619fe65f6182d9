package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/ulule/limiter/v3"

	"github.com/SscSPs/vendor_invoicing/internal/adapters/events"
	portsevents "github.com/SscSPs/vendor_invoicing/internal/core/ports/events"
	portsrepo "github.com/SscSPs/vendor_invoicing/internal/core/ports/repositories"
	"github.com/SscSPs/vendor_invoicing/internal/core/services"
	"github.com/SscSPs/vendor_invoicing/internal/handlers"
	"github.com/SscSPs/vendor_invoicing/internal/middleware"
	"github.com/SscSPs/vendor_invoicing/internal/platform/config"
	"github.com/SscSPs/vendor_invoicing/internal/repositories/database/pgsql"
	"github.com/SscSPs/vendor_invoicing/internal/repositories/memory"
	"github.com/SscSPs/vendor_invoicing/pkg/database"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the invoicing HTTP API",
		Long: `Run the invoicing HTTP API.

With PGSQL_URL set, invoices and payments are stored in PostgreSQL. Otherwise
an in-memory store is used and all data is lost on exit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runMigrate, _ := cmd.Flags().GetBool("migrate")
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if runMigrate {
				if err := runMigrations(cfg, logger, migrateUp); err != nil {
					return err
				}
			}
			return serve(cmd.Context(), cfg, logger)
		},
	}
	serveCmd.Flags().Bool("migrate", false, "Apply pending migrations before starting (requires PGSQL_URL)")
	return serveCmd
}

// closer is run during shutdown in reverse registration order.
type closer func()

func serve(parent context.Context, cfg *config.Config, logger *slog.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	repos, dbSink, err := buildStorage(ctx, cfg, logger, &closers)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			_ = redisClient.Close()
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })
		logger.Info("Connected to Redis", slog.String("addr", cfg.RedisAddr))
	}

	sink, err := buildSinks(cfg, logger, dbSink, redisClient, &closers)
	if err != nil {
		return err
	}

	serviceContainer := services.NewServiceContainer(repos, sink)

	var rateLimiter *limiter.Limiter
	if cfg.RateLimit != "" {
		rateLimiter, err = middleware.NewLimiter(cfg.RateLimit, redisClient)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT: %w", err)
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// buildStorage picks Postgres when PGSQL_URL is set and the in-memory store otherwise.
// The returned sink is the store-side audit sink, or nil if none applies.
func buildStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger, closers *[]closer) (portsrepo.RepositoryProvider, portsevents.AuditSink, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("PGSQL_URL not set, using the in-memory invoice store")
		eventLog := memory.NewEventLog()
		repos := portsrepo.RepositoryProvider{
			InvoiceStore: memory.New(memory.WithLockTimeout(cfg.InvoiceLockTimeout)),
			EventReader:  eventLog,
		}
		return repos, eventLog, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	*closers = append(*closers, func() { database.ClosePgxPool(dbPool, logger) })

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.InvoiceLockTimeout)
	if !cfg.HasSink(config.SinkPgSQL) {
		// Without the pgsql sink the audit table is never written.
		repos.EventReader = nil
		return repos, nil, nil
	}
	return repos, pgsql.NewWorkflowEventRepository(dbPool), nil
}

// buildSinks assembles the configured event sinks into one fan-out sink.
func buildSinks(cfg *config.Config, logger *slog.Logger, storeSink portsevents.AuditSink, redisClient *redis.Client, closers *[]closer) (portsevents.AuditSink, error) {
	var sinks []portsevents.AuditSink
	if storeSink != nil {
		sinks = append(sinks, storeSink)
	}

	for _, name := range cfg.EventSinks {
		switch name {
		case config.SinkLog:
			sinks = append(sinks, events.NewLogSink(logger))
		case config.SinkPgSQL:
			// added by buildStorage
		case config.SinkKafka:
			producer, err := events.NewKafkaProducer(cfg.KafkaBrokers)
			if err != nil {
				return nil, fmt.Errorf("failed to create kafka producer: %w", err)
			}
			kafkaSink := events.NewKafkaSink(producer, cfg.KafkaTopic)
			*closers = append(*closers, func() {
				if err := kafkaSink.Close(); err != nil {
					logger.Error("Error closing kafka producer", slog.String("error", err.Error()))
				}
			})
			sinks = append(sinks, kafkaSink)
		case config.SinkRedis:
			sinks = append(sinks, events.NewRedisStreamSink(redisClient, cfg.RedisStream))
		}
	}

	multi := events.NewMultiSink(sinks...)
	logger.Info("Event sinks configured", slog.Any("sinks", cfg.EventSinks), slog.Int("count", multi.Len()))
	return multi, nil
}
