package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/md-rashed-zaman/advobook/libs/config"
	"github.com/md-rashed-zaman/advobook/libs/db"
	"github.com/md-rashed-zaman/advobook/libs/httpx"
	"github.com/md-rashed-zaman/advobook/libs/kafkax"
	otelx "github.com/md-rashed-zaman/advobook/libs/otel"
	"github.com/md-rashed-zaman/advobook/libs/runtime"
	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/availability"
	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/handlers"
	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/outbox"
	"github.com/md-rashed-zaman/advobook/services/directory-service/internal/storage"
)

func main() {
	config.Load()

	service := config.String("SERVICE_NAME", "directory-service")
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	shutdownTracing, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("tracing setup failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	port, err := config.Port("PORT", "8080")
	if err != nil {
		logger.Error("bad config", "err", err)
		os.Exit(1)
	}
	databaseURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		logger.Error("bad config", "err", err)
		os.Exit(1)
	}

	pool, err := db.Open(ctx, databaseURL)
	if err != nil {
		logger.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	outboxRepo := outbox.NewRepository(pool)
	advocateRepo := storage.NewAdvocateRepository(pool)
	appointmentRepo := storage.NewAppointmentRepository(pool, outboxRepo)

	brokers := config.String("KAFKA_BROKERS", "")
	publisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   brokers,
		PollEvery: time.Duration(config.Int("OUTBOX_POLL_MS", 2000)) * time.Millisecond,
		BatchSize: config.Int("OUTBOX_BATCH_SIZE", 50),
	})
	go publisher.Run(ctx)

	checks := []runtime.ReadyCheck{{Name: "postgres", Check: db.ReadyCheck(pool)}}
	if brokers != "" {
		checks = append(checks, runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)})
	}
	mux := runtime.NewBaseMux(checks...)

	directory := handlers.NewDirectoryHandler(advocateRepo, appointmentRepo, availability.DefaultSchedule(), logger)
	directory.Register(mux)

	ratePerMinute := config.Int("RATE_LIMIT_PER_MINUTE", 60)
	var limit httpx.Middleware
	if addr := config.String("REDIS_ADDR", ""); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		defer rdb.Close()
		limit = httpx.NewRedisRateLimiter(rdb, ratePerMinute, time.Minute, service).Middleware(logger, true)
	} else {
		limit = httpx.NewRateLimiter(ratePerMinute, time.Minute).Middleware()
	}

	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(1<<20),
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins: strings.Split(config.String("CORS_ALLOWED_ORIGINS", ""), ","),
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", httpx.RequestIDHeader},
			MaxAge:         10 * time.Minute,
		}),
		limit,
	)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           otelhttp.NewHandler(handler, service),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
