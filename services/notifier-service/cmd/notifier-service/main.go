package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/md-rashed-zaman/advobook/libs/config"
	"github.com/md-rashed-zaman/advobook/libs/db"
	"github.com/md-rashed-zaman/advobook/libs/kafkax"
	otelx "github.com/md-rashed-zaman/advobook/libs/otel"
	"github.com/md-rashed-zaman/advobook/libs/runtime"
	"github.com/md-rashed-zaman/advobook/services/notifier-service/internal/consumer"
	"github.com/md-rashed-zaman/advobook/services/notifier-service/internal/email"
	"github.com/md-rashed-zaman/advobook/services/notifier-service/internal/inbox"
	"github.com/md-rashed-zaman/advobook/services/notifier-service/internal/notify"
	"github.com/md-rashed-zaman/advobook/services/notifier-service/internal/sms"
	"github.com/md-rashed-zaman/advobook/services/notifier-service/internal/storage"
)

func main() {
	config.Load()

	service := config.String("SERVICE_NAME", "notifier-service")
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	shutdownTracing, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("tracing setup failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	databaseURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		logger.Error("bad config", "err", err)
		os.Exit(1)
	}
	brokers, err := config.RequiredString("KAFKA_BROKERS")
	if err != nil {
		logger.Error("bad config", "err", err)
		os.Exit(1)
	}
	port, err := config.Port("PORT", "8081")
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

	var emailSender email.Sender = email.NoopSender{}
	if addr := config.String("SMTP_ADDR", ""); addr != "" {
		emailSender = email.NewSMTPSender(addr, config.String("SMTP_FROM", ""))
	} else {
		logger.Warn("SMTP_ADDR not set, emails will be dropped")
	}

	var smsSender sms.Sender = sms.NoopSender{}
	if url := config.String("SMS_WEBHOOK_URL", ""); url != "" {
		smsSender = sms.NewWebhookSender(url)
	} else {
		logger.Warn("SMS_WEBHOOK_URL not set, texts will be dropped")
	}

	notifications := storage.NewNotificationsRepository(pool)
	notifier := notify.New(emailSender, smsSender, notifications, logger)
	inboxRepo := inbox.NewRepository(pool)

	cons := consumer.New(consumer.Config{
		Brokers: brokers,
		GroupID: config.String("KAFKA_GROUP_ID", "notifier-service"),
		Topic:   "directory.appointment.requested.v1",
	}, inboxRepo, notifier.HandleAppointmentRequested, logger)

	go func() {
		if err := cons.Run(ctx); err != nil {
			logger.Error("consumer stopped", "err", err)
			stop()
		}
	}()

	mux := runtime.NewBaseMux(
		runtime.ReadyCheck{Name: "postgres", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(brokers)},
	)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
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
