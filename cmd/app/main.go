package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/sreeaadya/drycleaners/internal/auth"
	"github.com/sreeaadya/drycleaners/internal/config"
	"github.com/sreeaadya/drycleaners/internal/database"
	"github.com/sreeaadya/drycleaners/internal/httpapi"
	"github.com/sreeaadya/drycleaners/internal/mail"
	"github.com/sreeaadya/drycleaners/internal/mirror"
	"github.com/sreeaadya/drycleaners/internal/observability"
	workerpool "github.com/sreeaadya/drycleaners/internal/pkg/pool"
	"github.com/sreeaadya/drycleaners/internal/service"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}
	defer pool.Close()

	var m service.Mirror = mirror.Noop{}
	if cfg.Mirror.Enabled() {
		for _, topic := range []string{cfg.Mirror.OrdersTopic, cfg.Mirror.UsersTopic} {
			if err := mirror.EnsureTopic(ctx, cfg.Mirror.Brokers, topic, logger); err != nil {
				logger.Fatal("mirror topic setup failed", zap.String("topic", topic), zap.Error(err))
			}
		}
		pub := mirror.NewPublisher(cfg.Mirror.Brokers, cfg.Mirror.OrdersTopic,
			cfg.Mirror.UsersTopic, cfg.AdapterTimeout, logger)
		defer func() { _ = pub.Close() }()
		m = pub
	}

	var notifier service.Notifier = mail.Noop{}
	if cfg.SMTP.Enabled() {
		notifier = mail.New(cfg.SMTP, logger)
	}

	mailPool := workerpool.New(cfg.MailWorkers)
	defer mailPool.Close()

	metrics := observability.NewProm()
	verifier := auth.NewVerifier(cfg.Google.ClientID, logger)

	orderRepo := database.NewOrderRepository(pool, cfg.Orders.Prefix)
	userRepo := database.NewUserRepository(pool)

	orders := service.NewOrders(orderRepo, m, notifier, mailPool, logger, metrics, cfg.AdapterTimeout)
	accounts := service.NewAccounts(userRepo, verifier, m, logger, metrics, cfg.AdapterTimeout)

	server := httpapi.New(orders, accounts, logger, metrics, observability.Handler())

	logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
