package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ariefcatur/fastfood-backend.git/internal/config"
	kafkax "github.com/ariefcatur/fastfood-backend.git/internal/kafka"
	"github.com/ariefcatur/fastfood-backend.git/internal/logging"
	"github.com/ariefcatur/fastfood-backend.git/internal/notifier"
	"github.com/ariefcatur/fastfood-backend.git/internal/orders"
	"github.com/ariefcatur/fastfood-backend.git/internal/postgres"
	"github.com/ariefcatur/fastfood-backend.git/internal/redisx"
	"github.com/ariefcatur/fastfood-backend.git/internal/users"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.New(cfg.ServiceName + "-notifier")
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Service
	svc := &notifier.Service{
		Users:       &users.Repo{DB: db, Log: log},
		Redis:       rdb,
		Telegram:    notifier.NewTelegramSender(cfg.TelegramBotToken),
		ServiceName: cfg.ServiceName + "-notifier",
		Log:         log,
	}

	// Consumer
	group := getenv("NOTIFIER_GROUP", "order-notifier")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderCreated, workers, log)

	go func() {
		log.Info("notifier consumer started", zap.String("group", group),
			zap.String("topic", orders.TopicOrderCreated), zap.Int("workers", workers))
		if err := cons.Start(ctx, svc.HandleOrderCreated); err != nil {
			log.Error("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
