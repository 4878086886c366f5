package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/fastfood-backend.git/internal/auth"
	"github.com/ariefcatur/fastfood-backend.git/internal/cart"
	"github.com/ariefcatur/fastfood-backend.git/internal/catalog"
	"github.com/ariefcatur/fastfood-backend.git/internal/config"
	"github.com/ariefcatur/fastfood-backend.git/internal/httpx"
	kafkax "github.com/ariefcatur/fastfood-backend.git/internal/kafka"
	"github.com/ariefcatur/fastfood-backend.git/internal/logging"
	"github.com/ariefcatur/fastfood-backend.git/internal/orders"
	"github.com/ariefcatur/fastfood-backend.git/internal/postgres"
	"github.com/ariefcatur/fastfood-backend.git/internal/redisx"
	"github.com/ariefcatur/fastfood-backend.git/internal/users"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.ServiceName)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	if err := postgres.Migrate(cfg.PostgresDSN, cfg.MigrationsDir); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024, log)
	prod.Start(ctx)

	// Repos & services
	userRepo := &users.Repo{DB: db, Log: log}
	catalogRepo := &catalog.Repo{DB: db, Log: log}
	cartStore := &cart.Store{RDB: rdb, Log: log}
	orderRepo := &orders.Repo{DB: db, Log: log}
	orderSvc := orders.NewService(orderRepo, cartStore, prod, cfg.ServiceName, log)

	tokens := auth.NewTokenService(cfg.SecretKey, cfg.SecretKeyBot)
	authn := &auth.Authenticator{Tokens: tokens, Users: userRepo}
	authmw := httpx.RequireAuth(authn)

	// Router & handlers
	router := httpx.NewRouter()
	(&httpx.UsersHandler{Repo: userRepo, Tokens: tokens, Auth: authn}).Register(router, authmw)
	(&httpx.CatalogHandler{Repo: catalogRepo}).Register(router)
	(&httpx.CartHandler{Store: cartStore, Catalog: catalogRepo}).Register(router, authmw)
	(&httpx.OrdersHandler{Svc: orderSvc, Redis: rdb}).Register(router, authmw)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Info("HTTP listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // tutup inbox -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}
