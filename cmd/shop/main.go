package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shop-checkout/internal/cache"
	"github.com/nikolayk812/shop-checkout/internal/config"
	"github.com/nikolayk812/shop-checkout/internal/events"
	"github.com/nikolayk812/shop-checkout/internal/httpapi"
	"github.com/nikolayk812/shop-checkout/internal/logger"
	"github.com/nikolayk812/shop-checkout/internal/metrics"
	"github.com/nikolayk812/shop-checkout/internal/payment"
	"github.com/nikolayk812/shop-checkout/internal/port"
	"github.com/nikolayk812/shop-checkout/internal/repository"
	"github.com/nikolayk812/shop-checkout/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config.Load: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger.New: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("shop stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	storeCurrency, err := cfg.Currency()
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	var products port.ProductRepository = repository.NewProduct(pool)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = rdb.Close() }()

		products = cache.NewProductCache(products, rdb, cfg.ProductCacheTTL, log.Named("cache"))
		log.Info("product cache enabled", zap.String("redis_addr", cfg.RedisAddr))
	}

	publisher := events.NewKafkaPublisher(events.ParseBrokers(cfg.KafkaBrokers), cfg.KafkaOrderTopic, log.Named("events"))
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("kafka publisher close", zap.Error(err))
		}
	}()
	if !publisher.Enabled() {
		log.Info("order events disabled, KAFKA_BROKERS is empty")
	}

	if cfg.StripeSecretKey == "" || cfg.StripeWebhookSecret == "" {
		log.Warn("stripe credentials are not configured, checkout and webhooks will fail")
	}
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, nil)

	carts := service.NewCartService(
		repository.NewCart(pool),
		products,
		log.Named("cart"),
		cfg.CartMaxAttempts,
		cfg.CartExpandConcurrent,
	)
	checkout := service.NewCheckoutService(
		carts,
		repository.NewUser(pool),
		repository.NewOrder(pool),
		repository.NewUnitOfWork(pool),
		gateway,
		publisher,
		log.Named("checkout"),
		service.CheckoutConfig{
			Currency:   storeCurrency,
			SuccessURL: cfg.CheckoutSuccessURL(),
			CancelURL:  cfg.CheckoutCancelURL(),
		},
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	handler := httpapi.NewHandler(carts, checkout, products, gateway, pool, m, log.Named("http"))

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.HTTPPort),
		Handler:           httpapi.NewRouter(handler, reg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}

	log.Info("bye")
	return nil
}
