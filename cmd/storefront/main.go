package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/thejayadad/seafoodapp/internal/admin"
	"github.com/thejayadad/seafoodapp/internal/checkout"
	"github.com/thejayadad/seafoodapp/internal/config"
	"github.com/thejayadad/seafoodapp/internal/db"
	"github.com/thejayadad/seafoodapp/internal/events"
	"github.com/thejayadad/seafoodapp/internal/httpapi"
	"github.com/thejayadad/seafoodapp/internal/menu"
	"github.com/thejayadad/seafoodapp/internal/order"
	"github.com/thejayadad/seafoodapp/internal/payment"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	// DB
	database := db.MustOpen(cfg.DatabaseDSN)
	if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
		logger.Fatalf("migrations: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("open catalog pool: %v", err)
	}
	defer pool.Close()

	var catalog menu.Repository = menu.NewPostgresRepository(pool)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		catalog = menu.NewCachedRepository(catalog, rdb, 30*time.Second, logger)
	}

	orderRepo := order.NewRepository(database)

	// RabbitMQ
	rabbitConn := events.MustDialRabbit(cfg.RabbitURL)
	defer rabbitConn.Close()

	publisher, err := events.NewPublisher(rabbitConn)
	if err != nil {
		logger.Fatalf("create publisher: %v", err)
	}
	defer publisher.Close()

	processor := payment.NewStripeProcessor(cfg.StripeSecretKey, cfg.StripeCurrency)

	checkoutSvc := checkout.NewService(orderRepo, processor, publisher,
		cfg.SuccessURL, cfg.CancelURL, logger)

	reconciler := checkout.NewReconciler(checkoutSvc, cfg.ReconcileInterval, cfg.ReconcileAfter, logger)
	reconciler.Start(ctx)

	// HTTP
	router := httpapi.NewRouter(httpapi.Handlers{
		Menu:     httpapi.NewMenuHandler(catalog),
		Cart:     httpapi.NewCartHandler(catalog),
		Checkout: httpapi.NewCheckoutHandler(checkoutSvc),
		Orders:   httpapi.NewOrderHandler(orderRepo),
		Admin:    httpapi.NewAdminHandler(admin.NewStore(), orderRepo, catalog),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Printf("storefront listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	cancel()
}
