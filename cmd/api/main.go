package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"storefront-demo/internal/client"
	"storefront-demo/internal/config"
	"storefront-demo/internal/logger"
	"storefront-demo/internal/metrics"
	"storefront-demo/internal/repository"
	"storefront-demo/internal/server"
	"storefront-demo/internal/service"
	"storefront-demo/internal/storage"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.SetupDefault(os.Stdout, cfg.Log)

	db, err := client.OpenDatabase(&cfg.Database)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}

	stripeClient := client.NewStripeClient(&cfg.Stripe)
	mailer := client.NewResendMailer(&cfg.Resend)

	files := storage.NewLocalStore(cfg.Storage.ProductsDir)
	images := storage.NewLocalStore(cfg.Storage.PublicDir)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	verificationRepo := repository.NewDownloadVerificationRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	fulfillmentService := service.NewFulfillmentService(
		db, stripeClient, mailer, cfg.BaseURL,
		productRepo,
		userRepo,
		orderRepo,
		verificationRepo,
		webhookEventRepo,
		collector,
		log,
	)

	services := server.Services{
		Storefront:  service.NewStorefrontService(productRepo, verificationRepo, files),
		Checkout:    service.NewCheckoutService(stripeClient, cfg.Stripe.PublicKey, productRepo, orderRepo),
		Fulfillment: fulfillmentService,
		Product:     service.NewProductService(productRepo, files, images),
		User:        service.NewUserService(userRepo),
		Dashboard:   service.NewDashboardService(productRepo, userRepo, orderRepo),
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(services, server.Options{
		Admin:     cfg.Admin,
		RateLimit: cfg.RateLimit,
		PublicDir: cfg.Storage.PublicDir,
		Gatherer:  registry,
		Logger:    log,
	})

	log.Info("starting HTTP server", "addr", serverAddr, "environment", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("shutdown complete")
}
