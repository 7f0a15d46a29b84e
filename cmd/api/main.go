package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orderflow-tech/orderflow-application/internal/cache"
	"github.com/orderflow-tech/orderflow-application/internal/config"
	"github.com/orderflow-tech/orderflow-application/internal/database"
	"github.com/orderflow-tech/orderflow-application/internal/gateway"
	"github.com/orderflow-tech/orderflow-application/internal/handler"
	"github.com/orderflow-tech/orderflow-application/internal/repository"
	"github.com/orderflow-tech/orderflow-application/internal/router"
	"github.com/orderflow-tech/orderflow-application/internal/service"
	"github.com/orderflow-tech/orderflow-application/internal/validation"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting orderflow API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(pool, logger)
	paymentRepo := repository.NewPaymentRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)

	// Initialize the product cache with a no-op fallback
	productCache := cache.NewNoop()
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisProductCache(ctx, cfg.Redis.Addr, cfg.Redis.TTL, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise redis product cache, running without cache")
		} else {
			productCache = redisCache
		}
	} else {
		logger.Info().Msg("product cache disabled")
	}

	// Initialize the payment gateway
	paymentGateway := gateway.NewMockGateway(logger)

	// Initialize services
	orderService := service.NewOrderService(
		orderRepo, paymentRepo, productRepo, customerRepo,
		productCache, paymentGateway, cfg.Gateway.Timeout, logger,
	)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, logger)

	// Initialize HTTP handlers
	validate := validation.New()
	orderHandler := handler.NewOrderHandler(orderService, validate, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, validate, logger)

	// Initialize router
	mux := router.New(orderHandler, paymentHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
