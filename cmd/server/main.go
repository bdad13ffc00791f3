package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/api"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/config"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/database"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/nbp"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/repository"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/service"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	exchangeRateRepo := repository.NewExchangeRateRepository(db)

	// Create oracle clients and adapters
	nbpClient := nbp.NewClient(cfg.Market.NBPAPIURL)
	yahooClient := yahoo.NewFinanceClient()
	prices := service.NewYahooPriceSource(yahooClient)
	rates := service.NewCachedRateSource(nbpClient, exchangeRateRepo)

	// Create services
	portfolioService := service.NewPortfolioService(transactionRepo, prices, rates, cfg.Market.BaseCurrency)

	// Pre-warm today's exchange rates and keep them fresh
	rateScheduler := service.NewRateScheduler(nbpClient, exchangeRateRepo, []string{"USD", "EUR", "GBP"})
	if err := rateScheduler.Start(); err != nil {
		log.Fatalf("Failed to start rate scheduler: %v", err)
	}
	defer rateScheduler.Stop()

	// Create router
	router := api.NewRouter(db, portfolioService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
