package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/api/handlers"
	custommiddleware "github.com/pkowalczyk/portfolio-analytics-backend/internal/api/middleware"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/config"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(db *sql.DB, portfolioService *service.PortfolioService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(db)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	transactionHandler := handlers.NewTransactionHandler(portfolioService)

	r.Get("/health", systemHandler.Health)

	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/", portfolioHandler.Portfolio)
		r.Get("/performance", portfolioHandler.Performance)
		r.Get("/value", portfolioHandler.Value)
	})

	r.Post("/transactions", transactionHandler.Create)

	return r
}
