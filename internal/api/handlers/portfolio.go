package handlers

import (
	"net/http"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/api/response"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/apperrors"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/model"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio reporting endpoints.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// Portfolio handles GET requests for the current portfolio and gain charts.
//
// Endpoint: GET /portfolio
// Response: 200 OK with {portfolio, charts}
// Error: 500 Internal Server Error if aggregation fails
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetPortfolio(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePortfolio.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// Performance handles GET requests for period-bucketed realized gains.
//
// Endpoint: GET /portfolio/performance?interval=week|month|quarter
// Response: 200 OK with {performance: [...]}
// Error: 400 Bad Request on an unsupported interval
// Error: 500 Internal Server Error if aggregation fails
func (h *PortfolioHandler) Performance(w http.ResponseWriter, r *http.Request) {
	interval := r.URL.Query().Get("interval")

	performance, err := h.portfolioService.Performance(r.Context(), interval)
	if err != nil {
		if isValidationError(err) {
			response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildPerformance.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string][]model.PerformancePoint{"performance": performance})
}

// Value handles GET requests for the portfolio value time series.
//
// Endpoint: GET /portfolio/value?interval=&portfolioCurrency=
// Response: 200 OK with {valueSeries: [...]}
// Error: 400 Bad Request on an unsupported interval or currency
// Error: 500 Internal Server Error if valuation fails
func (h *PortfolioHandler) Value(w http.ResponseWriter, r *http.Request) {
	interval := r.URL.Query().Get("interval")
	currency := r.URL.Query().Get("portfolioCurrency")

	series, err := h.portfolioService.ValueSeries(r.Context(), interval, currency)
	if err != nil {
		if isValidationError(err) {
			response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToBuildValueSeries.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string][]model.ValuePoint{"valueSeries": series})
}
