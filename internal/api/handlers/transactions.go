package handlers

import (
	"net/http"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/api/request"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/api/response"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/apperrors"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/service"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/validation"
)

// TransactionHandler handles HTTP requests for the transaction intake endpoint.
type TransactionHandler struct {
	portfolioService *service.PortfolioService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(portfolioService *service.PortfolioService) *TransactionHandler {
	return &TransactionHandler{portfolioService: portfolioService}
}

// Create handles POST requests appending one transaction to the ledger.
// On success the refreshed portfolio and charts are returned.
//
// Endpoint: POST /transactions
// Request Body: CreateTransactionRequest (instrument, transactionType, date, amount, currency)
// Response: 200 OK with {portfolio, charts}
// Error: 400 Bad Request for a future date, unknown type, unresolved price,
// sell of a non-owned instrument, or oversell; the ledger stays unchanged
// Error: 500 Internal Server Error if persistence or aggregation fails
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	portfolio, err := h.portfolioService.AddTransaction(r.Context(), req)
	if err != nil {
		if isValidationError(err) {
			response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToAddTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}
