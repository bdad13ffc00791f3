package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/api/request"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TransactionBuy: true, model.TransactionSell: true,
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - instrument: non-empty ticker
//   - date: YYYY-MM-DD
//   - transactionType: buy or sell
//   - amount: positive
//   - currency: one of the supported set
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Instrument) == "" {
		errors["instrument"] = "instrument is required"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.TransactionType) == "" {
		errors["transactionType"] = "type is required"
	} else if !ValidTransactionType[req.TransactionType] {
		errors["transactionType"] = fmt.Sprintf("invalid type: %s", req.TransactionType)
	}

	if req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}

	if strings.TrimSpace(req.Currency) == "" {
		errors["currency"] = "currency is required"
	} else if !model.SupportedCurrencies[req.Currency] {
		errors["currency"] = fmt.Sprintf("unsupported currency: %s", req.Currency)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
