package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/apperrors"
)

// parseJSON decodes a request body into the given type, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&v); err != nil {
		return v, fmt.Errorf("invalid JSON body: %w", err)
	}
	return v, nil
}

// validationErrors are rejected with a 400 and the ledger stays untouched.
var validationErrors = []error{
	apperrors.ErrFutureDate,
	apperrors.ErrUnknownTransactionType,
	apperrors.ErrPriceNotFound,
	apperrors.ErrNoHolding,
	apperrors.ErrOversell,
	apperrors.ErrUnsupportedCurrency,
	apperrors.ErrUnsupportedInterval,
}

// isValidationError reports whether err belongs to the validation taxonomy.
func isValidationError(err error) bool {
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
