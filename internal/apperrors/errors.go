package apperrors

import "errors"

// Validation errors are rejected before any ledger mutation and surface to the
// caller as a 400 with a descriptive message.
var (
	// ErrFutureDate indicates a transaction dated later than today.
	ErrFutureDate = errors.New("cannot add transactions with future dates")

	// ErrUnknownTransactionType indicates a type other than buy or sell.
	ErrUnknownTransactionType = errors.New("invalid transaction type")

	// ErrPriceNotFound indicates no historical price could be resolved for the
	// requested instrument and date.
	ErrPriceNotFound = errors.New("could not fetch historical price for given ticker and date")

	// ErrNoHolding indicates a sell of an instrument with no open quantity.
	ErrNoHolding = errors.New("no shares owned for instrument")

	// ErrOversell indicates a sell quantity exceeding the owned quantity at the
	// transaction date.
	ErrOversell = errors.New("sell quantity exceeds owned quantity")

	// ErrUnsupportedCurrency indicates a currency outside the supported set.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrUnsupportedInterval indicates an interval other than week, month or quarter.
	ErrUnsupportedInterval = errors.New("unsupported interval")
)

// Oracle data errors. These never fail a request; callers degrade the affected
// computation to a zero or neutral contribution.
var (
	// ErrExchangeRateNotFound indicates the rate oracle has no quote for the
	// currency and date combination.
	ErrExchangeRateNotFound = errors.New("exchange rate for currency/date not found")
)

// Operation failure errors represent system-level failures.
var (
	ErrFailedToRetrievePortfolio = errors.New("failed to retrieve portfolio data")
	ErrFailedToAddTransaction    = errors.New("failed to add transaction")
	ErrFailedToBuildPerformance  = errors.New("failed to generate performance chart")
	ErrFailedToBuildValueSeries  = errors.New("failed to generate portfolio value chart")
)
