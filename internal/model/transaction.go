package model

import "time"

// Transaction types stored in the ledger.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// BaseCurrency is the currency all exchange rates are quoted against.
const BaseCurrency = "PLN"

// SupportedCurrencies contains the allowed currency codes.
var SupportedCurrencies = map[string]bool{
	"PLN": true, "USD": true, "EUR": true, "GBP": true,
}

// Transaction represents a single immutable buy or sell in the ledger.
// Price is always denominated in the instrument's native currency.
// Ledger ordering is by date ascending, ties broken by insertion order.
type Transaction struct {
	ID         string    `json:"id"`
	Instrument string    `json:"instrument"`
	Type       string    `json:"transactionType"`
	Date       time.Time `json:"date"`
	Quantity   float64   `json:"quantity"`
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}
