package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/model"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/repository"
)

// TransactionBuilder builds ledger transactions for tests.
//
// Example usage:
//
//	tx := testutil.NewBuy("AAPL", 10, 100).On("2024-01-05").Tx()
//	testutil.NewSell("AAPL", 4, 120).On("2024-02-10").Build(t, db)
type TransactionBuilder struct {
	tx model.Transaction
}

// NewBuy starts a buy transaction with USD currency and today's date.
func NewBuy(instrument string, quantity, price float64) *TransactionBuilder {
	return &TransactionBuilder{tx: model.Transaction{
		ID:         uuid.NewString(),
		Instrument: instrument,
		Type:       model.TransactionBuy,
		Date:       today(),
		Quantity:   quantity,
		Price:      price,
		Currency:   "USD",
	}}
}

// NewSell starts a sell transaction with USD currency and today's date.
func NewSell(instrument string, quantity, price float64) *TransactionBuilder {
	b := NewBuy(instrument, quantity, price)
	b.tx.Type = model.TransactionSell
	return b
}

// On sets the transaction date from a YYYY-MM-DD string.
func (b *TransactionBuilder) On(date string) *TransactionBuilder {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic("testutil: bad date " + date)
	}
	b.tx.Date = d
	return b
}

// In sets the transaction currency.
func (b *TransactionBuilder) In(currency string) *TransactionBuilder {
	b.tx.Currency = currency
	return b
}

// Tx returns the built transaction without persisting it.
func (b *TransactionBuilder) Tx() model.Transaction {
	return b.tx
}

// Build persists the transaction through the repository and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	stored, err := repository.NewTransactionRepository(db).Insert(b.tx)
	if err != nil {
		t.Fatalf("Failed to insert test transaction: %v", err)
	}
	return stored
}

func today() time.Time {
	n := time.Now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
