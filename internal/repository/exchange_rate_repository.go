package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExchangeRateRepository caches exchange rates retrieved from the rate oracle
// so repeated historical probes do not re-hit the external API.
type ExchangeRateRepository struct {
	db *sql.DB
}

// NewExchangeRateRepository creates a new ExchangeRateRepository with the provided database connection.
func NewExchangeRateRepository(db *sql.DB) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: db}
}

// GetRate returns the cached rate for a currency and date.
// The second return value is false when no cached rate exists.
func (r *ExchangeRateRepository) GetRate(currency string, date time.Time) (float64, bool, error) {
	query := `SELECT rate FROM exchange_rate WHERE currency = ? AND date = ?`

	var rate float64
	err := r.db.QueryRow(query, currency, date.Format("2006-01-02")).Scan(&rate)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query exchange_rate table: %w", err)
	}

	return rate, true, nil
}

// UpsertRate stores a rate for a currency and date, replacing any existing entry.
func (r *ExchangeRateRepository) UpsertRate(currency string, date time.Time, rate float64) error {
	query := `
		INSERT INTO exchange_rate (id, currency, date, rate)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(currency, date) DO UPDATE SET rate = excluded.rate
	`

	_, err := r.db.Exec(query, uuid.NewString(), currency, date.Format("2006-01-02"), rate)
	if err != nil {
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}

	return nil
}
