package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction ledger.
// The ledger is append-only; transactions are never updated or deleted.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// ListAll retrieves the full ledger sorted by date ascending.
// Same-day ties keep insertion order (rowid).
func (r *TransactionRepository) ListAll() ([]model.Transaction, error) {
	return r.list("", nil)
}

// ListByInstrument retrieves all transactions for one instrument sorted by
// date ascending, ties broken by insertion order.
func (r *TransactionRepository) ListByInstrument(instrument string) ([]model.Transaction, error) {
	return r.list("WHERE instrument = ?", []any{instrument})
}

func (r *TransactionRepository) list(where string, args []any) ([]model.Transaction, error) {
	query := `
		SELECT id, instrument, type, date, quantity, price, currency, created_at
		FROM "transaction"
		` + where + `
		ORDER BY date ASC, rowid ASC
	`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var dateStr, createdAtStr string
		var t model.Transaction

		err := rows.Scan(
			&t.ID,
			&t.Instrument,
			&t.Type,
			&dateStr,
			&t.Quantity,
			&t.Price,
			&t.Currency,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// Insert appends one transaction to the ledger. A fresh UUID is assigned when
// the transaction has no ID. Returns the stored transaction.
func (r *TransactionRepository) Insert(t model.Transaction) (model.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO "transaction" (id, instrument, type, date, quantity, price, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(
		query,
		t.ID,
		t.Instrument,
		t.Type,
		t.Date.Format("2006-01-02"),
		t.Quantity,
		t.Price,
		t.Currency,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return t, nil
}
