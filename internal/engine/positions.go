package engine

import (
	"sort"
	"time"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/model"
)

// Holding is the aggregated net state of one instrument after replaying the
// ledger: net quantity and cost basis in the instrument's native currency.
type Holding struct {
	Instrument string
	Quantity   float64
	TotalCost  float64
	Currency   string
}

// AggregateHoldings folds the ledger into net holdings per instrument.
// Buys add quantity and quantity*price to cost; sells subtract both at the
// sell's own recorded price (the realized-gain calculator tracks lots
// independently). Holdings with non-positive quantity are dropped.
// Output is sorted by instrument for determinism.
func AggregateHoldings(transactions []model.Transaction) []Holding {
	byInstrument := make(map[string]*Holding)

	for _, t := range transactions {
		h, ok := byInstrument[t.Instrument]
		if !ok {
			h = &Holding{Instrument: t.Instrument, Currency: t.Currency}
			byInstrument[t.Instrument] = h
		}

		switch t.Type {
		case model.TransactionBuy:
			h.Quantity += t.Quantity
			h.TotalCost += t.Quantity * t.Price
		case model.TransactionSell:
			h.Quantity -= t.Quantity
			h.TotalCost -= t.Quantity * t.Price
		}
	}

	holdings := make([]Holding, 0, len(byInstrument))
	for _, h := range byInstrument {
		if h.Quantity > 0 {
			holdings = append(holdings, *h)
		}
	}

	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Instrument < holdings[j].Instrument
	})

	return holdings
}

// OwnedQuantity returns the net quantity of an instrument held after
// replaying all transactions dated on or before the given date. Used to
// validate sells before they enter the ledger.
func OwnedQuantity(transactions []model.Transaction, instrument string, asOf time.Time) float64 {
	var owned float64
	for _, tx := range transactions {
		if tx.Instrument != instrument || tx.Date.After(asOf) {
			continue
		}
		switch tx.Type {
		case model.TransactionBuy:
			owned += tx.Quantity
		case model.TransactionSell:
			owned -= tx.Quantity
		}
	}
	return owned
}
