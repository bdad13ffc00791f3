// Package engine implements the valuation and gain-attribution core:
// period labeling, currency conversion with fallback, position aggregation,
// FIFO lot matching for realized gains, and checkpoint-based value series.
//
// All computation is a pure fold over the ledger; external data enters only
// through the PriceSource and RateSource interfaces, so the engine is testable
// with scripted fakes.
package engine

import (
	"context"
	"time"
)

// PriceSource resolves instrument prices in the instrument's native currency.
// A false second return value means no data; implementations must never fail
// a computation over missing data or oracle errors.
type PriceSource interface {
	// PriceNear returns the close nearest to the given date within the
	// source's own window.
	PriceNear(ctx context.Context, instrument string, date time.Time) (float64, bool)

	// CurrentPrice returns the latest available close.
	CurrentPrice(ctx context.Context, instrument string) (float64, bool)
}

// RateSource resolves a currency's rate against the base currency as of a date.
type RateSource interface {
	RateOn(ctx context.Context, currency string, date time.Time) (float64, bool)
}
