package engine

import (
	"context"
	"log"
	"time"
)

// Converter translates amounts between currencies using rates quoted against
// a fixed base currency.
type Converter struct {
	rates RateSource
	base  string
}

// NewConverter creates a Converter over the given rate source and base currency.
func NewConverter(rates RateSource, base string) *Converter {
	return &Converter{rates: rates, base: base}
}

// BaseCurrency returns the currency all rates are quoted against.
func (c *Converter) BaseCurrency() string {
	return c.base
}

// Rate returns a currency's rate against the base currency as of a date.
// The base currency is always 1. On an oracle miss the previous day is tried
// once; a second miss degrades the conversion to 1 (logged, not fatal).
func (c *Converter) Rate(ctx context.Context, currency string, date time.Time) float64 {
	if currency == c.base {
		return 1
	}

	if rate, ok := c.rates.RateOn(ctx, currency, date); ok {
		return rate
	}
	if rate, ok := c.rates.RateOn(ctx, currency, date.AddDate(0, 0, -1)); ok {
		return rate
	}

	log.Printf("no %s rate on or before %s, using 1", currency, date.Format("2006-01-02"))
	return 1
}

// Convert translates an amount from one currency to another as of a date.
// Identity when the currencies match. Both rates are quoted against the base,
// so amount * Rate(from) / Rate(to); when to is the base this reduces to a
// direct multiply since Rate(base) is 1.
func (c *Converter) Convert(ctx context.Context, amount float64, from, to string, date time.Time) float64 {
	if from == to {
		return amount
	}
	return amount * c.Rate(ctx, from, date) / c.Rate(ctx, to, date)
}
