package engine

import (
	"context"
	"time"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/model"
)

// maxProbes bounds the backward daily search for a usable price or rate.
const maxProbes = 7

// Valuator reconstructs portfolio value at successive period checkpoints.
type Valuator struct {
	prices PriceSource
	rates  RateSource
	base   string
	probes int
}

// NewValuator creates a Valuator over the given oracles. base is the currency
// the rate oracle quotes against.
func NewValuator(prices PriceSource, rates RateSource, base string) *Valuator {
	return &Valuator{prices: prices, rates: rates, base: base, probes: maxProbes}
}

// Series builds the portfolio value time series in the reporting currency.
// Checkpoints run from the first transaction's date to today, stepping by the
// interval; the final checkpoint is always today even mid-interval. Missing
// prices contribute zero; missing rates fall back to the most recent
// successfully resolved rate for that currency within this run.
func (v *Valuator) Series(ctx context.Context, transactions []model.Transaction, interval Interval, reportingCurrency string, today time.Time) []model.ValuePoint {
	if len(transactions) == 0 {
		return []model.ValuePoint{}
	}

	today = dateOnly(today)
	var checkpoints []time.Time
	for cur := dateOnly(transactions[0].Date); !cur.After(today); cur = interval.Next(cur) {
		checkpoints = append(checkpoints, cur)
	}

	// Last-known-good rates, keyed by currency. Scoped to this run only.
	lastKnown := make(map[string]float64)

	series := make([]model.ValuePoint, 0, len(checkpoints))
	for i, start := range checkpoints {
		effective := today
		if i < len(checkpoints)-1 {
			effective = checkpoints[i+1].AddDate(0, 0, -1)
		}

		var total float64
		for _, h := range holdingsAsOf(transactions, effective) {
			price, ok := v.probePrice(ctx, h.Instrument, effective)
			if !ok {
				continue
			}

			rateInstrument, ok := v.resolveRate(ctx, h.Currency, effective, lastKnown)
			if !ok {
				continue
			}

			rateReporting, ok := v.resolveRate(ctx, reportingCurrency, effective, lastKnown)
			if !ok {
				continue
			}

			total += h.Quantity * price * rateInstrument / rateReporting
		}

		series = append(series, model.ValuePoint{
			Period: interval.Label(start),
			Value:  total,
		})
	}

	return series
}

// holdingsAsOf folds net quantities per instrument over transactions dated on
// or before the checkpoint, dropping non-positive holdings. Cost basis is not
// needed here.
func holdingsAsOf(transactions []model.Transaction, asOf time.Time) []Holding {
	var eligible []model.Transaction
	for _, t := range transactions {
		if !t.Date.After(asOf) {
			eligible = append(eligible, t)
		}
	}
	return AggregateHoldings(eligible)
}

// probePrice steps backward one day at a time until the price source returns
// a quote, bounded at maxProbes attempts.
func (v *Valuator) probePrice(ctx context.Context, instrument string, date time.Time) (float64, bool) {
	for try := 0; try < v.probes; try++ {
		if price, ok := v.prices.PriceNear(ctx, instrument, date.AddDate(0, 0, -try)); ok {
			return price, true
		}
	}
	return 0, false
}

// resolveRate probes the rate source backward like probePrice. A successful
// probe refreshes the last-known cache; a full miss falls back to the cache.
// The base currency is always 1.
func (v *Valuator) resolveRate(ctx context.Context, currency string, date time.Time, lastKnown map[string]float64) (float64, bool) {
	if currency == v.base {
		return 1, true
	}

	for try := 0; try < v.probes; try++ {
		if rate, ok := v.rates.RateOn(ctx, currency, date.AddDate(0, 0, -try)); ok {
			lastKnown[currency] = rate
			return rate, true
		}
	}

	if rate, ok := lastKnown[currency]; ok {
		return rate, true
	}
	return 0, false
}
