package engine

import (
	"context"
	"sort"
	"time"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/model"
)

// SaleMatch is one (sell, lot, quantity) triple produced by FIFO matching.
// CapitalGain is denominated in the lot's native currency; CurrencyGain is
// the portion of the realized gain attributable purely to FX movement,
// expressed in the base currency. CurrencyGain is zero when neither side
// carries FX exposure against the base currency.
type SaleMatch struct {
	Instrument   string
	SellDate     time.Time
	Quantity     float64
	CapitalGain  float64
	CurrencyGain float64
}

// lot is a buy transaction's remaining unconsumed quantity.
type lot struct {
	date      time.Time
	price     float64
	currency  string
	remaining float64
}

// MatchSales replays the ledger and matches every sell against prior buy lots
// of the same instrument, oldest first (FIFO). A lot is consumed until the
// sell quantity is exhausted or lots run out. Oversells are rejected before
// transactions enter the ledger, so matching never partially fails.
func MatchSales(ctx context.Context, transactions []model.Transaction, conv *Converter) []SaleMatch {
	lotsByInstrument := make(map[string][]*lot)
	var matches []SaleMatch

	for _, t := range transactions {
		switch t.Type {
		case model.TransactionBuy:
			lotsByInstrument[t.Instrument] = append(lotsByInstrument[t.Instrument], &lot{
				date:      t.Date,
				price:     t.Price,
				currency:  t.Currency,
				remaining: t.Quantity,
			})

		case model.TransactionSell:
			toSell := t.Quantity
			for _, l := range lotsByInstrument[t.Instrument] {
				if toSell <= 0 {
					break
				}
				if l.remaining <= 0 {
					continue
				}

				matched := min(l.remaining, toSell)
				capitalGain := (t.Price - l.price) * matched

				// Currency gain exists whenever either side carries FX
				// exposure against the base currency. With equal rates on
				// both dates the decomposition yields exactly zero.
				var currencyGain float64
				if t.Currency != l.currency || t.Currency != conv.BaseCurrency() {
					sellRate := conv.Rate(ctx, t.Currency, t.Date)
					buyRate := conv.Rate(ctx, l.currency, l.date)
					sellValue := t.Price * matched * sellRate
					buyValue := l.price * matched * buyRate
					currencyGain = sellValue - buyValue - capitalGain*sellRate
				}

				matches = append(matches, SaleMatch{
					Instrument:   t.Instrument,
					SellDate:     t.Date,
					Quantity:     matched,
					CapitalGain:  capitalGain,
					CurrencyGain: currencyGain,
				})

				l.remaining -= matched
				toSell -= matched
			}
		}
	}

	return matches
}

// PerformanceByPeriod buckets realized gains by the period label of each
// sell's date. A bucket is seeded for every transaction, buy or sell, so
// periods without sells still appear with zero gains and the timeline stays
// continuous for charting. Output is sorted by bucket anchor date.
func PerformanceByPeriod(ctx context.Context, transactions []model.Transaction, interval Interval, conv *Converter) []model.PerformancePoint {
	type bucket struct {
		anchor       time.Time
		capitalGain  float64
		currencyGain float64
	}
	buckets := make(map[string]*bucket)

	for _, t := range transactions {
		label := interval.Label(t.Date)
		if _, ok := buckets[label]; !ok {
			buckets[label] = &bucket{anchor: interval.Start(t.Date)}
		}
	}

	for _, m := range MatchSales(ctx, transactions, conv) {
		b := buckets[interval.Label(m.SellDate)]
		b.capitalGain += m.CapitalGain
		b.currencyGain += m.CurrencyGain
	}

	labels := make([]string, 0, len(buckets))
	for label := range buckets {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return buckets[labels[i]].anchor.Before(buckets[labels[j]].anchor)
	})

	performance := make([]model.PerformancePoint, 0, len(labels))
	for _, label := range labels {
		b := buckets[label]
		performance = append(performance, model.PerformancePoint{
			Period:       label,
			CapitalGain:  b.capitalGain,
			CurrencyGain: b.currencyGain,
			Dividends:    0,
		})
	}

	return performance
}

// DailyGainSeries buckets realized gains by calendar day for the portfolio
// charts. Every transaction date appears in both series, with zero values on
// days without sells.
func DailyGainSeries(ctx context.Context, transactions []model.Transaction, conv *Converter) model.Charts {
	type day struct {
		capitalGain  float64
		currencyGain float64
	}
	days := make(map[string]*day)

	for _, t := range transactions {
		key := t.Date.Format("2006-01-02")
		if _, ok := days[key]; !ok {
			days[key] = &day{}
		}
	}

	for _, m := range MatchSales(ctx, transactions, conv) {
		d := days[m.SellDate.Format("2006-01-02")]
		d.capitalGain += m.CapitalGain
		d.currencyGain += m.CurrencyGain
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	charts := model.Charts{
		CapitalGains:  make([]model.ChartPoint, 0, len(dates)),
		CurrencyGains: make([]model.ChartPoint, 0, len(dates)),
	}
	for _, date := range dates {
		d := days[date]
		charts.CapitalGains = append(charts.CapitalGains, model.ChartPoint{Date: date, Value: d.capitalGain})
		charts.CurrencyGains = append(charts.CurrencyGains, model.ChartPoint{Date: date, Value: d.currencyGain})
	}

	return charts
}
