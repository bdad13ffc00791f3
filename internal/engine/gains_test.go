package engine_test

import (
	"context"
	"math"
	"testing"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/engine"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/model"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/testutil"
)

func plnConverter(rates *testutil.FakeRateSource) *engine.Converter {
	return engine.NewConverter(rates, "PLN")
}

func TestMatchSalesFIFO(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes the earliest lot first", func(t *testing.T) {
		transactions := []model.Transaction{
			testutil.NewBuy("AAPL", 10, 100).On("2024-01-01").Tx(),
			testutil.NewBuy("AAPL", 5, 110).On("2024-01-02").Tx(),
			testutil.NewSell("AAPL", 12, 120).On("2024-01-03").Tx(),
		}

		matches := engine.MatchSales(ctx, transactions, plnConverter(testutil.NewFakeRateSource()))
		if len(matches) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(matches))
		}

		// Day-1 lot consumed fully before the day-2 lot is touched.
		if matches[0].Quantity != 10 {
			t.Errorf("first match quantity = %v, want 10", matches[0].Quantity)
		}
		if math.Abs(matches[0].CapitalGain-200) > 1e-9 { // (120-100)*10
			t.Errorf("first match capital gain = %v, want 200", matches[0].CapitalGain)
		}
		if matches[1].Quantity != 2 {
			t.Errorf("second match quantity = %v, want 2", matches[1].Quantity)
		}
		if math.Abs(matches[1].CapitalGain-20) > 1e-9 { // (120-110)*2
			t.Errorf("second match capital gain = %v, want 20", matches[1].CapitalGain)
		}
	})

	t.Run("a second sell resumes from the partially consumed lot", func(t *testing.T) {
		transactions := []model.Transaction{
			testutil.NewBuy("AAPL", 10, 100).On("2024-01-01").Tx(),
			testutil.NewBuy("AAPL", 5, 110).On("2024-01-02").Tx(),
			testutil.NewSell("AAPL", 12, 120).On("2024-01-03").Tx(),
			testutil.NewSell("AAPL", 3, 130).On("2024-01-04").Tx(),
		}

		matches := engine.MatchSales(ctx, transactions, plnConverter(testutil.NewFakeRateSource()))
		if len(matches) != 3 {
			t.Fatalf("expected 3 matches, got %d", len(matches))
		}

		last := matches[2]
		if last.Quantity != 3 {
			t.Errorf("last match quantity = %v, want 3", last.Quantity)
		}
		if math.Abs(last.CapitalGain-60) > 1e-9 { // (130-110)*3 against the day-2 lot
			t.Errorf("last match capital gain = %v, want 60", last.CapitalGain)
		}
	})

	t.Run("sells only match lots of the same instrument", func(t *testing.T) {
		transactions := []model.Transaction{
			testutil.NewBuy("MSFT", 10, 300).On("2024-01-01").Tx(),
			testutil.NewBuy("AAPL", 10, 100).On("2024-01-01").Tx(),
			testutil.NewSell("AAPL", 5, 120).On("2024-01-03").Tx(),
		}

		matches := engine.MatchSales(ctx, transactions, plnConverter(testutil.NewFakeRateSource()))
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}
		if matches[0].Instrument != "AAPL" {
			t.Errorf("matched instrument = %q, want AAPL", matches[0].Instrument)
		}
	})
}

func TestMatchSalesCurrencyGain(t *testing.T) {
	ctx := context.Background()

	t.Run("pure FX movement with no price movement", func(t *testing.T) {
		// rate(USD) 4.0 at buy date, 4.2 at sell date; price unchanged.
		rates := testutil.NewFakeRateSource().
			RateAt("USD", "2024-01-05", 4.0).
			RateAt("USD", "2024-02-10", 4.2)

		transactions := []model.Transaction{
			testutil.NewBuy("AAPL", 1, 100).On("2024-01-05").Tx(),
			testutil.NewSell("AAPL", 1, 100).On("2024-02-10").Tx(),
		}

		matches := engine.MatchSales(ctx, transactions, plnConverter(rates))
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}

		m := matches[0]
		if m.CapitalGain != 0 {
			t.Errorf("capital gain = %v, want 0", m.CapitalGain)
		}
		// 100*4.2 - 100*4.0 - 0
		if math.Abs(m.CurrencyGain-20) > 1e-9 {
			t.Errorf("currency gain = %v, want 20", m.CurrencyGain)
		}
	})

	t.Run("no currency gain when rates are unchanged", func(t *testing.T) {
		rates := testutil.NewFakeRateSource().
			RateAt("USD", "2024-01-05", 4.0).
			RateAt("USD", "2024-02-10", 4.0)

		transactions := []model.Transaction{
			testutil.NewBuy("AAPL", 10, 100).On("2024-01-05").Tx(),
			testutil.NewSell("AAPL", 4, 120).On("2024-02-10").Tx(),
		}

		matches := engine.MatchSales(ctx, transactions, plnConverter(rates))
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}
		if math.Abs(matches[0].CapitalGain-80) > 1e-9 {
			t.Errorf("capital gain = %v, want 80", matches[0].CapitalGain)
		}
		if math.Abs(matches[0].CurrencyGain) > 1e-9 {
			t.Errorf("currency gain = %v, want 0", matches[0].CurrencyGain)
		}
	})

	t.Run("base currency transactions never produce currency gain", func(t *testing.T) {
		rates := testutil.NewFakeRateSource()
		transactions := []model.Transaction{
			testutil.NewBuy("CDR.PL", 10, 150).In("PLN").On("2024-01-05").Tx(),
			testutil.NewSell("CDR.PL", 5, 180).In("PLN").On("2024-02-10").Tx(),
		}

		matches := engine.MatchSales(ctx, transactions, plnConverter(rates))
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}
		if matches[0].CurrencyGain != 0 {
			t.Errorf("currency gain = %v, want 0", matches[0].CurrencyGain)
		}
		if len(rates.Probes) != 0 {
			t.Errorf("base currency matching should not hit the rate oracle, got %v", rates.Probes)
		}
	})

	t.Run("decomposition is exact in the base currency", func(t *testing.T) {
		rates := testutil.NewFakeRateSource().
			RateAt("USD", "2024-01-05", 4.0).
			RateAt("USD", "2024-02-10", 4.2)

		transactions := []model.Transaction{
			testutil.NewBuy("AAPL", 3, 100).On("2024-01-05").Tx(),
			testutil.NewSell("AAPL", 3, 120).On("2024-02-10").Tx(),
		}

		matches := engine.MatchSales(ctx, transactions, plnConverter(rates))
		if len(matches) != 1 {
			t.Fatalf("expected 1 match, got %d", len(matches))
		}

		m := matches[0]
		sellValue := 120.0 * 3 * 4.2
		buyValue := 100.0 * 3 * 4.0
		totalGain := sellValue - buyValue
		if math.Abs(m.CapitalGain*4.2+m.CurrencyGain-totalGain) > 1e-9 {
			t.Errorf("capitalGain*sellRate + currencyGain = %v, want total %v",
				m.CapitalGain*4.2+m.CurrencyGain, totalGain)
		}
	})
}

func TestPerformanceByPeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("buckets realized gains by the sell's month", func(t *testing.T) {
		transactions := []model.Transaction{
			testutil.NewBuy("XYZ", 10, 100).On("2024-01-05").Tx(),
			testutil.NewSell("XYZ", 4, 120).On("2024-02-10").Tx(),
		}

		performance := engine.PerformanceByPeriod(ctx, transactions, engine.Month, plnConverter(testutil.NewFakeRateSource()))
		if len(performance) != 2 {
			t.Fatalf("expected 2 periods, got %d", len(performance))
		}

		// January holds the buy: present with zero gains.
		if performance[0].Period != "January 2024" {
			t.Errorf("first period = %q, want January 2024", performance[0].Period)
		}
		if performance[0].CapitalGain != 0 || performance[0].CurrencyGain != 0 {
			t.Errorf("January gains = %v/%v, want 0/0", performance[0].CapitalGain, performance[0].CurrencyGain)
		}

		if performance[1].Period != "February 2024" {
			t.Errorf("second period = %q, want February 2024", performance[1].Period)
		}
		if math.Abs(performance[1].CapitalGain-80) > 1e-9 {
			t.Errorf("February capital gain = %v, want 80", performance[1].CapitalGain)
		}
		if math.Abs(performance[1].CurrencyGain) > 1e-9 {
			t.Errorf("February currency gain = %v, want 0", performance[1].CurrencyGain)
		}
		if performance[1].Dividends != 0 {
			t.Errorf("dividends = %v, want reserved 0", performance[1].Dividends)
		}
	})

	t.Run("periods are sorted by anchor date", func(t *testing.T) {
		transactions := []model.Transaction{
			testutil.NewBuy("XYZ", 10, 100).On("2023-11-20").Tx(),
			testutil.NewSell("XYZ", 2, 110).On("2024-01-15").Tx(),
			testutil.NewSell("XYZ", 2, 120).On("2024-04-02").Tx(),
		}

		performance := engine.PerformanceByPeriod(ctx, transactions, engine.Quarter, plnConverter(testutil.NewFakeRateSource()))
		want := []string{"Q4 2023", "Q1 2024", "Q2 2024"}
		if len(performance) != len(want) {
			t.Fatalf("expected %d periods, got %d", len(want), len(performance))
		}
		for i, label := range want {
			if performance[i].Period != label {
				t.Errorf("performance[%d] = %q, want %q", i, performance[i].Period, label)
			}
		}
	})

	t.Run("empty ledger yields an empty report", func(t *testing.T) {
		performance := engine.PerformanceByPeriod(ctx, nil, engine.Week, plnConverter(testutil.NewFakeRateSource()))
		if len(performance) != 0 {
			t.Errorf("expected empty performance, got %d entries", len(performance))
		}
	})
}

func TestDailyGainSeries(t *testing.T) {
	ctx := context.Background()

	transactions := []model.Transaction{
		testutil.NewBuy("XYZ", 10, 100).On("2024-01-05").Tx(),
		testutil.NewSell("XYZ", 4, 120).On("2024-02-10").Tx(),
	}

	charts := engine.DailyGainSeries(ctx, transactions, plnConverter(testutil.NewFakeRateSource()))

	if len(charts.CapitalGains) != 2 || len(charts.CurrencyGains) != 2 {
		t.Fatalf("expected 2 points per series, got %d/%d", len(charts.CapitalGains), len(charts.CurrencyGains))
	}

	if charts.CapitalGains[0].Date != "2024-01-05" || charts.CapitalGains[0].Value != 0 {
		t.Errorf("buy date point = %+v, want zero at 2024-01-05", charts.CapitalGains[0])
	}
	if charts.CapitalGains[1].Date != "2024-02-10" || math.Abs(charts.CapitalGains[1].Value-80) > 1e-9 {
		t.Errorf("sell date point = %+v, want 80 at 2024-02-10", charts.CapitalGains[1])
	}
}
