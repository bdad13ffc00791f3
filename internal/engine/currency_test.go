package engine_test

import (
	"context"
	"math"
	"testing"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/engine"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/testutil"
)

func TestConverterRate(t *testing.T) {
	ctx := context.Background()

	t.Run("base currency is always 1 without a lookup", func(t *testing.T) {
		rates := testutil.NewFakeRateSource()
		conv := engine.NewConverter(rates, "PLN")

		if got := conv.Rate(ctx, "PLN", day(t, "2024-01-05")); got != 1 {
			t.Errorf("Rate(PLN) = %v, want 1", got)
		}
		if len(rates.Probes) != 0 {
			t.Errorf("expected no oracle probes for base currency, got %v", rates.Probes)
		}
	})

	t.Run("returns the oracle rate when available", func(t *testing.T) {
		rates := testutil.NewFakeRateSource().RateAt("USD", "2024-01-05", 4.0)
		conv := engine.NewConverter(rates, "PLN")

		if got := conv.Rate(ctx, "USD", day(t, "2024-01-05")); got != 4.0 {
			t.Errorf("Rate(USD) = %v, want 4.0", got)
		}
	})

	t.Run("falls back to the previous day on a miss", func(t *testing.T) {
		rates := testutil.NewFakeRateSource().RateAt("USD", "2024-01-06", 4.1)
		conv := engine.NewConverter(rates, "PLN")

		if got := conv.Rate(ctx, "USD", day(t, "2024-01-07")); got != 4.1 {
			t.Errorf("Rate(USD) = %v, want 4.1 from previous day", got)
		}
		if len(rates.Probes) != 2 {
			t.Errorf("expected 2 probes, got %d: %v", len(rates.Probes), rates.Probes)
		}
	})

	t.Run("degrades to 1 after two misses", func(t *testing.T) {
		rates := testutil.NewFakeRateSource()
		conv := engine.NewConverter(rates, "PLN")

		if got := conv.Rate(ctx, "USD", day(t, "2024-01-07")); got != 1 {
			t.Errorf("Rate(USD) = %v, want degraded 1", got)
		}
		if len(rates.Probes) != 2 {
			t.Errorf("expected exactly 2 probes, got %d", len(rates.Probes))
		}
	})
}

func TestConverterConvert(t *testing.T) {
	ctx := context.Background()

	t.Run("identity for same currency", func(t *testing.T) {
		rates := testutil.NewFakeRateSource()
		conv := engine.NewConverter(rates, "PLN")

		if got := conv.Convert(ctx, 123.45, "USD", "USD", day(t, "2024-01-05")); got != 123.45 {
			t.Errorf("Convert(same) = %v, want 123.45", got)
		}
		if len(rates.Probes) != 0 {
			t.Errorf("identity conversion should not hit the oracle, got %v", rates.Probes)
		}
	})

	t.Run("direct multiply into the base currency", func(t *testing.T) {
		rates := testutil.NewFakeRateSource().RateAt("USD", "2024-01-05", 4.0)
		conv := engine.NewConverter(rates, "PLN")

		if got := conv.Convert(ctx, 100, "USD", "PLN", day(t, "2024-01-05")); got != 400 {
			t.Errorf("Convert(100 USD -> PLN) = %v, want 400", got)
		}
	})

	t.Run("cross rate through the base currency", func(t *testing.T) {
		rates := testutil.NewFakeRateSource().
			RateAt("USD", "2024-01-05", 4.0).
			RateAt("EUR", "2024-01-05", 4.4)
		conv := engine.NewConverter(rates, "PLN")

		got := conv.Convert(ctx, 100, "USD", "EUR", day(t, "2024-01-05"))
		want := 100 * 4.0 / 4.4
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Convert(100 USD -> EUR) = %v, want %v", got, want)
		}
	})

	t.Run("out of the base currency divides by the target rate", func(t *testing.T) {
		rates := testutil.NewFakeRateSource().RateAt("USD", "2024-01-05", 4.0)
		conv := engine.NewConverter(rates, "PLN")

		if got := conv.Convert(ctx, 400, "PLN", "USD", day(t, "2024-01-05")); got != 100 {
			t.Errorf("Convert(400 PLN -> USD) = %v, want 100", got)
		}
	})
}
