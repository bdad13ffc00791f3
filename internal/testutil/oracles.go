package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Key builds the lookup key used by the scripted fake oracles:
// an instrument or currency name plus a calendar day.
func Key(name string, date time.Time) string {
	return fmt.Sprintf("%s|%s", name, date.Format("2006-01-02"))
}

// FakePriceSource is a scripted price oracle. Near maps Key(instrument, date)
// to a price; Current maps an instrument to its latest close. Absent keys are
// misses. Probe counts are recorded for asserting fallback behavior.
type FakePriceSource struct {
	mu      sync.Mutex
	Near    map[string]float64
	Current map[string]float64
	Probes  []string
}

// NewFakePriceSource creates an empty scripted price source.
func NewFakePriceSource() *FakePriceSource {
	return &FakePriceSource{
		Near:    make(map[string]float64),
		Current: make(map[string]float64),
	}
}

// PriceAt scripts a hit for an instrument on a YYYY-MM-DD day.
func (f *FakePriceSource) PriceAt(instrument, date string, price float64) *FakePriceSource {
	f.Near[instrument+"|"+date] = price
	return f
}

// CurrentPriceOf scripts the latest close for an instrument.
func (f *FakePriceSource) CurrentPriceOf(instrument string, price float64) *FakePriceSource {
	f.Current[instrument] = price
	return f
}

// PriceNear implements engine.PriceSource.
func (f *FakePriceSource) PriceNear(_ context.Context, instrument string, date time.Time) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := Key(instrument, date)
	f.Probes = append(f.Probes, key)
	price, ok := f.Near[key]
	return price, ok
}

// CurrentPrice implements engine.PriceSource.
func (f *FakePriceSource) CurrentPrice(_ context.Context, instrument string) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	price, ok := f.Current[instrument]
	return price, ok
}

// FakeRateSource is a scripted exchange-rate oracle keyed like FakePriceSource.
type FakeRateSource struct {
	mu     sync.Mutex
	Rates  map[string]float64
	Probes []string
}

// NewFakeRateSource creates an empty scripted rate source.
func NewFakeRateSource() *FakeRateSource {
	return &FakeRateSource{Rates: make(map[string]float64)}
}

// RateAt scripts a hit for a currency on a YYYY-MM-DD day.
func (f *FakeRateSource) RateAt(currency, date string, rate float64) *FakeRateSource {
	f.Rates[currency+"|"+date] = rate
	return f
}

// RateOn implements engine.RateSource.
func (f *FakeRateSource) RateOn(_ context.Context, currency string, date time.Time) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := Key(currency, date)
	f.Probes = append(f.Probes, key)
	rate, ok := f.Rates[key]
	return rate, ok
}
