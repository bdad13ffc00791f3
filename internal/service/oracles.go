package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/apperrors"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/nbp"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/repository"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/yahoo"
)

// priceWindowDays is the half-width of the date window queried around a
// target date when resolving a historical price.
const priceWindowDays = 7

// YahooPriceSource adapts the Yahoo Finance client to the engine's
// PriceSource interface. Oracle failures are logged and reported as missing
// data, never as errors.
type YahooPriceSource struct {
	client *yahoo.FinanceClient
}

// NewYahooPriceSource creates a price source over the given Yahoo client.
func NewYahooPriceSource(client *yahoo.FinanceClient) *YahooPriceSource {
	return &YahooPriceSource{client: client}
}

// PriceNear returns the close nearest to the target date within a ±7 day window.
func (s *YahooPriceSource) PriceNear(ctx context.Context, instrument string, date time.Time) (float64, bool) {
	start := date.AddDate(0, 0, -priceWindowDays)
	end := date.AddDate(0, 0, priceWindowDays)

	resp, err := s.client.QueryDateRange(ctx, instrument, start, end)
	if err != nil {
		log.Printf("price lookup failed for %s near %s: %v", instrument, date.Format("2006-01-02"), err)
		return 0, false
	}

	chart, err := yahoo.ParseChart(resp)
	if err != nil {
		log.Printf("price parse failed for %s: %v", instrument, err)
		return 0, false
	}

	return chart.ClosestClose(date)
}

// CurrentPrice returns the latest available close from the last five days.
func (s *YahooPriceSource) CurrentPrice(ctx context.Context, instrument string) (float64, bool) {
	resp, err := s.client.QueryFiveDay(ctx, instrument)
	if err != nil {
		log.Printf("current price lookup failed for %s: %v", instrument, err)
		return 0, false
	}

	chart, err := yahoo.ParseChart(resp)
	if err != nil {
		log.Printf("price parse failed for %s: %v", instrument, err)
		return 0, false
	}

	return chart.LatestClose()
}

// CachedRateSource adapts the NBP client to the engine's RateSource interface
// with a read-through sqlite cache, so backward probing over historical dates
// hits the API at most once per currency/date.
type CachedRateSource struct {
	client *nbp.Client
	cache  *repository.ExchangeRateRepository
}

// NewCachedRateSource creates a rate source over the NBP client and cache repository.
func NewCachedRateSource(client *nbp.Client, cache *repository.ExchangeRateRepository) *CachedRateSource {
	return &CachedRateSource{client: client, cache: cache}
}

// RateOn returns the rate of a currency against the base currency as of a
// date. A cache miss falls through to the NBP API; a published rate is cached
// before returning. Days without a published rate report missing data.
func (s *CachedRateSource) RateOn(ctx context.Context, currency string, date time.Time) (float64, bool) {
	if rate, ok, err := s.cache.GetRate(currency, date); err == nil && ok {
		return rate, true
	} else if err != nil {
		log.Printf("rate cache read failed for %s: %v", currency, err)
	}

	rate, err := s.client.RateOn(ctx, currency, date)
	if errors.Is(err, apperrors.ErrExchangeRateNotFound) {
		return 0, false
	}
	if err != nil {
		log.Printf("rate lookup failed for %s on %s: %v", currency, date.Format("2006-01-02"), err)
		return 0, false
	}

	if err := s.cache.UpsertRate(currency, date, rate); err != nil {
		log.Printf("rate cache write failed for %s: %v", currency, err)
	}

	return rate, true
}
