package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/apperrors"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/nbp"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/repository"
)

// RateScheduler pre-warms the exchange rate cache with the day's published
// rates so request-time conversions rarely hit the NBP API.
type RateScheduler struct {
	cron       *cron.Cron
	client     *nbp.Client
	cache      *repository.ExchangeRateRepository
	currencies []string
}

// NewRateScheduler creates a scheduler refreshing rates for the given
// currencies. The base currency needs no rate and should not be included.
func NewRateScheduler(client *nbp.Client, cache *repository.ExchangeRateRepository, currencies []string) *RateScheduler {
	return &RateScheduler{
		cron:       cron.New(),
		client:     client,
		cache:      cache,
		currencies: currencies,
	}
}

// Start refreshes once immediately and then every morning after NBP publishes
// table A (around 08:15 CET; 09:00 leaves headroom).
func (s *RateScheduler) Start() error {
	if _, err := s.cron.AddFunc("0 9 * * *", func() {
		s.Refresh(context.Background())
	}); err != nil {
		return err
	}

	go s.Refresh(context.Background())
	s.cron.Start()

	return nil
}

// Stop halts the scheduler, waiting for a running refresh to finish.
func (s *RateScheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Refresh fetches and caches today's rate for every configured currency.
// Days without a published rate (weekends, holidays) are skipped silently.
func (s *RateScheduler) Refresh(ctx context.Context) {
	today := time.Now().UTC()

	for _, currency := range s.currencies {
		rate, err := s.client.RateOn(ctx, currency, today)
		if errors.Is(err, apperrors.ErrExchangeRateNotFound) {
			continue
		}
		if err != nil {
			log.Printf("rate refresh failed for %s: %v", currency, err)
			continue
		}

		if err := s.cache.UpsertRate(currency, today, rate); err != nil {
			log.Printf("rate refresh cache write failed for %s: %v", currency, err)
		}
	}
}
