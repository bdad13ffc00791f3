package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/api/request"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/apperrors"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/engine"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/model"
	"github.com/pkowalczyk/portfolio-analytics-backend/internal/repository"
)

// PortfolioService orchestrates the ledger, the price and rate oracles and
// the calculation engine.
type PortfolioService struct {
	transactions *repository.TransactionRepository
	prices       engine.PriceSource
	converter    *engine.Converter
	valuator     *engine.Valuator
	baseCurrency string
	now          func() time.Time
}

// NewPortfolioService creates a PortfolioService with the provided dependencies.
func NewPortfolioService(
	transactions *repository.TransactionRepository,
	prices engine.PriceSource,
	rates engine.RateSource,
	baseCurrency string,
) *PortfolioService {
	return &PortfolioService{
		transactions: transactions,
		prices:       prices,
		converter:    engine.NewConverter(rates, baseCurrency),
		valuator:     engine.NewValuator(prices, rates, baseCurrency),
		baseCurrency: baseCurrency,
		now:          time.Now,
	}
}

// GetPortfolio returns the current open positions with unrealized P/L plus
// the daily realized gain chart series.
func (s *PortfolioService) GetPortfolio(ctx context.Context) (model.PortfolioResponse, error) {
	transactions, err := s.transactions.ListAll()
	if err != nil {
		return model.PortfolioResponse{}, err
	}

	holdings := engine.AggregateHoldings(transactions)

	// Independent instruments are priced concurrently; each position writes
	// only its own slot so results stay deterministic.
	positions := make([]model.Position, len(holdings))
	g, gctx := errgroup.WithContext(ctx)
	for i, h := range holdings {
		i, h := i, h
		g.Go(func() error {
			position := model.Position{
				Instrument: h.Instrument,
				Quantity:   h.Quantity,
				AvgPrice:   h.TotalCost / h.Quantity,
				Currency:   h.Currency,
			}
			if price, ok := s.prices.CurrentPrice(gctx, h.Instrument); ok {
				position.CurrentPrice = &price
				position.CurrentValue = h.Quantity * price
			}
			position.ProfitLoss = position.CurrentValue - h.TotalCost
			positions[i] = position
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.PortfolioResponse{}, err
	}

	return model.PortfolioResponse{
		Portfolio: positions,
		Charts:    engine.DailyGainSeries(ctx, transactions, s.converter),
	}, nil
}

// AddTransaction validates and appends one transaction to the ledger, then
// returns the refreshed portfolio. The submitted amount is denominated in the
// submitted portfolio currency; quantity is derived from the historical price
// in the instrument's native currency.
func (s *PortfolioService) AddTransaction(ctx context.Context, req request.CreateTransactionRequest) (model.PortfolioResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.PortfolioResponse{}, fmt.Errorf("invalid date: %w", err)
	}

	today := s.today()
	if date.After(today) {
		return model.PortfolioResponse{}, apperrors.ErrFutureDate
	}

	if req.TransactionType != model.TransactionBuy && req.TransactionType != model.TransactionSell {
		return model.PortfolioResponse{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownTransactionType, req.TransactionType)
	}

	if !model.SupportedCurrencies[req.Currency] {
		return model.PortfolioResponse{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, req.Currency)
	}

	instrumentCurrency := instrumentCurrencyFor(req.Instrument)

	price, ok := s.prices.PriceNear(ctx, req.Instrument, date)
	if !ok || price <= 0 {
		return model.PortfolioResponse{}, apperrors.ErrPriceNotFound
	}

	amountInInstrumentCurrency := s.converter.Convert(ctx, req.Amount, req.Currency, instrumentCurrency, date)
	quantity := amountInInstrumentCurrency / price

	if req.TransactionType == model.TransactionSell {
		history, err := s.transactions.ListByInstrument(req.Instrument)
		if err != nil {
			return model.PortfolioResponse{}, err
		}

		owned := engine.OwnedQuantity(history, req.Instrument, date)
		if owned <= 0 {
			return model.PortfolioResponse{}, fmt.Errorf("%w: %s", apperrors.ErrNoHolding, req.Instrument)
		}
		if quantity > owned {
			return model.PortfolioResponse{}, fmt.Errorf(
				"%w: selling %.2f of %s but only %.2f owned",
				apperrors.ErrOversell, quantity, req.Instrument, owned,
			)
		}
	}

	_, err = s.transactions.Insert(model.Transaction{
		Instrument: req.Instrument,
		Type:       req.TransactionType,
		Date:       date,
		Quantity:   quantity,
		Price:      price,
		Currency:   instrumentCurrency,
	})
	if err != nil {
		return model.PortfolioResponse{}, err
	}

	return s.GetPortfolio(ctx)
}

// Performance returns realized gains bucketed by period.
func (s *PortfolioService) Performance(ctx context.Context, intervalParam string) ([]model.PerformancePoint, error) {
	interval, err := engine.ParseInterval(intervalParam)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.ListAll()
	if err != nil {
		return nil, err
	}

	return engine.PerformanceByPeriod(ctx, transactions, interval, s.converter), nil
}

// ValueSeries returns the portfolio value time series in the requested
// reporting currency. Empty currency defaults to the base currency.
func (s *PortfolioService) ValueSeries(ctx context.Context, intervalParam, portfolioCurrency string) ([]model.ValuePoint, error) {
	interval, err := engine.ParseInterval(intervalParam)
	if err != nil {
		return nil, err
	}

	if portfolioCurrency == "" {
		portfolioCurrency = s.baseCurrency
	}
	if !model.SupportedCurrencies[portfolioCurrency] {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, portfolioCurrency)
	}

	transactions, err := s.transactions.ListAll()
	if err != nil {
		return nil, err
	}

	return s.valuator.Series(ctx, transactions, interval, portfolioCurrency, s.now()), nil
}

func (s *PortfolioService) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// instrumentCurrencyFor derives an instrument's native currency from its
// ticker suffix: Warsaw listings trade in PLN, German listings in EUR,
// everything else is assumed USD.
func instrumentCurrencyFor(instrument string) string {
	switch {
	case strings.HasSuffix(instrument, ".PL"):
		return "PLN"
	case strings.HasSuffix(instrument, ".DE"):
		return "EUR"
	default:
		return "USD"
	}
}
