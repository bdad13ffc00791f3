// Package yahoo provides a client for the Yahoo Finance chart API, used as
// the price oracle for instrument quotes in their native currency.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// FinanceClient provides methods for fetching price data from the Yahoo
// Finance chart API.
type FinanceClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFinanceClient creates a new Yahoo Finance client with default settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewFinanceClientWithBaseURL creates a client pointing at a custom endpoint.
// Used by tests to target an httptest server.
func NewFinanceClientWithBaseURL(baseURL string) *FinanceClient {
	c := NewFinanceClient()
	c.baseURL = baseURL
	return c
}

// QueryFiveDay fetches the last 5 days of daily price data for a symbol.
// Used to resolve the latest available close.
func (c *FinanceClient) QueryFiveDay(ctx context.Context, symbol string) (Response, error) {
	url := fmt.Sprintf("%s/%s?interval=1d&range=5d", c.baseURL, symbol)
	return c.query(ctx, url, symbol)
}

// QueryDateRange fetches daily price data for a symbol between two dates (inclusive).
func (c *FinanceClient) QueryDateRange(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error) {
	url := fmt.Sprintf(
		"%s/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL,
		symbol,
		startDate.Unix(),
		endDate.Unix(),
	)
	return c.query(ctx, url, symbol)
}

func (c *FinanceClient) query(ctx context.Context, url, symbol string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}
	if len(response.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return response, nil
}

// ParseChart converts a raw API response into a series of daily closes.
// Days with a null close are skipped.
func ParseChart(response Response) (PriceChart, error) {
	if len(response.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}

	result := response.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	chart := PriceChart{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
	}
	for i, ts := range result.Timestamp {
		if quote.Close[i] == nil {
			continue
		}
		chart.Closes = append(chart.Closes, Close{
			Date:  time.Unix(ts, 0).UTC(),
			Price: *quote.Close[i],
		})
	}

	if len(chart.Closes) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	return chart, nil
}

// LatestClose returns the most recent close in the chart.
func (c PriceChart) LatestClose() (float64, bool) {
	if len(c.Closes) == 0 {
		return 0, false
	}
	return c.Closes[len(c.Closes)-1].Price, true
}

// ClosestClose returns the close nearest to the target date.
func (c PriceChart) ClosestClose(target time.Time) (float64, bool) {
	if len(c.Closes) == 0 {
		return 0, false
	}

	best := c.Closes[0]
	minDiff := math.Abs(best.Date.Sub(target).Hours())
	for _, cl := range c.Closes[1:] {
		diff := math.Abs(cl.Date.Sub(target).Hours())
		if diff < minDiff {
			minDiff = diff
			best = cl
		}
	}

	return best.Price, true
}
