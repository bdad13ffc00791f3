// Package nbp provides a client for the NBP (Narodowy Bank Polski) exchange
// rate API. Rates from table A are mid rates quoted against PLN.
package nbp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkowalczyk/portfolio-analytics-backend/internal/apperrors"
)

// Client queries the NBP exchange rate API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new NBP client for the given API base URL,
// e.g. "http://api.nbp.pl/api/exchangerates/rates".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// RateOn returns the table A mid rate of a currency against PLN as of the
// given date. NBP publishes no rates on weekends and holidays; those days
// return apperrors.ErrExchangeRateNotFound.
func (c *Client) RateOn(ctx context.Context, currency string, date time.Time) (float64, error) {
	url := fmt.Sprintf("%s/A/%s/%s/?format=json", c.baseURL, currency, date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, apperrors.ErrExchangeRateNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("nbp: unexpected status %d for %s", resp.StatusCode, currency)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return 0, fmt.Errorf("nbp: failed to parse response: %w", err)
	}

	if len(response.Rates) == 0 {
		return 0, apperrors.ErrExchangeRateNotFound
	}

	return response.Rates[0].Mid, nil
}
