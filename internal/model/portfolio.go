package model

// Position represents an open holding with its current valuation.
// CurrentPrice is nil when the price oracle has no data for the instrument;
// in that case CurrentValue is zero.
type Position struct {
	Instrument   string   `json:"instrument"`
	Quantity     float64  `json:"quantity"`
	AvgPrice     float64  `json:"avgPrice"`
	CurrentValue float64  `json:"currentValue"`
	ProfitLoss   float64  `json:"profitLoss"`
	Currency     string   `json:"currency"`
	CurrentPrice *float64 `json:"currentPrice"`
}

// ChartPoint is a single dated value in the daily gain chart series.
type ChartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Charts holds the daily realized gain series returned with the portfolio.
type Charts struct {
	CapitalGains  []ChartPoint `json:"capitalGains"`
	CurrencyGains []ChartPoint `json:"currencyGains"`
}

// PortfolioResponse is the payload of GET /portfolio and POST /transactions.
type PortfolioResponse struct {
	Portfolio []Position `json:"portfolio"`
	Charts    Charts     `json:"charts"`
}

// PerformancePoint is one period bucket of realized gains.
// Dividends is reserved and always zero; no dividend ledger exists.
type PerformancePoint struct {
	Period       string  `json:"period"`
	CapitalGain  float64 `json:"capitalGain"`
	CurrencyGain float64 `json:"currencyGain"`
	Dividends    float64 `json:"dividends"`
}

// ValuePoint is one checkpoint of the portfolio value time series.
type ValuePoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}
