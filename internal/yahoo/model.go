package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. Close prices are pointers because Yahoo reports null for days
// without a close (holidays, suspended trading).
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level chart container.
type Chart struct {
	Result []Result `json:"result"`
	Error  *string  `json:"error"`
}

// Result holds one symbol's metadata, timestamps and quote indicators.
type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
}

// Meta holds symbol metadata.
type Meta struct {
	Currency     string `json:"currency"`
	Symbol       string `json:"symbol"`
	ExchangeName string `json:"exchangeName"`
}

// IndicatorsContainer wraps the quote arrays.
type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

// Quote holds parallel OHLCV arrays, one entry per timestamp.
type Quote struct {
	Open   []*float64 `json:"open"`
	Close  []*float64 `json:"close"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Volume []*int64   `json:"volume"`
}

// PriceChart is the parsed, application-facing representation of a chart:
// a series of daily closes for one symbol.
type PriceChart struct {
	Symbol   string
	Currency string
	Closes   []Close
}

// Close is a single day's closing price.
type Close struct {
	Date  time.Time
	Price float64
}
