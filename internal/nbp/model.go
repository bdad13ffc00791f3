package nbp

// Response represents the raw JSON response from the NBP exchange rates API.
type Response struct {
	Table    string `json:"table"`
	Currency string `json:"currency"`
	Code     string `json:"code"`
	Rates    []Rate `json:"rates"`
}

// Rate is a single published rate. Mid is the mid rate against PLN.
type Rate struct {
	No            string  `json:"no"`
	EffectiveDate string  `json:"effectiveDate"`
	Mid           float64 `json:"mid"`
}
