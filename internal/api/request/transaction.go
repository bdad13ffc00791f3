package request

// CreateTransactionRequest is the body of POST /transactions. Amount is the
// money spent (buy) or received (sell) in the submitted portfolio currency;
// the server derives quantity from the historical price.
type CreateTransactionRequest struct {
	Instrument      string  `json:"instrument"`
	TransactionType string  `json:"transactionType"`
	Date            string  `json:"date"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}
