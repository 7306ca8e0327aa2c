package models

// TransactionRecord is one row of the merged insider-trading output served
// to the dashboard.
type TransactionRecord struct {
	Symbol     string `json:"symbol"`
	PersonName string `json:"personName"`
	// Absolute number of shares reported on the filing.
	Share float64 `json:"share"`
	// Signed share-count delta for the transaction. Some upstream feeds
	// report this as a percentage; this service treats it as shares
	// everywhere (disposals negative, acquisitions positive).
	Change           float64 `json:"change"`
	FilingDate       string  `json:"filingDate"`
	TransactionDate  string  `json:"transactionDate,omitempty"`
	TransactionPrice float64 `json:"transactionPrice"`
	// 'P' = open-market purchase, 'S' = open-market sale, "N/A" otherwise.
	TransactionCode string `json:"transactionCode"`
}

// RawInsiderTransaction mirrors one entry of the upstream insider feed.
type RawInsiderTransaction struct {
	Name             string  `json:"name"`
	Share            float64 `json:"share"`
	Change           float64 `json:"change"`
	FilingDate       string  `json:"filingDate"`
	TransactionDate  string  `json:"transactionDate"`
	TransactionPrice float64 `json:"transactionPrice"`
	TransactionCode  string  `json:"transactionCode"`
	Symbol           string  `json:"symbol"`
}

// InsiderResponse is the upstream insider-transactions payload.
type InsiderResponse struct {
	Data   []RawInsiderTransaction `json:"data"`
	Symbol string                  `json:"symbol"`
}

// RawEarningsEntry mirrors one entry of the upstream earnings calendar.
// Estimate and actual figures are nullable upstream.
type RawEarningsEntry struct {
	Date            string   `json:"date"`
	Symbol          string   `json:"symbol"`
	Name            string   `json:"name"`
	EPSEstimate     *float64 `json:"epsEstimate"`
	EPSActual       *float64 `json:"epsActual"`
	RevenueEstimate *float64 `json:"revenueEstimate"`
	RevenueActual   *float64 `json:"revenueActual"`
	Quarter         int      `json:"quarter"`
	Year            int      `json:"year"`
}

// EarningsResponse is the upstream earnings-calendar payload.
type EarningsResponse struct {
	EarningsCalendar []RawEarningsEntry `json:"earningsCalendar"`
}

// EarningsEvent is one row of the earnings output served to the dashboard.
type EarningsEvent struct {
	Date            string   `json:"date"`
	Symbol          string   `json:"symbol"`
	Name            string   `json:"name,omitempty"`
	EPSEstimate     *float64 `json:"epsEstimate"`
	EPSActual       *float64 `json:"epsActual"`
	RevenueEstimate *float64 `json:"revenueEstimate"`
	RevenueActual   *float64 `json:"revenueActual"`
	Quarter         int      `json:"quarter"`
	Year            int      `json:"year"`
}
