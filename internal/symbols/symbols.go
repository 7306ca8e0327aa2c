package symbols

import "strings"

// Tracked is the fixed set of tickers the aggregator fans out over.
// Not configurable at runtime.
var Tracked = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "BRK.B", "JPM", "V",
	"UNH", "XOM", "JNJ", "WMT", "MA", "PG", "AVGO", "HD", "CVX", "MRK",
	"LLY", "ABBV", "PEP", "KO", "COST", "ADBE", "MCD", "CSCO", "CRM", "TMO",
	"BAC", "NFLX", "ACN", "AMD", "ABT", "ORCL", "LIN", "DHR", "DIS", "TXN",
	"WFC", "PM", "NEE", "INTC", "VZ", "CAT", "IBM", "QCOM", "GE", "GS",
}

var tracked = func() map[string]bool {
	m := make(map[string]bool, len(Tracked))
	for _, s := range Tracked {
		m[s] = true
	}
	return m
}()

// IsTracked reports whether sym is in the tracked set.
func IsTracked(sym string) bool {
	return tracked[strings.ToUpper(strings.TrimSpace(sym))]
}
