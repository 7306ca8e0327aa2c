// Command scan runs one insider-trade aggregation from the terminal and
// prints or exports the merged list. Useful for checking the upstream
// token and the tracked-symbol fan-out without starting the server.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ronin1351/Insider/internal/config"
	"github.com/Ronin1351/Insider/internal/dates"
	"github.com/Ronin1351/Insider/internal/finnhub"
	"github.com/Ronin1351/Insider/internal/insider"
	"github.com/Ronin1351/Insider/internal/models"
	"github.com/Ronin1351/Insider/internal/symbols"
)

func main() {
	from := flag.String("from", "", "Range start YYYY-MM-DD (default: 30 days back)")
	to := flag.String("to", "", "Range end YYYY-MM-DD (default: today)")
	csvPath := flag.String("csv", "", "Write records to CSV at this path")
	limit := flag.Int("limit", 0, "Print at most this many records (0 = all)")
	flag.Parse()

	cfg := config.Load()
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(zerolog.WarnLevel).With().Timestamp().Logger()

	rng, err := dates.Resolve(*from, *to, dates.InsiderWindow, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	client := finnhub.New(finnhub.Config{
		BaseURL:   cfg.FinnhubBaseURL,
		Token:     cfg.FinnhubAPIKey,
		Timeout:   cfg.UpstreamTimeout,
		RateLimit: cfg.UpstreamRateLimit,
	}, log)

	agg := insider.NewAggregator(client, symbols.Tracked, log)
	records, err := agg.FetchAll(context.Background(), rng.From, rng.To)
	if err != nil {
		fmt.Fprintf(os.Stderr, "aggregation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Aggregated %d records across %d symbols (%s to %s).\n",
		len(records), len(symbols.Tracked), rng.From, rng.To)

	n := len(records)
	if *limit > 0 && *limit < n {
		n = *limit
	}
	for _, r := range records[:n] {
		fmt.Printf("  %-6s %-10s %-24s %10.0f shares  code=%s  price=%.2f\n",
			r.Symbol, r.FilingDate, truncate(r.PersonName, 24), r.Share,
			r.TransactionCode, r.TransactionPrice)
	}

	if *csvPath != "" {
		if err := writeCSV(*csvPath, records); err != nil {
			fmt.Fprintf(os.Stderr, "could not write CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s.\n", *csvPath)
	}
}

func writeCSV(path string, records []models.TransactionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"symbol", "personName", "share", "change", "filingDate",
		"transactionDate", "transactionPrice", "transactionCode"})
	for _, r := range records {
		w.Write([]string{
			r.Symbol,
			r.PersonName,
			strconv.FormatFloat(r.Share, 'f', -1, 64),
			strconv.FormatFloat(r.Change, 'f', -1, 64),
			r.FilingDate,
			r.TransactionDate,
			strconv.FormatFloat(r.TransactionPrice, 'f', -1, 64),
			r.TransactionCode,
		})
	}
	w.Flush()
	return w.Error()
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-1] + "…"
	}
	return s
}
