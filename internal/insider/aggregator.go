// Package insider fans out per-symbol insider-transaction fetches and
// merges the results into one filing-date-ordered list.
package insider

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Ronin1351/Insider/internal/finnhub"
	"github.com/Ronin1351/Insider/internal/models"
)

// Fetcher is the slice of the upstream client the aggregator needs.
type Fetcher interface {
	InsiderTransactions(ctx context.Context, symbol, from, to string) (*models.InsiderResponse, error)
}

// Aggregator issues one upstream request per tracked symbol and merges
// whatever survives.
type Aggregator struct {
	fetcher Fetcher
	symbols []string
	log     zerolog.Logger
}

func NewAggregator(fetcher Fetcher, symbols []string, log zerolog.Logger) *Aggregator {
	return &Aggregator{fetcher: fetcher, symbols: symbols, log: log}
}

// FetchAll queries every tracked symbol concurrently and waits for all of
// them to settle. A failed symbol contributes an empty result and never
// fails the call; the one exception is an authentication failure, which
// would hit every symbol identically and is surfaced instead.
func (a *Aggregator) FetchAll(ctx context.Context, from, to string) ([]models.TransactionRecord, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		merged  = make([]models.TransactionRecord, 0)
		authErr error
	)

	for _, sym := range a.symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			payload, err := a.fetcher.InsiderTransactions(ctx, sym, from, to)
			if err != nil {
				if errors.Is(err, finnhub.ErrAuth) || errors.Is(err, finnhub.ErrNoToken) {
					mu.Lock()
					authErr = err
					mu.Unlock()
					return
				}
				a.log.Warn().Err(err).Str("symbol", sym).
					Msg("symbol fetch failed, continuing without it")
				return
			}
			records := Transform(payload)
			mu.Lock()
			merged = append(merged, records...)
			mu.Unlock()
		}(sym)
	}
	wg.Wait()

	if authErr != nil {
		return nil, authErr
	}
	SortByFilingDate(merged)
	a.log.Info().Int("symbols", len(a.symbols)).Int("records", len(merged)).
		Str("from", from).Str("to", to).Msg("insider aggregation complete")
	return merged, nil
}
