// Package earnings fetches and cleans the upstream earnings calendar. The
// calendar endpoint is range-keyed rather than symbol-keyed, so a single
// upstream call covers every company.
package earnings

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Ronin1351/Insider/internal/models"
)

// Fetcher is the slice of the upstream client this service needs.
type Fetcher interface {
	EarningsCalendar(ctx context.Context, from, to string) (*models.EarningsResponse, error)
}

type Service struct {
	fetcher Fetcher
	log     zerolog.Logger
}

func NewService(fetcher Fetcher, log zerolog.Logger) *Service {
	return &Service{fetcher: fetcher, log: log}
}

// Fetch returns the earnings events in [from, to], soonest first. Unlike
// the insider fan-out there is one upstream call, so its failure surfaces.
func (s *Service) Fetch(ctx context.Context, from, to string) ([]models.EarningsEvent, error) {
	payload, err := s.fetcher.EarningsCalendar(ctx, from, to)
	if err != nil {
		return nil, err
	}
	events := Transform(payload)
	s.log.Info().Int("events", len(events)).Str("from", from).Str("to", to).
		Msg("earnings calendar fetched")
	return events, nil
}

// Transform maps the raw calendar payload to clean events, dropping
// entries without a symbol or report date. Never errors.
func Transform(payload *models.EarningsResponse) []models.EarningsEvent {
	events := make([]models.EarningsEvent, 0)
	if payload == nil || len(payload.EarningsCalendar) == 0 {
		return events
	}
	for _, raw := range payload.EarningsCalendar {
		symbol := strings.TrimSpace(raw.Symbol)
		if symbol == "" || raw.Date == "" {
			continue
		}
		events = append(events, models.EarningsEvent{
			Date:            raw.Date,
			Symbol:          symbol,
			Name:            strings.TrimSpace(raw.Name),
			EPSEstimate:     raw.EPSEstimate,
			EPSActual:       raw.EPSActual,
			RevenueEstimate: raw.RevenueEstimate,
			RevenueActual:   raw.RevenueActual,
			Quarter:         raw.Quarter,
			Year:            raw.Year,
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	return events
}
