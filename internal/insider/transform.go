package insider

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Ronin1351/Insider/internal/dates"
	"github.com/Ronin1351/Insider/internal/models"
)

// Transform maps one raw upstream payload to clean transaction records.
// It never errors: a payload without a data array yields an empty list.
//
// An entry is kept only if it has a symbol, a non-zero share count, and at
// least one of filingDate/transactionDate. Duplicates on
// (symbol, filingDate, personName, share) are dropped first-wins.
func Transform(payload *models.InsiderResponse) []models.TransactionRecord {
	records := make([]models.TransactionRecord, 0)
	if payload == nil || len(payload.Data) == 0 {
		return records
	}
	seen := make(map[string]bool, len(payload.Data))
	for _, raw := range payload.Data {
		symbol := strings.TrimSpace(raw.Symbol)
		if symbol == "" || raw.Share == 0 {
			continue
		}
		if raw.FilingDate == "" && raw.TransactionDate == "" {
			continue
		}
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			name = "Unknown"
		}
		filing := raw.FilingDate
		if filing == "" {
			filing = raw.TransactionDate
		}
		price := raw.TransactionPrice
		if price < 0 {
			price = 0
		}
		code := strings.ToUpper(strings.TrimSpace(raw.TransactionCode))
		if code != "P" && code != "S" {
			code = "N/A"
		}
		rec := models.TransactionRecord{
			Symbol:           symbol,
			PersonName:       name,
			Share:            math.Abs(raw.Share),
			Change:           raw.Change,
			FilingDate:       filing,
			TransactionDate:  raw.TransactionDate,
			TransactionPrice: price,
			TransactionCode:  code,
		}
		key := dedupKey(rec)
		if seen[key] {
			continue
		}
		seen[key] = true
		records = append(records, rec)
	}
	SortByFilingDate(records)
	return records
}

func dedupKey(r models.TransactionRecord) string {
	return strings.ToUpper(r.Symbol) + "|" + r.FilingDate + "|" + r.PersonName + "|" +
		fmt.Sprintf("%.0f", r.Share)
}

// SortByFilingDate orders records newest filing first. Ties keep their
// input order.
func SortByFilingDate(records []models.TransactionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return parseDay(records[i].FilingDate).After(parseDay(records[j].FilingDate))
	})
}

func parseDay(s string) time.Time {
	if len(s) > len(dates.Layout) {
		s = s[:len(dates.Layout)]
	}
	t, err := time.Parse(dates.Layout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
