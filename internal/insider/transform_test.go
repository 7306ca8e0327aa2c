package insider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ronin1351/Insider/internal/models"
)

func TestTransformNilAndEmptyPayloads(t *testing.T) {
	assert.Empty(t, Transform(nil))
	assert.Empty(t, Transform(&models.InsiderResponse{}))
	assert.Empty(t, Transform(&models.InsiderResponse{Symbol: "AAPL"}))
}

func TestTransformFiltering(t *testing.T) {
	payload := &models.InsiderResponse{Data: []models.RawInsiderTransaction{
		{Symbol: "", Share: 100, FilingDate: "2025-01-02"},                  // no symbol
		{Symbol: "AAPL", Share: 0, FilingDate: "2025-01-03"},                // zero share
		{Symbol: "AAPL", Share: 50},                                        // no dates
		{Symbol: "AAPL", Share: 100, FilingDate: "2025-01-02", Name: "Doe"}, // kept
	}}
	records := Transform(payload)
	require.Len(t, records, 1)
	assert.Equal(t, "Doe", records[0].PersonName)
}

func TestTransformDefaults(t *testing.T) {
	payload := &models.InsiderResponse{Data: []models.RawInsiderTransaction{
		{
			Symbol:           "MSFT",
			Share:            -200,
			TransactionDate:  "2025-02-10",
			TransactionPrice: -5,
			TransactionCode:  "X",
		},
	}}
	records := Transform(payload)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "Unknown", rec.PersonName)
	assert.Equal(t, 200.0, rec.Share, "share is stored as absolute value")
	assert.Equal(t, 0.0, rec.Change)
	assert.Equal(t, "2025-02-10", rec.FilingDate, "filing date falls back to transaction date")
	assert.Equal(t, 0.0, rec.TransactionPrice, "negative price clamps to zero")
	assert.Equal(t, "N/A", rec.TransactionCode)
}

func TestTransformDedupFirstWins(t *testing.T) {
	payload := &models.InsiderResponse{Data: []models.RawInsiderTransaction{
		{Symbol: "AAPL", Name: "Doe", Share: 100, FilingDate: "2025-01-02", TransactionPrice: 10},
		{Symbol: "AAPL", Name: "Doe", Share: 100, FilingDate: "2025-01-02", TransactionPrice: 99},
		{Symbol: "AAPL", Name: "Doe", Share: 101, FilingDate: "2025-01-02"},
	}}
	records := Transform(payload)
	require.Len(t, records, 2)
	assert.Equal(t, 10.0, records[0].TransactionPrice, "first occurrence wins")
}

func TestTransformDropsZeroShareExample(t *testing.T) {
	payload := &models.InsiderResponse{Data: []models.RawInsiderTransaction{
		{Symbol: "AAPL", Share: 100, FilingDate: "2025-01-02", TransactionCode: "P", TransactionPrice: 10},
		{Symbol: "AAPL", Share: 0, FilingDate: "2025-01-03"},
	}}
	records := Transform(payload)
	require.Len(t, records, 1)
	assert.Equal(t, 100.0, records[0].Share)
	assert.Equal(t, "P", records[0].TransactionCode)
}

func TestTransformSortsNewestFirst(t *testing.T) {
	payload := &models.InsiderResponse{Data: []models.RawInsiderTransaction{
		{Symbol: "AAPL", Share: 1, FilingDate: "2025-01-01"},
		{Symbol: "AAPL", Share: 2, FilingDate: "2025-03-01"},
		{Symbol: "AAPL", Share: 3, FilingDate: "2025-02-01"},
	}}
	records := Transform(payload)
	require.Len(t, records, 3)
	assert.Equal(t, "2025-03-01", records[0].FilingDate)
	assert.Equal(t, "2025-02-01", records[1].FilingDate)
	assert.Equal(t, "2025-01-01", records[2].FilingDate)
}

func TestSortByFilingDateIsNonIncreasing(t *testing.T) {
	records := []models.TransactionRecord{
		{FilingDate: "2025-01-05"},
		{FilingDate: "bogus"},
		{FilingDate: "2025-06-30"},
		{FilingDate: "2024-12-31"},
	}
	SortByFilingDate(records)
	for i := 1; i < len(records); i++ {
		prev := parseDay(records[i-1].FilingDate)
		cur := parseDay(records[i].FilingDate)
		assert.False(t, cur.After(prev), "records out of order at %d", i)
	}
}
