package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Token: "test-token"}, zerolog.Nop())
}

func TestInsiderTransactionsDecodesPayload(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/insider-transactions", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"symbol": q.Get("symbol"),
			"from":   q.Get("from"),
			"to":     q.Get("to"),
			"token":  q.Get("token"),
		}
		w.Write([]byte(`{"symbol":"AAPL","data":[
			{"symbol":"AAPL","name":"Doe J","share":500,"change":-500,
			 "filingDate":"2025-01-03","transactionDate":"2025-01-02",
			 "transactionPrice":182.5,"transactionCode":"S"}]}`))
	})

	resp, err := client.InsiderTransactions(context.Background(), "AAPL", "2025-01-01", "2025-02-01")
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Doe J", resp.Data[0].Name)
	assert.Equal(t, -500.0, resp.Data[0].Change)
	assert.Equal(t, map[string]string{
		"symbol": "AAPL",
		"from":   "2025-01-01",
		"to":     "2025-02-01",
		"token":  "test-token",
	}, gotQuery)
}

func TestEarningsCalendarDecodesPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calendar/earnings", r.URL.Path)
		w.Write([]byte(`{"earningsCalendar":[
			{"date":"2025-07-22","symbol":"MSFT","epsEstimate":2.93,
			 "epsActual":null,"quarter":4,"year":2025}]}`))
	})

	resp, err := client.EarningsCalendar(context.Background(), "2025-07-20", "2025-07-27")
	require.NoError(t, err)
	require.Len(t, resp.EarningsCalendar, 1)
	entry := resp.EarningsCalendar[0]
	assert.Equal(t, "MSFT", entry.Symbol)
	require.NotNil(t, entry.EPSEstimate)
	assert.Equal(t, 2.93, *entry.EPSEstimate)
	assert.Nil(t, entry.EPSActual)
}

func TestMissingTokenFailsBeforeAnyCall(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL}, zerolog.Nop())
	_, err := client.InsiderTransactions(context.Background(), "AAPL", "2025-01-01", "2025-02-01")
	assert.ErrorIs(t, err, ErrNoToken)
	assert.False(t, called)
}

func TestRejectedTokenIsAuthError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Invalid API key"}`, http.StatusUnauthorized)
	})
	_, err := client.InsiderTransactions(context.Background(), "AAPL", "2025-01-01", "2025-02-01")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestServerErrorIsPlainError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	})
	_, err := client.InsiderTransactions(context.Background(), "AAPL", "2025-01-01", "2025-02-01")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuth)
}

func TestMalformedBodyIsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})
	_, err := client.EarningsCalendar(context.Background(), "2025-07-20", "2025-07-27")
	assert.Error(t, err)
}
