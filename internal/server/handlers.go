package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ronin1351/Insider/internal/dates"
	"github.com/Ronin1351/Insider/internal/finnhub"
	"github.com/Ronin1351/Insider/internal/models"
)

// queryResponse is the envelope both range queries return on success.
type queryResponse struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
	Count     int    `json:"count"`
	Cached    bool   `json:"cached"`
}

type errorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

func (s *Server) handleInsiderTrades(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := dates.Resolve(q.Get("from"), q.Get("to"), dates.InsiderWindow, s.deps.Now())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if v, ok := s.cacheGet(rng); ok {
		s.writeData(w, v, countOf(v), true)
		return
	}

	records, err := s.deps.Insider.FetchAll(r.Context(), rng.From, rng.To)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.cacheSet(rng, records)
	s.writeData(w, records, len(records), false)
}

func (s *Server) handleEarnings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := dates.Resolve(q.Get("from"), q.Get("to"), dates.EarningsWindow, s.deps.Now())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if v, ok := s.cacheGet(rng); ok {
		s.writeData(w, v, countOf(v), true)
		return
	}

	events, err := s.deps.Earnings.Fetch(r.Context(), rng.From, rng.To)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.cacheSet(rng, events)
	s.writeData(w, events, len(events), false)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": s.deps.Now().Sub(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, http.StatusNotFound, "not found")
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.handleNotFound(w, r)
		return
	}
	for _, name := range []string{"dashboard.html", "index.html"} {
		path := filepath.Join(s.cfg.StaticDir, name)
		if _, err := os.Stat(path); err == nil {
			http.ServeFile(w, r, path)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Frontend not found."})
}

func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	subpath := strings.TrimPrefix(r.URL.Path, "/static/")
	subpath = strings.TrimPrefix(subpath, "/")
	if subpath == "" || strings.Contains(subpath, "..") {
		s.handleNotFound(w, r)
		return
	}
	path := safeStaticPath(s.cfg.StaticDir, subpath)
	if path == "" {
		s.handleNotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

// safeStaticPath prevents path traversal. Returns a clean path under
// staticDir or empty.
func safeStaticPath(staticDir, requestPath string) string {
	base := filepath.Clean(staticDir)
	joined := filepath.Join(base, filepath.Clean(requestPath))
	if !strings.HasPrefix(joined, base+string(filepath.Separator)) && joined != base {
		return ""
	}
	return joined
}

func (s *Server) cacheGet(rng dates.Range) (any, bool) {
	if s.deps.Cache == nil {
		return nil, false
	}
	v, ok := s.deps.Cache.Get(rng.Key())
	if s.deps.Metrics != nil {
		if ok {
			s.deps.Metrics.CacheHits.WithLabelValues(rng.Kind).Inc()
		} else {
			s.deps.Metrics.CacheMisses.WithLabelValues(rng.Kind).Inc()
		}
	}
	return v, ok
}

func (s *Server) cacheSet(rng dates.Range, v any) {
	if s.deps.Cache != nil {
		s.deps.Cache.Set(rng.Key(), v)
	}
}

// writeQueryError maps the error taxonomy onto status codes: token
// problems are configuration errors, everything else reaching this point
// is internal.
func (s *Server) writeQueryError(w http.ResponseWriter, err error) {
	if errors.Is(err, finnhub.ErrNoToken) || errors.Is(err, finnhub.ErrAuth) {
		s.writeError(w, http.StatusInternalServerError, "upstream API token missing or invalid")
		return
	}
	s.deps.Log.Error().Err(err).Msg("query failed")
	s.writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) writeData(w http.ResponseWriter, data any, count int, cached bool) {
	s.writeJSON(w, http.StatusOK, queryResponse{
		Success:   true,
		Data:      data,
		Timestamp: s.deps.Now().UTC().Format(time.RFC3339),
		Count:     count,
		Cached:    cached,
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Success: false, Error: msg, StatusCode: status})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.deps.Log.Error().Err(err).Msg("response encoding failed")
	}
}

// countOf recovers the row count of a cached payload. Cached values are
// the exact slices stored on the miss path.
func countOf(v any) int {
	switch x := v.(type) {
	case []models.TransactionRecord:
		return len(x)
	case []models.EarningsEvent:
		return len(x)
	}
	return 0
}
