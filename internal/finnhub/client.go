// Package finnhub is the one upstream integration: symbol-level insider
// transactions and the earnings calendar, both keyed by an API token.
package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/Ronin1351/Insider/internal/httpclient"
	"github.com/Ronin1351/Insider/internal/metrics"
	"github.com/Ronin1351/Insider/internal/models"
)

var (
	// ErrNoToken means the API token is not configured at all.
	ErrNoToken = errors.New("finnhub: API token not configured")
	// ErrAuth means the upstream rejected the configured token.
	ErrAuth = errors.New("finnhub: upstream rejected API token")
)

// Config controls one client instance.
type Config struct {
	BaseURL string
	Token   string
	// Per-request deadline.
	Timeout time.Duration
	// Requests per second allowed against the upstream.
	RateLimit float64
	Metrics   *metrics.Registry
}

// Client talks to the upstream API with a per-request timeout, a rate
// budget, and a circuit breaker. Failures of individual calls carry no
// retry logic; the caller decides what a failure means.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Registry
	log     zerolog.Logger
}

func New(cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 25
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "finnhub",
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 8
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).
				Str("from", from.String()).Str("to", to.String()).
				Msg("upstream breaker state change")
		},
	})
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		timeout: cfg.Timeout,
		http:    httpclient.Default,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), int(cfg.RateLimit)),
		breaker: breaker,
		metrics: cfg.Metrics,
		log:     log,
	}
}

// Ready reports whether the client has a token to send.
func (c *Client) Ready() bool { return c.token != "" }

// InsiderTransactions fetches the insider feed for one symbol over a date
// range.
func (c *Client) InsiderTransactions(ctx context.Context, symbol, from, to string) (*models.InsiderResponse, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("from", from)
	params.Set("to", to)
	var out models.InsiderResponse
	if err := c.get(ctx, "/stock/insider-transactions", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EarningsCalendar fetches the earnings calendar over a date range.
func (c *Client) EarningsCalendar(ctx context.Context, from, to string) (*models.EarningsResponse, error) {
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)
	var out models.EarningsResponse
	if err := c.get(ctx, "/calendar/earnings", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.token == "" {
		return ErrNoToken
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("finnhub: rate wait: %w", err)
	}

	params.Set("token", c.token)
	u := c.baseURL + path + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	_, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			io.Copy(io.Discard, resp.Body)
			return nil, ErrAuth
		case resp.StatusCode == http.StatusTooManyRequests:
			io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("finnhub: rate limited on %s", path)
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("finnhub: %s returned %d", path, resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("finnhub: decode %s: %w", path, err)
		}
		return nil, nil
	})

	c.count(path, err)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Dur("elapsed", time.Since(start)).
			Msg("upstream request failed")
		return err
	}
	c.log.Debug().Str("path", path).Dur("elapsed", time.Since(start)).
		Msg("upstream request ok")
	return nil
}

func (c *Client) count(path string, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.UpstreamRequests.WithLabelValues(path, outcome).Inc()
}
