package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Ronin1351/Insider/internal/cache"
	"github.com/Ronin1351/Insider/internal/config"
	"github.com/Ronin1351/Insider/internal/earnings"
	"github.com/Ronin1351/Insider/internal/finnhub"
	"github.com/Ronin1351/Insider/internal/insider"
	"github.com/Ronin1351/Insider/internal/metrics"
	"github.com/Ronin1351/Insider/internal/server"
	"github.com/Ronin1351/Insider/internal/symbols"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg)

	reg := metrics.New()
	store := cache.New(cfg.CacheTTL, cfg.CacheEnabled)

	client := finnhub.New(finnhub.Config{
		BaseURL:   cfg.FinnhubBaseURL,
		Token:     cfg.FinnhubAPIKey,
		Timeout:   cfg.UpstreamTimeout,
		RateLimit: cfg.UpstreamRateLimit,
		Metrics:   reg,
	}, log.With().Str("component", "finnhub").Logger())

	if !client.Ready() {
		log.Warn().Msg("FINNHUB_API_KEY not set; queries will fail with a configuration error")
	}

	srv := server.New(server.Config{
		Addr:              ":" + cfg.Port,
		StaticDir:         cfg.StaticDir,
		RateLimitInterval: 300 * time.Millisecond,
	}, server.Deps{
		Insider:  insider.NewAggregator(client, symbols.Tracked, log.With().Str("component", "aggregator").Logger()),
		Earnings: earnings.NewService(client, log.With().Str("component", "earnings").Logger()),
		Cache:    store,
		Metrics:  reg,
		Log:      log,
	})

	go func() {
		if err := srv.Run(); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if cfg.LogPretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}
