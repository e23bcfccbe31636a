package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/config"
	"fyyur/internal/events"
	"fyyur/internal/http/middleware"
	"fyyur/internal/listing"
	"fyyur/internal/metrics"
	"fyyur/internal/store"
	"fyyur/internal/store/memory"
	"fyyur/internal/web"
	"fyyur/migrations"
)

// dataStore is satisfied by both the Postgres and the in-memory gateway.
type dataStore interface {
	venues.Store
	artists.Store
	shows.Store
	web.Pinger
}

type application struct {
	handler http.Handler
	bus     *events.Bus
	closers []io.Closer
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
}

func build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (app *application, err error) {
	app = &application{}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	data, err := openStore(ctx, cfg, m, app)
	if err != nil {
		return nil, err
	}

	if cfg.SeedDemoData {
		if err := seedDemoData(ctx, data); err != nil {
			return nil, err
		}
	}

	bus, err := events.NewBus(log, m)
	if err != nil {
		return nil, fmt.Errorf("event bus: %w", err)
	}
	app.bus = bus
	app.closers = append(app.closers, bus)

	engine := listing.New(nil)

	deps := web.Deps{
		Venues:        venues.New(data, engine, bus),
		Artists:       artists.New(data, engine, bus),
		Shows:         shows.New(data, bus),
		Health:        data,
		Logger:        log,
		Metrics:       m,
		Gatherer:      registry,
		SessionSecret: cfg.Security.SessionSecret,
	}

	if cfg.RateLimit.Enabled() {
		client := redis.NewClient(&redis.Options{Addr: cfg.RateLimit.RedisAddr})
		app.closers = append(app.closers, client)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RateLimit.RedisAddr).Msg("redis unreachable, rate limiting fails open")
		}
		deps.Limiter = middleware.NewRedisLimiter(client, cfg.RateLimit)
		deps.RateLimitCapacity = cfg.RateLimit.Capacity
	}

	server, err := web.New(deps)
	if err != nil {
		return nil, err
	}
	app.handler = server.Routes()

	return app, nil
}

func openStore(ctx context.Context, cfg *config.Config, m *metrics.Metrics, app *application) (dataStore, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverPostgres:
		db, err := openDatabase(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, db)

		if cfg.MigrateOnStart {
			if err := migrations.Up(db); err != nil {
				return nil, err
			}
			zerolog.Ctx(ctx).Info().Msg("migrations applied")
		}
		return store.New(db, store.WithMetrics(m)), nil
	default:
		return nil, errors.New("unknown store driver " + cfg.Database.Driver)
	}
}
