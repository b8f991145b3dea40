// Package daemon wires the record store, quote engine, notification center
// and web service together and runs them.
package daemon

import (
	"context"

	"github.com/gofiber/storage/sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/iskcon-portal/iskcon-portal/internal/config"
	"github.com/iskcon-portal/iskcon-portal/internal/gita"
	"github.com/iskcon-portal/iskcon-portal/internal/logger"
	"github.com/iskcon-portal/iskcon-portal/internal/notify"
	"github.com/iskcon-portal/iskcon-portal/internal/store"
	"github.com/iskcon-portal/iskcon-portal/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	center     *notify.Center
}

// Start starts the Daemon's quote cycle and web service.
func (d *Daemon) Start() error {
	d.center.Start()
	defer d.center.Stop()

	return d.webService.Start()
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}

	// Record store on a sqlite-backed key-value storage
	table := cfg.Store.Table
	if table == "" {
		table = "records"
	}

	storageBackend := sqlite3.New(sqlite3.Config{
		Database: cfg.Store.Path,
		Table:    table,
	})

	if cfg.Store.Reset {
		log.Warn().Msg("store reset requested: dropping all collections")

		if err := storageBackend.Reset(); err != nil {
			panic("failed to reset record store")
		}
	}

	st, err := store.New(storageBackend)
	if err != nil {
		panic("failed to create record store")
	}

	reportCollections(st)

	// Gemini quote engine; stays disabled without an API key
	if err := gita.Open(context.Background(), cfg.Gita); err != nil {
		log.Error().Err(err).Msg("failed to initialize gita quote engine")
	}

	var fetcher notify.QuoteFetcher
	if cfg.Gita.Enabled {
		fetcher = &gita.Engine
	}

	center, err := notify.NewCenter(st, fetcher)
	if err != nil {
		panic("failed to load notification center")
	}

	return &Daemon{
		webService: web.New(cfg, st, center, fetcher),
		center:     center,
	}
}
