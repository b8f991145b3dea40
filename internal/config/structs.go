package config

import (
	"github.com/iskcon-portal/iskcon-portal/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	Log       logger.Log
	Store     Store
	Gita      Gita
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool   // enable static file browsing (for development purposes only)
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}

// Store holds the record store settings.
type Store struct {
	Path  string // sqlite database file backing the record store
	Table string // table name inside the sqlite file
	Reset bool   // drop all collections at startup (for development purposes only)
}

// Gita holds the quote fetcher settings.
type Gita struct {
	APIKey  string // Gemini API key; empty disables the quote engine
	Model   string // generation model, defaults to gemini-3-flash-preview
	Enabled bool   // arm the notification quote cycle
}
