package app

import (
	"fmt"
	"net/http"
	"os"

	"yatra/internal/api"
	"yatra/internal/domain"
	"yatra/internal/logging"
	"yatra/internal/services/catalog"
	"yatra/internal/services/dashboard"
	faresvc "yatra/internal/services/fare"
	"yatra/internal/services/session"
	"yatra/internal/services/suggest"
	"yatra/internal/store"
)

// Wire bundles the store, client and services for the CLI.
type Wire struct {
	Config    Config
	Log       *logging.Logger
	Store     domain.CredentialStore
	API       *api.Client
	Session   domain.SessionService
	Catalog   domain.CatalogService
	Suggest   domain.SuggestService
	Fare      domain.FareService
	Dashboard domain.DashboardService
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	out := cfg.LogOutput
	if out == nil {
		out = os.Stderr
	}
	log := logging.New(out, level)

	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create home %s: %w", cfg.Home, err)
	}

	// Credentials are keyed by the API root so sessions for different
	// servers never mix.
	var creds domain.CredentialStore
	if cfg.Passphrase != "" {
		creds = store.NewEncryptedFileStore(cfg.Home, cfg.BaseURL, cfg.Passphrase)
	} else {
		creds = store.NewFileStore(cfg.Home, cfg.BaseURL)
	}

	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []api.Option{api.WithHTTPClient(httpClient), api.WithLogger(log)}
	if cfg.OnLoginRequired != nil {
		opts = append(opts, api.WithLoginRequired(cfg.OnLoginRequired))
	}
	client, err := api.New(cfg.BaseURL, creds, opts...)
	if err != nil {
		return nil, err
	}

	return &Wire{
		Config:    cfg,
		Log:       log,
		Store:     creds,
		API:       client,
		Session:   session.New(client, creds, client.BaseURL(), log),
		Catalog:   catalog.New(client, cfg.CacheTTL),
		Suggest:   suggest.New(client, 0, cfg.CacheTTL),
		Fare:      faresvc.New(client, log),
		Dashboard: dashboard.New(client, client, client, log),
	}, nil
}

// Close releases the services' background work. It is safe to call more
// than once.
func (w *Wire) Close() {
	w.Catalog.Close()
	w.Suggest.Close()
}
