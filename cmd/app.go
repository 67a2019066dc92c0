package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/favorites"
	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/ratelimit"
	"github.com/lepinkainen/marquee/internal/search"
	"github.com/lepinkainen/marquee/internal/storage"
)

// app wires storage, favorites and the orchestrator for one command.
type app struct {
	cfg   *config.Config
	store storage.Store
	favs  *favorites.Favorites
	orch  *search.Orchestrator
}

var openApp = func(cfg *config.Config) (*app, error) {
	store, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open favorites storage: %w", err)
	}

	favs := favorites.Load(store)
	orch := search.New(newCatalog(cfg), favs, search.WithTrendingTitles(cfg.Trending))

	return &app{
		cfg:   cfg,
		store: store,
		favs:  favs,
		orch:  orch,
	}, nil
}

func newCatalog(cfg *config.Config) *omdb.Client {
	var limiter *ratelimit.Limiter
	if cfg.OMDb.Rate > 0 {
		limiter = ratelimit.New("OMDb", cfg.OMDb.Rate)
	}

	return omdb.NewClient(cfg.OMDb.APIKey,
		omdb.WithBaseURL(cfg.OMDb.BaseURL),
		omdb.WithHTTPClient(&http.Client{Timeout: cfg.OMDb.Timeout}),
		omdb.WithRateLimiter(limiter),
	)
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close favorites storage", "error", err)
	}
}
