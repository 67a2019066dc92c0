package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/present"
	"github.com/lepinkainen/marquee/internal/search"
	"github.com/lepinkainen/marquee/internal/tui"
)

// TUICmd starts the interactive surface
type TUICmd struct{}

// SearchCmd runs a single title search
type SearchCmd struct {
	Query []string `arg:"" help:"Title to search for"`
}

// TrendingCmd lists the trending grid
type TrendingCmd struct{}

// ShowCmd prints the detail view of one title
type ShowCmd struct {
	ID     string `arg:"" help:"IMDb ID, for example tt0372784"`
	Format string `short:"f" enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)"`
}

// FavoritesCmd groups the favorites subcommands
type FavoritesCmd struct {
	List   FavoritesListCmd   `cmd:"" default:"1" help:"List favorite titles"`
	Toggle FavoritesToggleCmd `cmd:"" help:"Add or remove a favorite title"`
}

// FavoritesListCmd lists stored favorites
type FavoritesListCmd struct {
	Details bool `help:"Fetch title information for each favorite from OMDb"`
}

// FavoritesToggleCmd flips one favorite
type FavoritesToggleCmd struct {
	ID string `arg:"" help:"IMDb ID to add or remove"`
}

// showOutput is the structured form of the show command.
type showOutput struct {
	omdb.Detail `yaml:",inline"`
	Favorite    bool `json:"favorite" yaml:"favorite"`
}

func withApp(needsAPIKey bool, fn func(*app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if needsAPIKey {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
	}

	a, err := openApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}

func (c *TUICmd) Run(ctx context.Context) error {
	return withApp(true, func(a *app) error {
		logFile, err := os.OpenFile(a.cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = logFile.Close() }()

		// The terminal belongs to the UI while it runs.
		setLogOutput(logFile, a.cfg.Log.Level)
		defer setLogOutput(os.Stderr, a.cfg.Log.Level)

		slog.Info("Starting terminal UI", "storage", a.cfg.Storage.Backend, "favorites", a.favs.Len())
		return runTUI(ctx, a.orch, tui.Options{Debounce: a.cfg.Debounce})
	})
}

func (c *SearchCmd) Run(ctx context.Context) error {
	return withApp(true, func(a *app) error {
		state := a.orch.Search(ctx, strings.Join(c.Query, " "))

		switch state.Phase {
		case search.PhaseSuccess:
			return present.WriteCards(stdout, present.ToCards(state.Results))
		case search.PhaseEmpty:
			_, err := fmt.Fprintln(stdout, state.Message)
			return err
		default:
			return errors.New(state.Message)
		}
	})
}

func (c *TrendingCmd) Run(ctx context.Context) error {
	return withApp(true, func(a *app) error {
		state := a.orch.Trending(ctx)
		if state.Phase != search.PhaseSuccess {
			return errors.New(state.Message)
		}
		return present.WriteCards(stdout, present.ToCards(state.Results))
	})
}

func (c *ShowCmd) Run(ctx context.Context) error {
	return withApp(true, func(a *app) error {
		detail, err := a.orch.Select(ctx, strings.TrimSpace(c.ID))
		if err != nil {
			return fmt.Errorf("%s: %w", search.DetailFailureMessage(err), err)
		}
		favorite := a.favs.IsFavorite(detail.ID)

		switch c.Format {
		case "json":
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(showOutput{Detail: *detail, Favorite: favorite})
		case "yaml":
			enc := yaml.NewEncoder(stdout)
			enc.SetIndent(2)
			if err := enc.Encode(showOutput{Detail: *detail, Favorite: favorite}); err != nil {
				return err
			}
			return enc.Close()
		default:
			return present.WriteDetail(stdout, present.ToDetailView(detail, favorite))
		}
	})
}

func (c *FavoritesListCmd) Run(ctx context.Context) error {
	return withApp(c.Details, func(a *app) error {
		ids := a.favs.List()
		if len(ids) == 0 {
			_, err := fmt.Fprintln(stdout, "No favorites yet")
			return err
		}

		if !c.Details {
			for _, id := range ids {
				if _, err := fmt.Fprintln(stdout, id); err != nil {
					return err
				}
			}
			return nil
		}

		summaries := make([]omdb.Summary, 0, len(ids))
		for _, id := range ids {
			detail, err := a.orch.FetchDetail(ctx, id)
			if err != nil {
				slog.Warn("Failed to fetch favorite", "id", id, "error", err)
				summaries = append(summaries, omdb.Summary{ID: id, Title: "(unavailable)"})
				continue
			}
			summaries = append(summaries, detail.Summary)
		}
		return present.WriteCards(stdout, present.ToCards(summaries))
	})
}

func (c *FavoritesToggleCmd) Run(_ context.Context) error {
	return withApp(false, func(a *app) error {
		id := strings.TrimSpace(c.ID)
		added, err := a.favs.Toggle(id)
		if err != nil {
			return fmt.Errorf("%s: %w", search.MessageFavoriteFailed, err)
		}

		if added {
			_, err = fmt.Fprintf(stdout, "Added %s to favorites\n", id)
		} else {
			_, err = fmt.Fprintf(stdout, "Removed %s from favorites\n", id)
		}
		return err
	})
}
