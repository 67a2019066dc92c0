// Package search turns raw queries into search states and owns the
// application state shared by the CLI and the TUI.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/omdb"
)

// Catalog is the remote movie database.
type Catalog interface {
	SearchByTitle(ctx context.Context, query string) ([]omdb.Summary, error)
	FetchDetail(ctx context.Context, imdbID string) (*omdb.Detail, error)
	SearchManyByTitle(ctx context.Context, queries []string) []omdb.Summary
}

// FavoriteSet is the persisted favorites set.
type FavoriteSet interface {
	IsFavorite(id string) bool
	Toggle(id string) (bool, error)
}

// Ticket identifies one search invocation. Only the ticket with the latest
// generation may change the visible search state.
type Ticket struct {
	Query      string
	Generation uint64
}

// Valid reports whether the ticket needs a network call.
func (t Ticket) Valid() bool {
	return t.Generation != 0 && t.Query != ""
}

// Orchestrator holds the current search, the selected title and the
// favorites set.
type Orchestrator struct {
	catalog        Catalog
	favorites      FavoriteSet
	trendingTitles []string

	mu         sync.Mutex
	generation uint64
	current    State
	selected   string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTrendingTitles replaces the trending seed list. An empty list is ignored.
func WithTrendingTitles(titles []string) Option {
	return func(o *Orchestrator) {
		if len(titles) > 0 {
			o.trendingTitles = append([]string(nil), titles...)
		}
	}
}

// New creates an Orchestrator.
func New(catalog Catalog, favorites FavoriteSet, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		catalog:        catalog,
		favorites:      favorites,
		trendingTitles: DefaultTrendingTitles,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Begin starts a new search invocation and supersedes every earlier one.
// Blank queries resolve immediately to PhaseInvalid and return an invalid
// ticket; they never reach the catalog.
func (o *Orchestrator) Begin(query string) (Ticket, State) {
	trimmed := strings.TrimSpace(query)

	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	if trimmed == "" {
		o.current = State{
			Query:      query,
			Phase:      PhaseInvalid,
			Message:    MessageEmptyQuery,
			Generation: o.generation,
		}
		return Ticket{}, o.current
	}

	o.current = State{
		Query:      trimmed,
		Phase:      PhaseLoading,
		Generation: o.generation,
	}
	return Ticket{Query: trimmed, Generation: o.generation}, o.current
}

// Run performs the catalog call for ticket and returns the terminal state.
// The result is not applied; pass it to Apply.
func (o *Orchestrator) Run(ctx context.Context, ticket Ticket) State {
	if !ticket.Valid() {
		return State{Query: ticket.Query, Phase: PhaseInvalid, Message: MessageEmptyQuery, Generation: ticket.Generation}
	}

	results, err := o.catalog.SearchByTitle(ctx, ticket.Query)
	return resolve(ticket, results, err)
}

// Apply makes s the current state if it belongs to the latest invocation.
// It returns the current state and whether s was applied.
func (o *Orchestrator) Apply(s State) (State, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if s.Generation != o.generation {
		slog.Debug("Discarding stale search result", "query", s.Query, "generation", s.Generation, "latest", o.generation)
		return o.current, false
	}
	o.current = s
	return o.current, true
}

// Search runs a complete invocation synchronously.
func (o *Orchestrator) Search(ctx context.Context, query string) State {
	ticket, state := o.Begin(query)
	if !ticket.Valid() {
		return state
	}
	current, _ := o.Apply(o.Run(ctx, ticket))
	return current
}

// Current returns the latest search state.
func (o *Orchestrator) Current() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

func resolve(ticket Ticket, results []omdb.Summary, err error) State {
	s := State{Query: ticket.Query, Generation: ticket.Generation}

	switch {
	case err == nil && len(results) > 0:
		s.Phase = PhaseSuccess
		s.Results = results
	case err == nil:
		s.Phase = PhaseEmpty
		s.Message = MessageNoResults
	case errors.IsNotFound(err):
		s.Phase = PhaseEmpty
		s.Message = errors.ServiceMessage(err)
		if s.Message == "" {
			s.Message = MessageNoResults
		}
	case errors.IsValidation(err):
		s.Phase = PhaseInvalid
		s.Message = MessageEmptyQuery
	case errors.IsRateLimitError(err):
		s.Phase = PhaseFailed
		s.Message = MessageRateLimited
	default:
		slog.Warn("Search failed", "query", ticket.Query, "error", err)
		s.Phase = PhaseFailed
		s.Message = MessageSearchFailed
	}
	return s
}

// BeginTrending returns the loading state of the trending grid.
func (o *Orchestrator) BeginTrending() State {
	return State{Query: strings.Join(o.trendingTitles, ", "), Phase: PhaseLoading}
}

// RunTrending fetches the seed titles and returns the trending state.
func (o *Orchestrator) RunTrending(ctx context.Context) State {
	titles := o.trendingTitles
	results := o.catalog.SearchManyByTitle(ctx, titles)

	s := State{Query: strings.Join(titles, ", ")}
	if len(results) == 0 {
		s.Phase = PhaseFailed
		s.Message = MessageTrendingFailed
	} else {
		s.Phase = PhaseSuccess
		s.Results = results
	}
	return s
}

// Trending runs the trending orchestration synchronously.
func (o *Orchestrator) Trending(ctx context.Context) State {
	o.BeginTrending()
	return o.RunTrending(ctx)
}

// FetchDetail fetches the detail of id without touching the selection.
// Callers that overlap fetches record the winner with SetSelected.
func (o *Orchestrator) FetchDetail(ctx context.Context, id string) (*omdb.Detail, error) {
	return o.catalog.FetchDetail(ctx, id)
}

// Select fetches the detail of id and records it as the current selection
// once the fetch succeeds.
func (o *Orchestrator) Select(ctx context.Context, id string) (*omdb.Detail, error) {
	detail, err := o.FetchDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	o.SetSelected(id)
	return detail, nil
}

// SetSelected records id as the title favorites toggles apply to.
func (o *Orchestrator) SetSelected(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selected = id
}

// Selected returns the currently selected ID.
func (o *Orchestrator) Selected() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selected
}

// ClearSelection forgets the selected ID.
func (o *Orchestrator) ClearSelection() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selected = ""
}

// ToggleFavorite flips the favorite state of the selected title and returns
// the new membership.
func (o *Orchestrator) ToggleFavorite() (bool, error) {
	id := o.Selected()
	if id == "" {
		return false, fmt.Errorf("no title selected")
	}
	return o.favorites.Toggle(id)
}

// IsFavorite reports whether id is a favorite.
func (o *Orchestrator) IsFavorite(id string) bool {
	return o.favorites.IsFavorite(id)
}

// DetailFailureMessage maps a detail fetch error to a banner message.
func DetailFailureMessage(err error) string {
	if errors.IsRateLimitError(err) {
		return MessageRateLimited
	}
	return MessageDetailFailed
}
