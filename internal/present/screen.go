package present

import (
	"time"

	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/search"
)

// ErrorBannerDelay is how long an error banner stays up after its last update.
const ErrorBannerDelay = 5 * time.Second

// Surface names a grid on the screen.
type Surface int

const (
	SurfaceTrending Surface = iota
	SurfaceResults
	surfaceCount
)

func (s Surface) String() string {
	switch s {
	case SurfaceTrending:
		return "trending"
	case SurfaceResults:
		return "results"
	default:
		return "unknown"
	}
}

// FavoriteChecker reports favorite membership.
type FavoriteChecker interface {
	IsFavorite(id string) bool
}

// Screen is everything currently visible: the grids, the detail panel, the
// loader and the error banner.
type Screen struct {
	grids          [surfaceCount][]Card
	resultsVisible bool
	detail         *DetailView
	loading        int

	errMessage string
	errVisible bool
	errToken   uint64
}

// NewScreen returns an empty screen.
func NewScreen() *Screen {
	return &Screen{}
}

// Render replaces the entire content of surface with one card per summary.
func (s *Screen) Render(surface Surface, list []omdb.Summary) {
	s.grids[surface] = ToCards(list)
}

// Grid returns the cards on surface.
func (s *Screen) Grid(surface Surface) []Card {
	return s.grids[surface]
}

// ResultsVisible reports whether the search results section is shown.
func (s *Screen) ResultsVisible() bool {
	return s.resultsVisible
}

// RenderDetail fills the detail panel and its favorite toggle.
func (s *Screen) RenderDetail(d *omdb.Detail, favorites FavoriteChecker) {
	view := ToDetailView(d, favorites.IsFavorite(d.ID))
	s.detail = &view
}

// RefreshFavorite re-reads the favorite state of the shown title.
func (s *Screen) RefreshFavorite(favorites FavoriteChecker) {
	if s.detail == nil {
		return
	}
	s.detail.setFavorite(favorites.IsFavorite(s.detail.ID))
}

// Detail returns the open detail panel, or nil.
func (s *Screen) Detail() *DetailView {
	return s.detail
}

// CloseDetail hides the detail panel.
func (s *Screen) CloseDetail() {
	s.detail = nil
}

// StartLoading shows the loader. Calls nest; the loader hides when every
// StartLoading has a matching StopLoading.
func (s *Screen) StartLoading() {
	s.loading++
}

// StopLoading releases one StartLoading.
func (s *Screen) StopLoading() {
	if s.loading > 0 {
		s.loading--
	}
}

// Loading reports whether the loader is shown.
func (s *Screen) Loading() bool {
	return s.loading > 0
}

// ShowError replaces the banner message and returns a token for HideError.
// Each call invalidates earlier tokens, which restarts the auto-hide delay.
func (s *Screen) ShowError(message string) uint64 {
	s.errToken++
	s.errMessage = message
	s.errVisible = true
	return s.errToken
}

// HideError hides the banner if token is still the latest one.
func (s *Screen) HideError(token uint64) bool {
	if token != s.errToken || !s.errVisible {
		return false
	}
	s.errVisible = false
	return true
}

// ClearError hides the banner unconditionally.
func (s *Screen) ClearError() {
	s.errToken++
	s.errVisible = false
}

// Error returns the banner message and whether it is visible.
func (s *Screen) Error() (string, bool) {
	return s.errMessage, s.errVisible
}

// ApplySearch draws a terminal search state. It returns the banner token and
// true when an error banner was shown.
func (s *Screen) ApplySearch(st search.State) (uint64, bool) {
	switch st.Phase {
	case search.PhaseSuccess:
		s.Render(SurfaceResults, st.Results)
		s.resultsVisible = true
		return 0, false
	case search.PhaseEmpty, search.PhaseFailed:
		s.resultsVisible = false
		return s.ShowError(st.Message), true
	case search.PhaseInvalid:
		return s.ShowError(st.Message), true
	default:
		return 0, false
	}
}

// ApplyTrending draws a terminal trending state.
func (s *Screen) ApplyTrending(st search.State) (uint64, bool) {
	switch st.Phase {
	case search.PhaseSuccess:
		s.Render(SurfaceTrending, st.Results)
		return 0, false
	case search.PhaseFailed, search.PhaseEmpty:
		return s.ShowError(st.Message), true
	default:
		return 0, false
	}
}
