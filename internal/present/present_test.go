package present

import (
	"bytes"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/search"
)

type favSet map[string]bool

func (f favSet) IsFavorite(id string) bool { return f[id] }

var batmanBegins = omdb.Summary{ID: "tt0372784", Title: "Batman Begins", Year: "2005", Type: omdb.MediaMovie, Poster: "N/A"}

func TestToCardUsesPlaceholderForMissingPoster(t *testing.T) {
	card := ToCard(batmanBegins)

	assert.Equal(t, "tt0372784", card.ID)
	assert.Equal(t, "Batman Begins", card.Title)
	assert.Equal(t, PlaceholderCard, card.Poster)
	assert.True(t, card.Placeholder)

	empty := ToCard(omdb.Summary{ID: "tt1", Title: "No Poster"})
	assert.Equal(t, PlaceholderCard, empty.Poster)
}

func TestToCardKeepsRealPoster(t *testing.T) {
	s := batmanBegins
	s.Poster = "https://m.media-amazon.com/images/batman.jpg"

	card := ToCard(s)
	assert.Equal(t, s.Poster, card.Poster)
	assert.False(t, card.Placeholder)
}

func TestRenderReplacesSurface(t *testing.T) {
	screen := NewScreen()
	screen.Render(SurfaceResults, []omdb.Summary{batmanBegins, {ID: "tt2", Title: "Other"}})
	assert.Equal(t, 2, len(screen.Grid(SurfaceResults)))

	screen.Render(SurfaceResults, []omdb.Summary{batmanBegins})
	grid := screen.Grid(SurfaceResults)
	assert.Equal(t, 1, len(grid))
	assert.Equal(t, "Batman Begins", grid[0].Title)
	assert.Equal(t, 0, len(screen.Grid(SurfaceTrending)))
}

func TestRenderDetailFavoriteLabel(t *testing.T) {
	detail := &omdb.Detail{Summary: batmanBegins, Rating: "8.2", Actors: "Christian Bale"}
	favs := favSet{}
	screen := NewScreen()

	screen.RenderDetail(detail, favs)
	view := screen.Detail()
	assert.NotZero(t, view)
	assert.Equal(t, LabelAddFavorite, view.FavoriteLabel)
	assert.False(t, view.FavoriteActive)
	assert.Equal(t, "⭐ 8.2", view.Rating)
	assert.Equal(t, PlaceholderDetail, view.Poster)
	assert.Equal(t, "Christian Bale", view.Cast)

	favs["tt0372784"] = true
	screen.RefreshFavorite(favs)
	assert.Equal(t, LabelRemoveFavorite, screen.Detail().FavoriteLabel)
	assert.True(t, screen.Detail().FavoriteActive)

	screen.CloseDetail()
	assert.Zero(t, screen.Detail())
	screen.RefreshFavorite(favs)
}

func TestMissingRatingShowsNA(t *testing.T) {
	view := ToDetailView(&omdb.Detail{Summary: batmanBegins, Rating: "N/A"}, false)
	assert.Equal(t, "⭐ N/A", view.Rating)
}

func TestErrorBannerRestartsOnNewError(t *testing.T) {
	screen := NewScreen()

	first := screen.ShowError("Movie not found!")
	second := screen.ShowError("Failed to fetch movies. Please try again.")

	// The first timer fires but a newer error restarted the delay.
	assert.False(t, screen.HideError(first))
	msg, visible := screen.Error()
	assert.True(t, visible)
	assert.Equal(t, "Failed to fetch movies. Please try again.", msg)

	assert.True(t, screen.HideError(second))
	_, visible = screen.Error()
	assert.False(t, visible)

	assert.False(t, screen.HideError(second))
}

func TestClearErrorInvalidatesPendingHide(t *testing.T) {
	screen := NewScreen()
	token := screen.ShowError("boom")
	screen.ClearError()

	_, visible := screen.Error()
	assert.False(t, visible)
	assert.False(t, screen.HideError(token))
}

func TestLoaderNests(t *testing.T) {
	screen := NewScreen()
	screen.StartLoading()
	screen.StartLoading()
	screen.StopLoading()
	assert.True(t, screen.Loading())
	screen.StopLoading()
	assert.False(t, screen.Loading())
	screen.StopLoading()
	assert.False(t, screen.Loading())
}

func TestApplySearch(t *testing.T) {
	screen := NewScreen()

	_, shown := screen.ApplySearch(search.State{Phase: search.PhaseSuccess, Results: []omdb.Summary{batmanBegins}})
	assert.False(t, shown)
	assert.True(t, screen.ResultsVisible())
	assert.Equal(t, PlaceholderCard, screen.Grid(SurfaceResults)[0].Poster)

	_, shown = screen.ApplySearch(search.State{Phase: search.PhaseInvalid, Message: search.MessageEmptyQuery})
	assert.True(t, shown)
	assert.True(t, screen.ResultsVisible())
	msg, _ := screen.Error()
	assert.Equal(t, "Please enter a movie name.", msg)

	_, shown = screen.ApplySearch(search.State{Phase: search.PhaseEmpty, Message: "Movie not found!"})
	assert.True(t, shown)
	assert.False(t, screen.ResultsVisible())
	msg, _ = screen.Error()
	assert.Equal(t, "Movie not found!", msg)

	_, shown = screen.ApplySearch(search.State{Phase: search.PhaseLoading})
	assert.False(t, shown)
}

func TestApplyTrending(t *testing.T) {
	screen := NewScreen()

	_, shown := screen.ApplyTrending(search.State{Phase: search.PhaseSuccess, Results: []omdb.Summary{batmanBegins}})
	assert.False(t, shown)
	assert.Equal(t, 1, len(screen.Grid(SurfaceTrending)))

	_, shown = screen.ApplyTrending(search.State{Phase: search.PhaseFailed, Message: search.MessageTrendingFailed})
	assert.True(t, shown)
	msg, _ := screen.Error()
	assert.Equal(t, search.MessageTrendingFailed, msg)
}

func TestWriteCards(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteCards(&buf, ToCards([]omdb.Summary{batmanBegins})))

	out := buf.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Batman Begins")
	assert.Contains(t, out, PlaceholderCard)
}

func TestWriteDetail(t *testing.T) {
	view := ToDetailView(&omdb.Detail{
		Summary:  batmanBegins,
		Rating:   "8.2",
		Runtime:  "140 min",
		Plot:     "After witnessing his parents' death, Bruce learns the art of fighting.",
		Director: "Christopher Nolan",
	}, true)

	var buf bytes.Buffer
	assert.NoError(t, WriteDetail(&buf, view))

	out := buf.String()
	assert.Contains(t, out, "Batman Begins (2005)")
	assert.Contains(t, out, "⭐ 8.2")
	assert.Contains(t, out, "Christopher Nolan")
	assert.Contains(t, out, "[*] Remove from Favorites")
	assert.NotContains(t, out, "Awards:")
}
