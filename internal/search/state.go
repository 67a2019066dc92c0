package search

import "github.com/lepinkainen/marquee/internal/omdb"

// Phase is the position of a search in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseEmpty
	PhaseFailed
	// PhaseInvalid means the query was rejected before any network call.
	PhaseInvalid
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseEmpty:
		return "empty"
	case PhaseFailed:
		return "failed"
	case PhaseInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// State is the visible outcome of one search invocation.
type State struct {
	Query      string
	Phase      Phase
	Results    []omdb.Summary
	Message    string
	Generation uint64
}

// User-facing messages.
const (
	MessageEmptyQuery     = "Please enter a movie name."
	MessageNoResults      = "No movies found"
	MessageSearchFailed   = "Failed to fetch movies. Please try again."
	MessageTrendingFailed = "Failed to load trending movies"
	MessageDetailFailed   = "Failed to load movie details"
	MessageRateLimited    = "OMDb request limit reached. Try again later."
	MessageFavoriteFailed = "Failed to save favorites"
)

// DefaultTrendingTitles seeds the startup grid.
var DefaultTrendingTitles = []string{
	"Inception",
	"Interstellar",
	"The Dark Knight",
	"Avengers",
	"Spider-Man",
	"Iron Man",
	"Batman",
	"Superman",
}
