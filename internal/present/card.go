// Package present maps catalog records to displayable fields and keeps the
// visible screen state independent of how it is drawn.
package present

import (
	"strings"

	"github.com/lepinkainen/marquee/internal/omdb"
)

// Placeholder poster references, sized for grid cards and the detail panel.
const (
	PlaceholderCard   = "https://via.placeholder.com/200x300?text=No+Image"
	PlaceholderDetail = "https://via.placeholder.com/300x450?text=No+Image"
)

// Favorite toggle labels.
const (
	LabelAddFavorite    = "Add to Favorites"
	LabelRemoveFavorite = "Remove from Favorites"
)

// Card is one grid entry. ID is the key its selection action uses.
type Card struct {
	ID          string
	Title       string
	Year        string
	Type        string
	Poster      string
	Placeholder bool
}

// ToCard maps a summary to a card, substituting the placeholder when OMDb has no poster.
func ToCard(s omdb.Summary) Card {
	card := Card{
		ID:     s.ID,
		Title:  s.Title,
		Year:   s.Year,
		Type:   string(s.Type),
		Poster: s.Poster,
	}
	if !s.HasPoster() {
		card.Poster = PlaceholderCard
		card.Placeholder = true
	}
	return card
}

// ToCards maps every summary in order.
func ToCards(list []omdb.Summary) []Card {
	cards := make([]Card, len(list))
	for i, s := range list {
		cards[i] = ToCard(s)
	}
	return cards
}

// DetailView is the populated detail panel.
type DetailView struct {
	ID             string
	Title          string
	Year           string
	Type           string
	Poster         string
	Rating         string
	Runtime        string
	Genre          string
	Plot           string
	Director       string
	Cast           string
	Rated          string
	Released       string
	Awards         string
	FavoriteLabel  string
	FavoriteActive bool
}

// ToDetailView maps a detail record and its favorite state to panel fields.
func ToDetailView(d *omdb.Detail, favorite bool) DetailView {
	view := DetailView{
		ID:       d.ID,
		Title:    d.Title,
		Year:     d.Year,
		Type:     string(d.Type),
		Poster:   d.Poster,
		Runtime:  d.Runtime,
		Genre:    d.Genre,
		Plot:     d.Plot,
		Director: d.Director,
		Cast:     d.Actors,
		Rated:    d.Rated,
		Released: d.Released,
		Awards:   d.Awards,
	}
	if !d.HasPoster() {
		view.Poster = PlaceholderDetail
	}

	rating := omdb.NotAvailable
	if d.HasRating() {
		rating = strings.TrimSpace(d.Rating)
	}
	view.Rating = "⭐ " + rating

	view.setFavorite(favorite)
	return view
}

func (v *DetailView) setFavorite(favorite bool) {
	v.FavoriteActive = favorite
	if favorite {
		v.FavoriteLabel = LabelRemoveFavorite
	} else {
		v.FavoriteLabel = LabelAddFavorite
	}
}
