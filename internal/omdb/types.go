package omdb

// NotAvailable is the sentinel OMDb uses for missing string fields such as Poster and imdbRating.
const NotAvailable = "N/A"

// MediaType is the kind of title OMDb reports.
type MediaType string

const (
	MediaMovie   MediaType = "movie"
	MediaSeries  MediaType = "series"
	MediaEpisode MediaType = "episode"
)

// Summary is the minimal record returned by a title search.
type Summary struct {
	ID     string    `json:"id" yaml:"id"`
	Title  string    `json:"title" yaml:"title"`
	Year   string    `json:"year" yaml:"year"`
	Type   MediaType `json:"type" yaml:"type"`
	Poster string    `json:"poster,omitempty" yaml:"poster,omitempty"`
}

// HasPoster reports whether Poster is a real image reference.
func (s Summary) HasPoster() bool {
	return s.Poster != "" && s.Poster != NotAvailable
}

// Detail is the full record returned by an ID lookup with the full plot.
type Detail struct {
	Summary  `yaml:",inline"`
	Rating   string   `json:"rating,omitempty" yaml:"rating,omitempty"`
	Runtime  string   `json:"runtime" yaml:"runtime"`
	Genre    string   `json:"genre" yaml:"genre"`
	Plot     string   `json:"plot" yaml:"plot"`
	Director string   `json:"director" yaml:"director"`
	Actors   string   `json:"actors" yaml:"actors"`
	Rated    string   `json:"rated,omitempty" yaml:"rated,omitempty"`
	Released string   `json:"released,omitempty" yaml:"released,omitempty"`
	Language string   `json:"language,omitempty" yaml:"language,omitempty"`
	Country  string   `json:"country,omitempty" yaml:"country,omitempty"`
	Awards   string   `json:"awards,omitempty" yaml:"awards,omitempty"`
	Ratings  []Rating `json:"ratings,omitempty" yaml:"ratings,omitempty"`
}

// HasRating reports whether OMDb supplied an IMDb rating.
func (d Detail) HasRating() bool {
	return d.Rating != "" && d.Rating != NotAvailable
}

// Rating represents a rating from a specific source
type Rating struct {
	Source string `json:"source" yaml:"source"`
	Value  string `json:"value" yaml:"value"`
}

// Wire shapes. Everything OMDb sends is a string, including "True"/"False".

type searchResponse struct {
	Response     string        `json:"Response" validate:"required,oneof=True False"`
	Error        string        `json:"Error"`
	Search       []wireSummary `json:"Search" validate:"required_if=Response True,dive"`
	TotalResults string        `json:"totalResults"`
}

type wireSummary struct {
	Title  string `json:"Title" validate:"required"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID" validate:"required"`
	Type   string `json:"Type" validate:"required,oneof=movie series episode"`
	Poster string `json:"Poster"`
}

func (w wireSummary) toSummary() Summary {
	return Summary{
		ID:     w.ImdbID,
		Title:  w.Title,
		Year:   w.Year,
		Type:   MediaType(w.Type),
		Poster: w.Poster,
	}
}

type detailResponse struct {
	Response   string       `json:"Response" validate:"required,oneof=True False"`
	Error      string       `json:"Error"`
	Title      string       `json:"Title" validate:"required_if=Response True"`
	Year       string       `json:"Year"`
	Rated      string       `json:"Rated"`
	Released   string       `json:"Released"`
	Runtime    string       `json:"Runtime"`
	Genre      string       `json:"Genre"`
	Director   string       `json:"Director"`
	Actors     string       `json:"Actors"`
	Plot       string       `json:"Plot"`
	Language   string       `json:"Language"`
	Country    string       `json:"Country"`
	Awards     string       `json:"Awards"`
	Poster     string       `json:"Poster"`
	Ratings    []wireRating `json:"Ratings" validate:"dive"`
	ImdbRating string       `json:"imdbRating"`
	ImdbID     string       `json:"imdbID" validate:"required_if=Response True"`
	Type       string       `json:"Type" validate:"omitempty,oneof=movie series episode"`
}

type wireRating struct {
	Source string `json:"Source" validate:"required"`
	Value  string `json:"Value"`
}

func (w detailResponse) toDetail() *Detail {
	ratings := make([]Rating, 0, len(w.Ratings))
	for _, r := range w.Ratings {
		ratings = append(ratings, Rating(r))
	}

	return &Detail{
		Summary: Summary{
			ID:     w.ImdbID,
			Title:  w.Title,
			Year:   w.Year,
			Type:   MediaType(w.Type),
			Poster: w.Poster,
		},
		Rating:   w.ImdbRating,
		Runtime:  w.Runtime,
		Genre:    w.Genre,
		Plot:     w.Plot,
		Director: w.Director,
		Actors:   w.Actors,
		Rated:    w.Rated,
		Released: w.Released,
		Language: w.Language,
		Country:  w.Country,
		Awards:   w.Awards,
		Ratings:  ratings,
	}
}
