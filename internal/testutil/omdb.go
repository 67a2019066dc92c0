package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
)

// Title is a catalog entry served by OMDbServer.
type Title struct {
	ID       string
	Title    string
	Year     string
	Type     string
	Poster   string
	Rating   string
	Runtime  string
	Genre    string
	Plot     string
	Director string
	Actors   string
}

// OMDbServer is an in-process stand-in for the OMDb API.
type OMDbServer struct {
	*httptest.Server

	APIKey string

	mu       sync.Mutex
	searches map[string][]Title
	details  map[string]Title
	failing  map[string]int
	requests []url.Values
}

// NewOMDbServer starts a fake OMDb API that is closed when the test completes.
func NewOMDbServer(t *testing.T) *OMDbServer {
	t.Helper()

	s := &OMDbServer{
		APIKey:   "test-omdb-key",
		searches: make(map[string][]Title),
		details:  make(map[string]Title),
		failing:  make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the URL to configure the client with.
func (s *OMDbServer) BaseURL() string {
	return s.URL + "/"
}

// AddSearch registers the results returned for a search query. Every title
// is also made available for detail lookups.
func (s *OMDbServer) AddSearch(query string, titles ...Title) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searches[query] = append(s.searches[query], titles...)
	for _, t := range titles {
		if _, ok := s.details[t.ID]; !ok {
			s.details[t.ID] = t
		}
	}
}

// AddDetail registers a title for detail lookups.
func (s *OMDbServer) AddDetail(t Title) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details[t.ID] = t
}

// FailQuery makes searches for query answer with the given HTTP status.
func (s *OMDbServer) FailQuery(query string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[query] = status
}

// Requests returns a copy of every query string received so far.
func (s *OMDbServer) Requests() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.requests...)
}

func (s *OMDbServer) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	s.requests = append(s.requests, q)
	s.mu.Unlock()

	if q.Get("apikey") != s.APIKey {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"Response": "False", "Error": "Invalid API key!"})
		return
	}

	switch {
	case q.Get("i") != "":
		s.serveDetail(w, q.Get("i"))
	case q.Get("s") != "":
		s.serveSearch(w, q.Get("s"))
	default:
		writeJSON(w, http.StatusOK, map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
	}
}

func (s *OMDbServer) serveSearch(w http.ResponseWriter, query string) {
	s.mu.Lock()
	status, failing := s.failing[query]
	titles, found := s.searches[query]
	s.mu.Unlock()

	if failing {
		writeJSON(w, status, map[string]string{"Response": "False", "Error": http.StatusText(status)})
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, map[string]string{"Response": "False", "Error": "Movie not found!"})
		return
	}

	items := make([]map[string]string, 0, len(titles))
	for _, t := range titles {
		items = append(items, summaryJSON(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"Search":       items,
		"totalResults": strconv.Itoa(len(items)),
		"Response":     "True",
	})
}

func (s *OMDbServer) serveDetail(w http.ResponseWriter, id string) {
	s.mu.Lock()
	t, ok := s.details[id]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusOK, map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
		return
	}

	body := summaryJSON(t)
	body["imdbRating"] = orNA(t.Rating)
	body["Runtime"] = orNA(t.Runtime)
	body["Genre"] = orNA(t.Genre)
	body["Plot"] = orNA(t.Plot)
	body["Director"] = orNA(t.Director)
	body["Actors"] = orNA(t.Actors)
	body["Response"] = "True"
	writeJSON(w, http.StatusOK, body)
}

func summaryJSON(t Title) map[string]string {
	typ := t.Type
	if typ == "" {
		typ = "movie"
	}
	return map[string]string{
		"Title":  t.Title,
		"Year":   t.Year,
		"imdbID": t.ID,
		"Type":   typ,
		"Poster": orNA(t.Poster),
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
