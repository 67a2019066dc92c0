package omdb

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/ratelimit"
)

const batmanSearch = `{"Search":[{"Title":"Batman Begins","Year":"2005","imdbID":"tt0372784","Type":"movie","Poster":"N/A"}],"totalResults":"1","Response":"True"}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key",
		WithBaseURL(server.URL+"/"),
		WithHTTPClient(server.Client()),
		WithRateLimiter(nil),
	)
	return client, server
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, &url.Error{Op: "Get", URL: "http://omdb.test", Err: io.ErrUnexpectedEOF}
}

type staticDoer struct {
	status int
	body   string
}

func (d staticDoer) Do(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: d.status,
		Body:       io.NopCloser(strings.NewReader(d.body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

func TestSearchByTitleSendsExpectedQuery(t *testing.T) {
	var got url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(batmanSearch))
	})

	results, err := client.SearchByTitle(context.Background(), "  Batman  ")
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "test-key", got.Get("apikey"))
	assert.Equal(t, "Batman", got.Get("s"))
	assert.Equal(t, "movie", got.Get("type"))

	assert.Equal(t, Summary{
		ID:     "tt0372784",
		Title:  "Batman Begins",
		Year:   "2005",
		Type:   MediaMovie,
		Poster: "N/A",
	}, results[0])
	assert.False(t, results[0].HasPoster())
}

func TestSearchByTitleEscapesQuery(t *testing.T) {
	var rawQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(batmanSearch))
	})

	_, err := client.SearchByTitle(context.Background(), "Tom & Jerry")
	require.NoError(t, err)
	assert.Contains(t, rawQuery, "s=Tom+%26+Jerry")
}

func TestSearchByTitleEmptyQueryNeverCallsService(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := client.SearchByTitle(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Zero(t, calls.Load())
}

func TestSearchByTitleNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	})

	_, err := client.SearchByTitle(context.Background(), "zzzzqqq")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, "Movie not found!", errors.ServiceMessage(err))
}

func TestSearchByTitleZeroResultsIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"True","Search":[],"totalResults":"0"}`))
	})

	results, err := client.SearchByTitle(context.Background(), "Batman")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchByTitleMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"missing envelope", `{"Search":[]}`},
		{"unknown response value", `{"Response":"Maybe"}`},
		{"true without search", `{"Response":"True"}`},
		{"summary without id", `{"Response":"True","Search":[{"Title":"Batman","Type":"movie"}]}`},
		{"unknown media type", `{"Response":"True","Search":[{"Title":"Batman","imdbID":"tt1","Type":"podcast"}]}`},
		{"wrong field type", `{"Response":"True","Search":{"Title":"Batman"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient("k", WithHTTPClient(staticDoer{status: http.StatusOK, body: tt.body}), WithRateLimiter(nil))

			_, err := client.SearchByTitle(context.Background(), "Batman")
			require.Error(t, err)
			assert.True(t, errors.IsMalformed(err), "got %v", err)
		})
	}
}

func TestSearchByTitleTransportFailure(t *testing.T) {
	client := NewClient("k", WithHTTPClient(failingDoer{}), WithRateLimiter(nil))

	_, err := client.SearchByTitle(context.Background(), "Batman")
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
}

func TestSearchByTitleStatusError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
	})

	_, err := client.SearchByTitle(context.Background(), "Batman")
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
	assert.Contains(t, err.Error(), "unexpected status 401")
	assert.Contains(t, err.Error(), "Invalid API key!")
}

func TestRequestLimitStopsFurtherRequests(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Request limit reached!"}`))
	})

	_, err := client.SearchByTitle(context.Background(), "Batman")
	require.Error(t, err)
	assert.True(t, errors.IsRateLimitError(err))
	assert.False(t, client.RequestsAllowed())

	_, err = client.FetchDetail(context.Background(), "tt0372784")
	require.Error(t, err)
	assert.True(t, errors.IsRateLimitError(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchDetail(t *testing.T) {
	var got url.Values
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{
			"Title":"Batman Begins","Year":"2005","Rated":"PG-13","Released":"15 Jun 2005",
			"Runtime":"140 min","Genre":"Action, Crime, Drama","Director":"Christopher Nolan",
			"Actors":"Christian Bale, Michael Caine, Ken Watanabe","Plot":"After witnessing his parents' death...",
			"Language":"English","Country":"United States, United Kingdom","Awards":"Nominated for 1 Oscar.",
			"Poster":"https://m.media-amazon.com/images/batman.jpg",
			"Ratings":[{"Source":"Internet Movie Database","Value":"8.2/10"}],
			"imdbRating":"8.2","imdbID":"tt0372784","Type":"movie","Response":"True"}`))
	})

	detail, err := client.FetchDetail(context.Background(), "tt0372784")
	require.NoError(t, err)

	assert.Equal(t, "tt0372784", got.Get("i"))
	assert.Equal(t, "full", got.Get("plot"))
	assert.Equal(t, "test-key", got.Get("apikey"))

	assert.Equal(t, "tt0372784", detail.ID)
	assert.Equal(t, "Batman Begins", detail.Title)
	assert.Equal(t, MediaMovie, detail.Type)
	assert.Equal(t, "8.2", detail.Rating)
	assert.True(t, detail.HasRating())
	assert.True(t, detail.HasPoster())
	assert.Equal(t, "140 min", detail.Runtime)
	assert.Equal(t, "Christopher Nolan", detail.Director)
	assert.Equal(t, "Christian Bale, Michael Caine, Ken Watanabe", detail.Actors)
	assert.Equal(t, []Rating{{Source: "Internet Movie Database", Value: "8.2/10"}}, detail.Ratings)
}

func TestFetchDetailErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		client := NewClient("k", WithHTTPClient(staticDoer{status: http.StatusOK, body: `{"Response":"False","Error":"Incorrect IMDb ID."}`}), WithRateLimiter(nil))
		_, err := client.FetchDetail(context.Background(), "tt0000000")
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
		assert.Equal(t, "Incorrect IMDb ID.", errors.ServiceMessage(err))
	})

	t.Run("missing id", func(t *testing.T) {
		client := NewClient("k", WithHTTPClient(staticDoer{status: http.StatusOK, body: `{"Response":"True","Title":"Batman"}`}), WithRateLimiter(nil))
		_, err := client.FetchDetail(context.Background(), "tt0372784")
		require.Error(t, err)
		assert.True(t, errors.IsMalformed(err))
	})

	t.Run("empty id", func(t *testing.T) {
		client := NewClient("k", WithHTTPClient(failingDoer{}), WithRateLimiter(nil))
		_, err := client.FetchDetail(context.Background(), " ")
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("transport", func(t *testing.T) {
		client := NewClient("k", WithHTTPClient(failingDoer{}), WithRateLimiter(nil))
		_, err := client.FetchDetail(context.Background(), "tt0372784")
		require.Error(t, err)
		assert.True(t, errors.IsTransport(err))
	})
}

func TestCancelledRateLimiterWaitIsTransportError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(batmanSearch))
	}))
	t.Cleanup(server.Close)

	client := NewClient("k",
		WithBaseURL(server.URL+"/"),
		WithHTTPClient(server.Client()),
		WithRateLimiter(ratelimit.New("OMDb", 1)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchByTitle(ctx, "Batman")
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
	assert.Contains(t, err.Error(), "rate limit wait for OMDb")
	assert.Zero(t, calls.Load())
}

func TestEndpointKeepsBasePathAndOverridesKey(t *testing.T) {
	client := NewClient("secret", WithBaseURL("http://omdb.test/api/?apikey=stale&r=json"))

	params := url.Values{}
	params.Set("s", "Heat")
	endpoint, err := client.endpoint(params)
	require.NoError(t, err)

	u, err := url.Parse(endpoint)
	require.NoError(t, err)
	assert.Equal(t, "/api/", u.Path)
	assert.Equal(t, "secret", u.Query().Get("apikey"))
	assert.Equal(t, "json", u.Query().Get("r"))
	assert.Equal(t, "Heat", u.Query().Get("s"))
}
