package omdb

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/lepinkainen/marquee/internal/errors"
)

// FetchDetail retrieves the full record, including the full plot, for an IMDb ID.
func (c *Client) FetchDetail(ctx context.Context, imdbID string) (*Detail, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return nil, errors.NewValidationError("IMDb ID is empty")
	}

	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("plot", "full")

	slog.Debug("Fetching OMDb detail", "imdb_id", imdbID)

	var response detailResponse
	if err := c.getJSON(ctx, params, &response); err != nil {
		return nil, err
	}

	if response.Response == "False" {
		return nil, c.serviceError(response.Error)
	}

	return response.toDetail(), nil
}
