package omdb

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/marquee/internal/errors"
)

// SearchByTitle runs a movie title search. Results keep the service's order.
func (c *Client) SearchByTitle(ctx context.Context, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewValidationError("search query is empty")
	}

	params := url.Values{}
	params.Set("s", query)
	params.Set("type", string(MediaMovie))

	slog.Debug("Searching OMDb", "query", query)

	var response searchResponse
	if err := c.getJSON(ctx, params, &response); err != nil {
		return nil, err
	}

	if response.Response == "False" {
		return nil, c.serviceError(response.Error)
	}

	return lo.Map(response.Search, func(item wireSummary, _ int) Summary {
		return item.toSummary()
	}), nil
}

// SearchManyByTitle searches every query concurrently and waits for all of
// them. Failed queries are dropped; the rest are concatenated in query order
// and truncated to MaxTrending.
func (c *Client) SearchManyByTitle(ctx context.Context, queries []string) []Summary {
	perQuery := make([][]Summary, len(queries))

	var g errgroup.Group
	for i, query := range queries {
		if strings.TrimSpace(query) == "" {
			continue
		}
		g.Go(func() error {
			results, err := c.SearchByTitle(ctx, query)
			if err != nil {
				slog.Debug("Dropping failed batch query", "query", query, "error", err)
				return nil
			}
			perQuery[i] = results
			return nil
		})
	}
	_ = g.Wait()

	all := lo.Flatten(perQuery)
	if len(all) > MaxTrending {
		all = all[:MaxTrending]
	}
	return all
}
