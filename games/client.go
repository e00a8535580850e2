package games

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tournamentfox/web/api"
	"github.com/tournamentfox/web/pagination"
)

const (
	allEndpoint          = "/api/game/all"
	bulkEndpoint         = "/api/game/bulk"
	genreEndpoint        = "/api/game/genre"
	platformEndpoint     = "/api/game/platform"
	ageEndpoint          = "/api/game/age"
	developerEndpoint    = "/api/game/developer"
	publishYearEndpoint  = "/api/game/publishyear"
	batchEndpoint        = "/api/game/batch"
)

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Bulk lists games for the given filter/sort selection.
func (c *Client) Bulk(ctx context.Context, params BulkParams) api.Result[pagination.Page[Game]] {
	return api.FetchData[pagination.Page[Game]](ctx, c.api, http.MethodGet, bulkEndpoint, params.Query(), nil)
}

// All lists every game, paginated, with an optional name search.
func (c *Client) All(ctx context.Context, req pagination.FilterRequest) api.Result[pagination.Page[Game]] {
	return api.FetchData[pagination.Page[Game]](ctx, c.api, http.MethodGet, allEndpoint, filterQuery(req), nil)
}

// Batch resolves a set of game IDs into full records in one call.
func (c *Client) Batch(ctx context.Context, gameIDs []string) api.Result[[]Game] {
	return api.FetchData[[]Game](ctx, c.api, http.MethodPost, batchEndpoint, nil, map[string][]string{
		"gameIds": gameIDs,
	})
}

// Reference data for the filter menus.

func (c *Client) Genres(ctx context.Context, req pagination.FilterRequest) api.Result[pagination.Page[pagination.FilterItem]] {
	return c.filterItems(ctx, genreEndpoint, req)
}

func (c *Client) Platforms(ctx context.Context, req pagination.FilterRequest) api.Result[pagination.Page[pagination.FilterItem]] {
	return c.filterItems(ctx, platformEndpoint, req)
}

func (c *Client) AgeRatings(ctx context.Context, req pagination.FilterRequest) api.Result[pagination.Page[pagination.FilterItem]] {
	return c.filterItems(ctx, ageEndpoint, req)
}

func (c *Client) Developers(ctx context.Context, req pagination.FilterRequest) api.Result[pagination.Page[pagination.FilterItem]] {
	return c.filterItems(ctx, developerEndpoint, req)
}

func (c *Client) PublishYears(ctx context.Context, req pagination.FilterRequest) api.Result[pagination.Page[pagination.FilterItem]] {
	return c.filterItems(ctx, publishYearEndpoint, req)
}

func (c *Client) filterItems(ctx context.Context, endpoint string, req pagination.FilterRequest) api.Result[pagination.Page[pagination.FilterItem]] {
	return api.FetchData[pagination.Page[pagination.FilterItem]](ctx, c.api, http.MethodGet, endpoint, filterQuery(req), nil)
}

// filterQuery builds the page/size/search parameters of reference-data
// lookups. Unlike listing pages, an explicit page 0 is sent here.
func filterQuery(req pagination.FilterRequest) url.Values {
	values := url.Values{}
	if req.Page != nil {
		values.Set("page", strconv.Itoa(*req.Page))
	}
	if req.Size != nil {
		values.Set("size", strconv.Itoa(*req.Size))
	}
	if req.Search != "" {
		values.Set("search", req.Search)
	}
	return values
}
