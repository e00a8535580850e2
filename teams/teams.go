// Package teams is the client for the backend's team listing and its
// reference data.
package teams

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tournamentfox/web/api"
	"github.com/tournamentfox/web/pagination"
)

const (
	bulkEndpoint         = "/api/teams/bulk"
	foundingYearEndpoint = "/api/teams/founding/filter"
)

type Team struct {
	UID          string `json:"uid"`
	Name         string `json:"name"`
	LogoURL      string `json:"logoURL"`
	AltLogoURL   string `json:"altLogoURL"`
	FoundingDate string `json:"foundingDate"`
	Slug         string `json:"slug"`
	RegionID     string `json:"regionId"`
	GameID       string `json:"gameId"`
}

type SortField string

const (
	SortByName         SortField = "name"
	SortByFoundingDate SortField = "foundingDate"
)

func validSortField(v string) bool {
	return v == string(SortByName) || v == string(SortByFoundingDate)
}

// BulkParams is the filter/sort selection for the team listing. Zero values
// are omitted from the outgoing query.
type BulkParams struct {
	Page int
	Size int

	GameIDs      []string
	FoundingYear int
	RegionID     string
	OrgaID       string

	SortBy    SortField
	SortOrder string // asc | desc
}

func (p BulkParams) Query() url.Values {
	values := url.Values{}
	if p.Page != 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size != 0 {
		values.Set("size", strconv.Itoa(p.Size))
	}
	if p.FoundingYear != 0 {
		values.Set("foundingYear", strconv.Itoa(p.FoundingYear))
	}
	if len(p.GameIDs) > 0 {
		values.Set("gameId", strings.Join(p.GameIDs, ","))
	}
	if p.RegionID != "" {
		values.Set("regionId", p.RegionID)
	}
	if p.OrgaID != "" {
		values.Set("orgaId", p.OrgaID)
	}
	if p.SortBy != "" {
		values.Set("sortBy", string(p.SortBy))
	}
	if p.SortOrder != "" {
		values.Set("sortDirection", p.SortOrder)
	}
	return values
}

// ParseQuery reconstructs a selection from URL query parameters, accepting
// legacy aliases for shared links.
func ParseQuery(values url.Values) BulkParams {
	p := BulkParams{}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 0 {
		p.Page = page
	}
	if size, err := strconv.Atoi(values.Get("size")); err == nil && size > 0 {
		p.Size = size
	}

	p.GameIDs = idList(first(values, "gameId", "gameID", "games"))

	if year, err := strconv.Atoi(first(values, "foundingYear", "founding")); err == nil && year > 0 {
		p.FoundingYear = year
	}
	p.RegionID = first(values, "regionId", "regionID", "region")
	p.OrgaID = first(values, "orgaId", "orgaID", "orga")

	if sortBy := first(values, "sortBy", "sort"); validSortField(sortBy) {
		p.SortBy = SortField(sortBy)
	}
	if order := first(values, "sortDirection", "direction"); order == "asc" || order == "desc" {
		p.SortOrder = order
	}

	return p
}

func first(values url.Values, keys ...string) string {
	for _, key := range keys {
		if v := values.Get(key); v != "" {
			return v
		}
	}
	return ""
}

func idList(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// GameIDs extracts the distinct game references of a batch of teams.
func GameIDs(items []Team) []string {
	var ids []string
	for _, t := range items {
		if t.GameID != "" {
			ids = append(ids, t.GameID)
		}
	}
	return ids
}

type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Bulk fetches one page of the team listing.
func (c *Client) Bulk(ctx context.Context, params BulkParams) api.Result[pagination.Page[Team]] {
	return api.FetchData[pagination.Page[Team]](ctx, c.api, http.MethodGet, bulkEndpoint, params.Query(), nil)
}

// FoundingYears lists the selectable founding years for the filter menu.
func (c *Client) FoundingYears(ctx context.Context, req pagination.FilterRequest) api.Result[pagination.Page[pagination.FilterItem]] {
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
	return api.FetchData[pagination.Page[pagination.FilterItem]](ctx, c.api, http.MethodGet, foundingYearEndpoint, values, nil)
}
