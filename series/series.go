// Package series is the client for the backend's match/series listing and
// its reference data.
package series

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
	listEndpoint    = "/api/series"
	formatsEndpoint = "/api/series/formats"
	statusEndpoint  = "/api/series/status"
)

// Status values a series can be in.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "LIVE"
	StatusFinished  Status = "FINISHED"
	StatusCancelled Status = "CANCELLED"
)

func ValidStatus(v string) bool {
	switch Status(v) {
	case StatusScheduled, StatusLive, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

type SortField string

const (
	SortByStartTime  SortField = "startDateTime"
	SortByTournament SortField = "tournamentName"
)

func validSortField(v string) bool {
	return v == string(SortByStartTime) || v == string(SortByTournament)
}

type Series struct {
	ID             string `json:"id"`
	Status         Status `json:"status"`
	FormatName     string `json:"formatName"`
	GameName       string `json:"gameName"`
	GameID         string `json:"gameId"`
	MaxRounds      int    `json:"maxRounds"`
	TournamentName string `json:"tournamentName"`
	Team1Name      string `json:"team1Name"`
	Team2Name      string `json:"team2Name"`
	Team1ID        string `json:"team1Id"`
	Team2ID        string `json:"team2Id"`
	Team1LogoURL   string `json:"team1LogoUrl"`
	Team2LogoURL   string `json:"team2LogoUrl"`
	Score1         int    `json:"score1"`
	Score2         int    `json:"score2"`
	WinnerID       string `json:"winnerId"`
	StartDateTime  string `json:"startDateTime"`
}

// ListParams is the filter/sort selection for the series listing. Zero
// values are omitted from the outgoing query.
type ListParams struct {
	Page int
	Size int

	From     string
	Duration string
	Start    string
	End      string

	Status []string
	Team   []string
	Game   []string
	Format []string

	Sort  SortField
	Order string // asc | desc
}

func (p ListParams) Query() url.Values {
	values := url.Values{}
	if p.Page != 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Size != 0 {
		values.Set("size", strconv.Itoa(p.Size))
	}
	if p.From != "" {
		values.Set("from", p.From)
	}
	if p.Duration != "" {
		values.Set("duration", p.Duration)
	}
	if p.Sort != "" {
		values.Set("sort", string(p.Sort))
	}
	if p.Order != "" {
		values.Set("order", p.Order)
	}
	if len(p.Status) > 0 {
		values.Set("status", strings.Join(p.Status, ","))
	}
	if len(p.Team) > 0 {
		values.Set("team", strings.Join(p.Team, ","))
	}
	if len(p.Game) > 0 {
		values.Set("game", strings.Join(p.Game, ","))
	}
	if len(p.Format) > 0 {
		values.Set("format", strings.Join(p.Format, ","))
	}
	if p.Start != "" {
		values.Set("start", p.Start)
	}
	if p.End != "" {
		values.Set("end", p.End)
	}
	return values
}

// ParseQuery reconstructs a selection from URL query parameters. Invalid
// status values are filtered out; a single "date" parameter pins both ends
// of the range. Legacy aliases are accepted.
func ParseQuery(values url.Values) ListParams {
	p := ListParams{}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page >= 0 {
		p.Page = page
	}
	if size, err := strconv.Atoi(values.Get("size")); err == nil && size > 0 {
		p.Size = size
	}

	p.Team = idList(first(values, "team", "teams"))
	p.Game = idList(first(values, "game", "games"))
	p.Format = idList(first(values, "format", "formats"))

	for _, status := range idList(first(values, "status", "statuses")) {
		if ValidStatus(status) {
			p.Status = append(p.Status, status)
		}
	}

	if date := values.Get("date"); date != "" {
		p.Start = date
		p.End = date
	}

	if sort := first(values, "sort", "sortBy"); validSortField(sort) {
		p.Sort = SortField(sort)
	}
	if order := first(values, "order", "direction", "sortDirection"); order == "asc" || order == "desc" {
		p.Order = order
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

// GameIDs extracts the distinct game references of a batch of series, used
// to resolve game records for rendering.
func GameIDs(items []Series) []string {
	var ids []string
	for _, s := range items {
		if s.GameID != "" {
			ids = append(ids, s.GameID)
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

// List fetches one page of the series listing.
func (c *Client) List(ctx context.Context, params ListParams) api.Result[pagination.Page[Series]] {
	return api.FetchData[pagination.Page[Series]](ctx, c.api, http.MethodGet, listEndpoint, params.Query(), nil)
}

// Formats lists the available series formats for the filter menu.
func (c *Client) Formats(ctx context.Context, req pagination.FilterRequest) api.Result[pagination.Page[pagination.FilterItem]] {
	return c.filterItems(ctx, formatsEndpoint, req)
}

// Statuses lists the selectable status values for the filter menu.
func (c *Client) Statuses(ctx context.Context, req pagination.FilterRequest) api.Result[pagination.Page[pagination.FilterItem]] {
	return c.filterItems(ctx, statusEndpoint, req)
}

func (c *Client) filterItems(ctx context.Context, endpoint string, req pagination.FilterRequest) api.Result[pagination.Page[pagination.FilterItem]] {
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
	return api.FetchData[pagination.Page[pagination.FilterItem]](ctx, c.api, http.MethodGet, endpoint, values, nil)
}
