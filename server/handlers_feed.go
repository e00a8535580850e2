package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/tournamentfox/web/api"
	"github.com/tournamentfox/web/games"
	"github.com/tournamentfox/web/internal/utils"
	"github.com/tournamentfox/web/pagination"
	"github.com/tournamentfox/web/series"
	"github.com/tournamentfox/web/teams"
)

// apiResponse is the envelope this server's own JSON endpoints answer
// with, shaped like the backend's so the page scripts decode one format.
type apiResponse struct {
	Success bool            `json:"success"`
	Code    string          `json:"code,omitempty"`
	Errors  []api.ErrorData `json:"errors,omitempty"`
	Data    any             `json:"data,omitempty"`
}

// feedPayload is one page of a listing plus the game records the new items
// reference that the client reports not having yet.
type feedPayload[T any] struct {
	Items         []T                   `json:"items"`
	Page          int                   `json:"page"`
	Size          int                   `json:"size"`
	TotalElements int                   `json:"totalElements"`
	TotalPages    int                   `json:"totalPages"`
	HasMore       bool                  `json:"hasMore"`
	Games         map[string]games.Game `json:"games,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeEnvelope[T any](w http.ResponseWriter, res api.Result[T]) {
	writeJSON(w, http.StatusOK, apiResponse{
		Success: res.Ok,
		Code:    res.Code,
		Errors:  res.Errors,
		Data:    res.Data,
	})
}

func writeFeedPage[T any](w http.ResponseWriter, page pagination.Page[T], size int, resolved map[string]games.Game) {
	writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Data: feedPayload[T]{
			Items:         page.Items,
			Page:          page.Page,
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
			HasMore:       page.HasMore(size),
			Games:         resolved,
		},
	})
}

func writeFeedError(w http.ResponseWriter, code string, errors []api.ErrorData) {
	writeJSON(w, http.StatusOK, apiResponse{Success: false, Code: code, Errors: errors})
}

// GamesFeedHandler serves one page of the game listing for infinite scroll.
func (s *Server) GamesFeedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := games.ParseQuery(r.URL.Query())
		params.Size = clampSize(params.Size)

		res := s.gamesClient.Bulk(r.Context(), params)
		if !res.Ok {
			writeFeedError(w, res.Code, res.Errors)
			return
		}
		writeFeedPage(w, res.Data, params.Size, nil)
	}
}

// MatchesFeedHandler serves one page of the series listing. Game records
// the client does not hold yet (knownGames parameter) are batch-fetched and
// attached.
func (s *Server) MatchesFeedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := series.ParseQuery(r.URL.Query())
		params.Size = clampSize(params.Size)

		res := s.seriesClient.List(r.Context(), params)
		if !res.Ok {
			writeFeedError(w, res.Code, res.Errors)
			return
		}

		resolved, err := s.resolveUnknownGames(r.Context(), series.GameIDs(res.Data.Items), r.URL.Query().Get("knownGames"))
		if err != nil {
			writeFeedError(w, api.CodeFetchError, nil)
			return
		}
		writeFeedPage(w, res.Data, params.Size, resolved)
	}
}

// TeamsFeedHandler serves one page of the team listing with unknown game
// records attached.
func (s *Server) TeamsFeedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := teams.ParseQuery(r.URL.Query())
		params.Size = clampSize(params.Size)

		res := s.teamsClient.Bulk(r.Context(), params)
		if !res.Ok {
			writeFeedError(w, res.Code, res.Errors)
			return
		}

		resolved, err := s.resolveUnknownGames(r.Context(), teams.GameIDs(res.Data.Items), r.URL.Query().Get("knownGames"))
		if err != nil {
			writeFeedError(w, api.CodeFetchError, nil)
			return
		}
		writeFeedPage(w, res.Data, params.Size, resolved)
	}
}

// resolveUnknownGames batch-fetches the referenced games the client has not
// seen yet. IDs listed in knownGames are the client's cache; they are never
// refetched.
func (s *Server) resolveUnknownGames(ctx context.Context, referenced []string, knownGames string) (map[string]games.Game, error) {
	known := map[string]bool{}
	for _, id := range strings.Split(knownGames, ",") {
		if id = strings.TrimSpace(id); id != "" {
			known[id] = true
		}
	}

	var missing []string
	for _, id := range referenced {
		if id == "" || known[id] {
			continue
		}
		known[id] = true
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return nil, nil
	}

	res := s.gamesClient.Batch(ctx, missing)
	if !res.Ok {
		return nil, fmt.Errorf("backend batch failed: %s", res.Code)
	}
	return gamesByID(res.Data), nil
}

// FilterItemsHandler proxies one reference-data listing for the filter
// menus, passing the backend's envelope through unchanged.
func (s *Server) FilterItemsHandler(fetch func(context.Context, pagination.FilterRequest) api.Result[pagination.Page[pagination.FilterItem]]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := pagination.FilterRequest{Search: r.URL.Query().Get("search")}
		if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page >= 0 {
			req.Page = utils.Ptr(page)
		}
		if size, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && size > 0 {
			req.Size = utils.Ptr(size)
		}
		writeEnvelope(w, fetch(r.Context(), req))
	}
}
