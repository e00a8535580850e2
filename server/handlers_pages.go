package server

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/text/language"

	"github.com/tournamentfox/web/api"
	"github.com/tournamentfox/web/auth"
	"github.com/tournamentfox/web/games"
	"github.com/tournamentfox/web/internal/i18n"
	"github.com/tournamentfox/web/pagination"
	"github.com/tournamentfox/web/series"
	"github.com/tournamentfox/web/teams"
)

const (
	// defaultPageSize is the page size used when the URL does not pin one.
	defaultPageSize = 10
	// maxPageSize caps client-supplied sizes before they hit the backend.
	maxPageSize = 50

	// ScopeModerator is the access-token scope that unlocks moderation
	// affordances.
	ScopeModerator = "moderator"
)

const (
	themeCookie   = "theme"
	themeDark     = "dark"
	themeLight    = "light"
	themeMaxAge   = 365 * 24 * 60 * 60
	langCookieTTL = 365 * 24 * 60 * 60
)

// basePage is the template model shared by every rendered page.
type basePage struct {
	AppName string
	Theme   string
	Path    string
	Lang    language.Tag
	User    *auth.UserDTO
	Error   string
}

// T translates a catalog key for the page's resolved language.
func (p basePage) T(key string) string {
	return i18n.T(p.Lang, key)
}

// LangCode returns the language as an HTML lang attribute value.
func (p basePage) LangCode() string {
	return p.Lang.String()
}

func (s *Server) pageBase(w http.ResponseWriter, r *http.Request, path string) basePage {
	lang, persist := i18n.Resolve(r)
	if persist {
		http.SetCookie(w, &http.Cookie{
			Name:     i18n.LangCookie,
			Value:    lang.String(),
			Path:     "/",
			MaxAge:   langCookieTTL,
			SameSite: http.SameSiteLaxMode,
		})
	}

	user, _ := s.auth.CurrentUser(w, r)

	return basePage{
		AppName: s.config.GetAppName(),
		Theme:   s.theme(r),
		Path:    path,
		Lang:    lang,
		User:    user,
	}
}

func (s *Server) theme(r *http.Request) string {
	if c, err := r.Cookie(themeCookie); err == nil && c.Value == themeLight {
		return themeLight
	}
	return themeDark
}

// ThemeHandler stores the visitor's theme choice and bounces back to the
// page they came from.
func (s *Server) ThemeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := r.URL.Query().Get("mode")
		if mode != themeLight {
			mode = themeDark
		}
		http.SetCookie(w, &http.Cookie{
			Name:     themeCookie,
			Value:    mode,
			Path:     "/",
			MaxAge:   themeMaxAge,
			SameSite: http.SameSiteLaxMode,
		})
		returnTo := r.URL.Query().Get("return")
		if returnTo == "" || returnTo[0] != '/' {
			returnTo = RouteIndex
		}
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

// IndexHandler renders the home page.
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != RouteIndex {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}

		data := struct{ basePage }{s.pageBase(w, r, RouteIndex)}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	}
}

type dashboardPageData struct {
	basePage
	Moderator bool
}

// DashboardHandler renders the signed-in landing page. Anonymous visitors
// are redirected to the login page; accounts whose access token carries the
// moderator scope see the moderation note.
func (s *Server) DashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("dashboard.html")
	if err != nil {
		panic("Failed to parse dashboard template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.auth.RequireUser(w, r)
		if err != nil {
			return // redirect already issued
		}

		base := s.pageBase(w, r, RouteDashboard)
		base.User = user
		data := dashboardPageData{
			basePage:  base,
			Moderator: s.auth.HasPermission(r, ScopeModerator),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	}
}

// pageResult unwraps a listing response into the feed's fetch contract.
func pageResult[T any](res api.Result[pagination.Page[T]]) (pagination.Page[T], error) {
	if !res.Ok {
		return pagination.Page[T]{}, fmt.Errorf("backend listing failed: %s", res.Code)
	}
	return res.Data, nil
}

func clampSize(size int) int {
	if size <= 0 {
		return defaultPageSize
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

type gamesPageData struct {
	basePage
	Items   []games.Game
	Params  games.BulkParams
	Query   string
	Size    int
	Page    int
	HasMore bool
}

// GamesPageHandler renders the game listing, restoring the scroll depth a
// bookmarked URL asks for.
func (s *Server) GamesPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("games.html")
	if err != nil {
		panic("Failed to parse games template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		params := games.ParseQuery(r.URL.Query())
		size := clampSize(params.Size)

		fetchParams := params
		fetchParams.Size = size
		feed := pagination.NewFeed(size, func(ctx context.Context, page int) (pagination.Page[games.Game], error) {
			fetchParams.Page = page
			return pageResult(s.gamesClient.Bulk(ctx, fetchParams))
		})

		base := s.pageBase(w, r, RouteGames)
		if err := feed.LoadThrough(r.Context(), params.Page); err != nil {
			base.Error = base.T(api.CodeFetchError)
		}

		data := gamesPageData{
			basePage: base,
			Items:    feed.Items(),
			Params:   params,
			Query:    params.Query().Encode(),
			Size:     size,
			Page:     feed.Page(),
			HasMore:  feed.HasMore(),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	}
}

type matchesPageData struct {
	basePage
	Items   []series.Series
	Games   map[string]games.Game
	Params  series.ListParams
	Query   string
	Size    int
	Page    int
	HasMore bool
}

// MatchesPageHandler renders the series listing with the referenced game
// records resolved for artwork and names.
func (s *Server) MatchesPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("matches.html")
	if err != nil {
		panic("Failed to parse matches template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		params := series.ParseQuery(r.URL.Query())
		size := clampSize(params.Size)

		fetchParams := params
		fetchParams.Size = size
		feed := pagination.NewFeed(size, func(ctx context.Context, page int) (pagination.Page[series.Series], error) {
			fetchParams.Page = page
			return pageResult(s.seriesClient.List(ctx, fetchParams))
		})

		base := s.pageBase(w, r, RouteMatches)
		if err := feed.LoadThrough(r.Context(), params.Page); err != nil {
			base.Error = base.T(api.CodeFetchError)
		}

		items := feed.Items()
		resolver := games.NewResolver(games.NewCache(), s.gamesClient)
		if err := resolver.Resolve(r.Context(), series.GameIDs(items)); err != nil && base.Error == "" {
			base.Error = base.T(api.CodeFetchError)
		}

		data := matchesPageData{
			basePage: base,
			Items:    items,
			Games:    gamesByID(resolver.Cache().All()),
			Params:   params,
			Query:    params.Query().Encode(),
			Size:     size,
			Page:     feed.Page(),
			HasMore:  feed.HasMore(),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	}
}

type teamsPageData struct {
	basePage
	Items   []teams.Team
	Games   map[string]games.Game
	Params  teams.BulkParams
	Query   string
	Size    int
	Page    int
	HasMore bool
}

// TeamsPageHandler renders the team listing with the referenced game
// records resolved.
func (s *Server) TeamsPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("teams.html")
	if err != nil {
		panic("Failed to parse teams template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		params := teams.ParseQuery(r.URL.Query())
		size := clampSize(params.Size)

		fetchParams := params
		fetchParams.Size = size
		feed := pagination.NewFeed(size, func(ctx context.Context, page int) (pagination.Page[teams.Team], error) {
			fetchParams.Page = page
			return pageResult(s.teamsClient.Bulk(ctx, fetchParams))
		})

		base := s.pageBase(w, r, RouteTeams)
		if err := feed.LoadThrough(r.Context(), params.Page); err != nil {
			base.Error = base.T(api.CodeFetchError)
		}

		items := feed.Items()
		resolver := games.NewResolver(games.NewCache(), s.gamesClient)
		if err := resolver.Resolve(r.Context(), teams.GameIDs(items)); err != nil && base.Error == "" {
			base.Error = base.T(api.CodeFetchError)
		}

		data := teamsPageData{
			basePage: base,
			Items:    items,
			Games:    gamesByID(resolver.Cache().All()),
			Params:   params,
			Query:    params.Query().Encode(),
			Size:     size,
			Page:     feed.Page(),
			HasMore:  feed.HasMore(),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	}
}

func gamesByID(list []games.Game) map[string]games.Game {
	byID := make(map[string]games.Game, len(list))
	for _, g := range list {
		byID[g.GameID] = g
	}
	return byID
}
