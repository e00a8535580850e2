package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/tournamentfox/web/api"
	"github.com/tournamentfox/web/auth"
	"github.com/tournamentfox/web/games"
	"github.com/tournamentfox/web/internal/config"
	"github.com/tournamentfox/web/series"
	"github.com/tournamentfox/web/session"
	"github.com/tournamentfox/web/teams"
)

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	fileServer http.Handler
	config     config.Config

	cookies *session.Manager
	backend *api.Client
	authAPI *api.AuthClient

	auth   *auth.Service
	google *auth.GoogleFlow

	gamesClient  *games.Client
	seriesClient *series.Client
	teamsClient  *teams.Client
}

func New(config config.Config) *Server {
	backend := api.NewClient(config.GetAPIURL())
	cookies := session.NewManager(config, config.GetEnv() == "PROD")
	authAPI := api.NewAuthClient(backend, cookies)

	s := &Server{
		mux:          http.NewServeMux(),
		config:       config,
		cookies:      cookies,
		backend:      backend,
		authAPI:      authAPI,
		auth:         auth.NewService(backend, authAPI, cookies),
		google:       auth.NewGoogleFlow(config, backend, cookies),
		gamesClient:  games.NewClient(backend),
		seriesClient: series.NewClient(backend),
		teamsClient:  teams.NewClient(backend),
	}
	s.env = config.GetEnv()
	s.fileServer = FileServerHandler()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

func logError(method, path, error string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	errorString := Red + error + ResetColor
	log.Printf("[%-19s] %s %s\n", displayMethod, path, errorString)
}
