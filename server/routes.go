package server

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// Pages
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteDashboard, ChainMiddleware(s.DashboardHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteGames, ChainMiddleware(s.GamesPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteMatches, ChainMiddleware(s.MatchesPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteTeams, ChainMiddleware(s.TeamsPageHandler(), s.HTMLMiddleWare()...))

	// LOGIN & REGISTRATION
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteRegister, ChainMiddleware(s.RegisterPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("GET "+RouteAuthLogout, s.LogoutHandler())

	// EMAIL VERIFICATION
	s.RegisterRouteHandler("GET "+RouteVerify, ChainMiddleware(s.VerifyPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthVerify, ChainMiddleware(s.VerifySubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthVerifyResend, ChainMiddleware(s.ResendVerificationHandler(), s.HTMLMiddleWare()...))

	// PASSWORD RESET
	s.RegisterRouteHandler("GET "+RouteForgotPassword, ChainMiddleware(s.ForgotPasswordPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthForgotPassword, ChainMiddleware(s.ForgotPasswordSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteResetPassword, ChainMiddleware(s.ResetPasswordPageHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthResetPassword, ChainMiddleware(s.ResetPasswordSubmissionHandler(), s.HTMLMiddleWare()...))

	// GOOGLE OAUTH
	s.RegisterRouteFunc("GET "+RouteGoogleLogin, s.GoogleLoginHandler())
	s.RegisterRouteHandler("GET "+RouteGoogleCallback, ChainMiddleware(s.GoogleCallbackHandler(), s.HTMLMiddleWare()...))

	// JSON page feeds
	s.RegisterRouteHandler("GET "+RouteGamesPage, ChainMiddleware(s.GamesFeedHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMatchesPage, ChainMiddleware(s.MatchesFeedHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteTeamsPage, ChainMiddleware(s.TeamsFeedHandler(), s.APIMiddleware()...))

	// Filter reference data
	s.RegisterRouteHandler("GET "+RouteFilterGameGenres, ChainMiddleware(s.FilterItemsHandler(s.gamesClient.Genres), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteFilterGamePlatforms, ChainMiddleware(s.FilterItemsHandler(s.gamesClient.Platforms), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteFilterGameAges, ChainMiddleware(s.FilterItemsHandler(s.gamesClient.AgeRatings), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteFilterGameDevelopers, ChainMiddleware(s.FilterItemsHandler(s.gamesClient.Developers), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteFilterGameYears, ChainMiddleware(s.FilterItemsHandler(s.gamesClient.PublishYears), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteFilterSeriesFormats, ChainMiddleware(s.FilterItemsHandler(s.seriesClient.Formats), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteFilterSeriesStatuses, ChainMiddleware(s.FilterItemsHandler(s.seriesClient.Statuses), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteFilterTeamYears, ChainMiddleware(s.FilterItemsHandler(s.teamsClient.FoundingYears), s.APIMiddleware()...))

	// Backend file passthrough
	s.RegisterRouteHandler("GET "+RouteFiles, ChainMiddleware(s.FilesProxyHandler(), s.APIMiddleware()...))

	// Preferences
	s.RegisterRouteFunc("GET "+RouteTheme, s.ThemeHandler())

	// Operational
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())

	// Static assets
	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteStaticImg, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
