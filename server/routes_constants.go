package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Pages
	RouteIndex     = "/"
	RouteDashboard = "/dashboard"
	RouteGames     = "/games"
	RouteMatches   = "/matches"
	RouteTeams     = "/teams"

	// Auth pages
	RouteLogin          = "/login"
	RouteRegister       = "/register"
	RouteVerify         = "/verify"
	RouteForgotPassword = "/forgot-password"
	RouteResetPassword  = "/reset-password"

	// Auth form submissions
	RouteAuthLogin          = "/auth/login"
	RouteAuthRegister       = "/auth/register"
	RouteAuthVerify         = "/auth/verify"
	RouteAuthVerifyResend   = "/auth/verify/resend"
	RouteAuthForgotPassword = "/auth/forgot-password"
	RouteAuthResetPassword  = "/auth/reset-password"
	RouteAuthLogout         = "/auth/logout"

	// Google OAuth
	RouteGoogleLogin    = "/auth/google"
	RouteGoogleCallback = "/auth/google/callback"

	// JSON page feeds (infinite scroll)
	RouteGamesPage   = "/games/page"
	RouteMatchesPage = "/matches/page"
	RouteTeamsPage   = "/teams/page"

	// Filter reference data
	RouteFilterGameGenres     = "/filters/game/genres"
	RouteFilterGamePlatforms  = "/filters/game/platforms"
	RouteFilterGameAges       = "/filters/game/ages"
	RouteFilterGameDevelopers = "/filters/game/developers"
	RouteFilterGameYears      = "/filters/game/publishyears"
	RouteFilterSeriesFormats  = "/filters/series/formats"
	RouteFilterSeriesStatuses = "/filters/series/statuses"
	RouteFilterTeamYears      = "/filters/teams/foundingyears"

	// Backend file proxy (game artwork, avatars)
	RouteFiles = "/api/files/{path...}"

	// Preferences
	RouteTheme = "/theme"

	// Operational
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
	RouteStaticImg = "/images/{file}"
)
