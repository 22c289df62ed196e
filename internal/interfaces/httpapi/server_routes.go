package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("POST /v1/leagues", handler.CreateLeague)
	mux.HandleFunc("POST /v1/leagues/import", handler.ImportSchedule)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeamsByLeague)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/players", handler.AddPlayer)
}

func registerLineupRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}/lineups/{date}", handler.GetLineupByDate)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/utilization", handler.GetUtilization)
}
