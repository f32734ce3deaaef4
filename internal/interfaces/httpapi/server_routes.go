package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/bracket", handler.GetBracket)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/predictions/leaders", handler.ListCategoryLeaders)

	mux.HandleFunc("POST /v1/users", handler.RegisterUser)
	mux.HandleFunc("GET /v1/users", handler.ListUsers)
	mux.HandleFunc("GET /v1/users/{userID}", handler.GetUser)

	mux.HandleFunc("GET /v1/users/{userID}/picks", handler.GetPickSheet)
	mux.HandleFunc("PUT /v1/users/{userID}/picks", handler.SubmitPickSheet)
	mux.HandleFunc("PUT /v1/users/{userID}/predictions", handler.SubmitPredictionSheet)

	mux.HandleFunc("GET /v1/users/{userID}/roster", handler.GetRoster)
	mux.HandleFunc("PUT /v1/users/{userID}/roster/{slot}", handler.AssignPlayerToSlot)
	mux.HandleFunc("DELETE /v1/users/{userID}/roster/{slot}", handler.RemovePlayerFromSlot)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/bracket/matchups", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SaveInitialMatchups)))
	mux.Handle("POST /v1/internal/bracket/results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.SubmitSeriesResults)))
	mux.Handle("POST /v1/internal/registration-codes", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IssueRegistrationCodes)))
	mux.Handle("POST /v1/internal/jobs/daily-update", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunDailyUpdateJob)))
	mux.Handle("POST /v1/internal/jobs/initial-valuation", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunInitialValuationJob)))
}
