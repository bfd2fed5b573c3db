package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"dota-scout/internal/api"
	"dota-scout/internal/normalizer"
	"dota-scout/internal/service"

	"github.com/rs/zerolog"
)

// Server is the thin JSON wrapper over the fetch services. Every response
// uses the {data,status} / {error,status,details} envelope.
type Server struct {
	teams   *service.TeamService
	players *service.PlayerService
	matches *service.MatchService
	catalog *service.CatalogService
	logger  zerolog.Logger
}

func New(teams *service.TeamService, players *service.PlayerService, matches *service.MatchService, catalog *service.CatalogService, logger zerolog.Logger) *Server {
	return &Server{teams: teams, players: players, matches: matches, catalog: catalog, logger: logger}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /teams/{id}", s.handleGetTeam)
	mux.HandleFunc("GET /teams/{id}/analysis", s.handleGetTeamAnalysis)
	mux.HandleFunc("GET /teams/{id}/players", s.handleGetTeamPlayers)
	mux.HandleFunc("GET /players/{id}", s.handleGetPlayer)
	mux.HandleFunc("GET /matches/{id}", s.handleGetMatch)
	mux.HandleFunc("GET /heroes", s.handleGetHeroes)
	mux.HandleFunc("GET /items", s.handleGetItems)
}

type envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r)
	if !ok {
		return
	}
	team, err := s.teams.GetTeam(r.Context(), teamID, fetchOptions(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, team)
}

func (s *Server) handleGetTeamAnalysis(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(w, r)
	if !ok {
		return
	}
	analysis, err := s.teams.GetAnalysis(r.Context(), teamID, fetchOptions(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, analysis)
}

// handleGetTeamPlayers batch-fetches players by explicit ids. Individual
// failures come back as placeholder players inside the data array; the
// response itself is always 200.
func (s *Server) handleGetTeamPlayers(w http.ResponseWriter, r *http.Request) {
	if _, ok := pathID(w, r); !ok {
		return
	}
	ids, err := parseIDList(r.URL.Query().Get("ids"))
	if err != nil || len(ids) == 0 {
		writeEnvelope(w, http.StatusBadRequest, envelope{
			Error:   "invalid request",
			Status:  http.StatusBadRequest,
			Details: "ids must be a comma-separated list of account ids",
		})
		return
	}

	opts := fetchOptions(r)
	players, err := s.players.GetPlayers(r.Context(), ids, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, players)
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(w, r)
	if !ok {
		return
	}
	player, err := s.players.GetPlayer(r.Context(), accountID, fetchOptions(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, player)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := pathID(w, r)
	if !ok {
		return
	}
	match, err := s.matches.GetMatch(r.Context(), matchID, fetchOptions(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, match)
}

func (s *Server) handleGetHeroes(w http.ResponseWriter, r *http.Request) {
	heroes, err := s.catalog.GetHeroes(r.Context(), fetchOptions(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, heroes)
}

func (s *Server) handleGetItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.GetItems(r.Context(), fetchOptions(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeData(w, items)
}

func fetchOptions(r *http.Request) service.FetchOptions {
	return service.FetchOptions{
		Force:      r.URL.Query().Get("force") == "true",
		AllowStale: r.URL.Query().Get("stale") == "true",
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeEnvelope(w, http.StatusBadRequest, envelope{
			Error:   "invalid request",
			Status:  http.StatusBadRequest,
			Details: "id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

func parseIDList(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "unknown error"

	switch {
	case api.IsNotFound(err):
		status = http.StatusNotFound
		message = "data not found"
	case api.IsRateLimited(err):
		status = http.StatusTooManyRequests
		message = "rate limited by upstream provider"
	case normalizer.IsValidation(err):
		status = http.StatusUnprocessableEntity
		message = "invalid upstream data"
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")

	writeEnvelope(w, status, envelope{
		Error:   message,
		Status:  status,
		Details: err.Error(),
	})
}

func writeData(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, envelope{Data: data, Status: http.StatusOK})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
