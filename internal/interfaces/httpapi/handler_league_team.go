package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logFailure(ctx, "list leagues failed", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, lg := range leagues {
		items = append(items, leagueToDTO(lg))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	lg, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logFailure(ctx, "get league failed", err, "league_id", leagueID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(lg))
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	var req createLeagueRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	lg, err := h.leagueService.CreateLeague(ctx, usecase.CreateLeagueInput{
		ID:     req.ID,
		Name:   req.Name,
		Season: req.Season,
		Slots:  req.Slots,
	})
	if err != nil {
		h.logFailure(ctx, "create league failed", err, "name", req.Name)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(lg))
}

// ImportSchedule takes a CSV schedule as the raw request body. The league
// name, season and id come from the query string.
func (h *Handler) ImportSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportSchedule")
	defer span.End()

	query := r.URL.Query()
	body := http.MaxBytesReader(w, r.Body, maxScheduleBodyBytes)
	defer body.Close()

	lg, err := h.leagueService.ImportSchedule(ctx, usecase.ImportScheduleInput{
		ID:     query.Get("id"),
		Name:   query.Get("name"),
		Season: query.Get("season"),
		Body:   body,
	})
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: schedule body exceeds %d bytes", usecase.ErrInvalidInput, tooLarge.Limit)
		}
		h.logFailure(ctx, "import schedule failed", err, "name", query.Get("name"))
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(lg))
}

func (h *Handler) ListTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	teams, err := h.leagueService.ListTeams(ctx, leagueID)
	if err != nil {
		h.logFailure(ctx, "list teams failed", err, "league_id", leagueID)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req addPlayerRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.leagueService.AddPlayer(ctx, usecase.AddPlayerInput{
		LeagueID:  leagueID,
		ID:        req.ID,
		Name:      req.Name,
		TeamName:  req.TeamName,
		Positions: req.Positions,
	})
	if err != nil {
		h.logFailure(ctx, "add player failed", err, "league_id", leagueID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(p))
}
