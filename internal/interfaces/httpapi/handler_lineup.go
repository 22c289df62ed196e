package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-coach/internal/usecase"
)

func (h *Handler) GetLineupByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineupByDate")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	date, err := parseDate(ctx, "date", r.PathValue("date"), h.location)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	built, err := h.lineupService.BuildForDate(ctx, leagueID, date, parsePlayerIDs(r.URL.Query()))
	if err != nil {
		h.logFailure(ctx, "build lineup failed", err, "league_id", leagueID, "date", r.PathValue("date"))
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(built))
}

func (h *Handler) GetUtilization(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUtilization")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	query := r.URL.Query()
	start, err := parseDate(ctx, "start", query.Get("start"), h.location)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	end, err := parseDate(ctx, "end", query.Get("end"), h.location)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.utilizationService.Compute(ctx, usecase.UtilizationInput{
		LeagueID:  leagueID,
		Start:     start,
		End:       end,
		PlayerIDs: parsePlayerIDs(query),
	})
	if err != nil {
		h.logFailure(ctx, "compute utilization failed", err, "league_id", leagueID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, utilizationToDTO(leagueID, report))
}
