package competitionhandlers

import (
	"net/http"
	"time"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleLeaderboards ranks every category. ?limit= overrides the configured size.
func (h *CompetitionHandlers) HandleLeaderboards(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompetitionHandlers.HandleLeaderboards")
	defer span.End()

	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	boards, err := h.service.Leaderboards(ctx, limit)
	if err != nil {
		h.fail(w, r, "Leaderboards", err)
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

// HandleLeaderboard ranks the {cup} category.
func (h *CompetitionHandlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompetitionHandlers.HandleLeaderboard")
	defer span.End()

	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	board, err := h.service.Leaderboard(ctx, competitiondomain.Category(chi.URLParam(r, "cup")), limit)
	if err != nil {
		h.fail(w, r, "Leaderboard", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// HandleLeaderboardWorkbook downloads the full rankings as XLSX.
func (h *CompetitionHandlers) HandleLeaderboardWorkbook(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompetitionHandlers.HandleLeaderboardWorkbook")
	defer span.End()

	data, err := h.service.LeaderboardWorkbook(ctx)
	if err != nil {
		h.fail(w, r, "LeaderboardWorkbook", err)
		return
	}

	name := "leaderboards-" + time.Now().Format("20060102-1504") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
