package competitionhandlers

import (
	"net/http"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/go-chi/chi/v5"
)

func (h *CompetitionHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompetitionHandlers.HandleStats")
	defer span.End()

	stats, err := h.service.Stats(ctx)
	if err != nil {
		h.fail(w, r, "Stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *CompetitionHandlers) HandleStatsChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompetitionHandlers.HandleStatsChart")
	defer span.End()

	png, err := h.service.StatsChart(ctx)
	if err != nil {
		h.fail(w, r, "StatsChart", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *CompetitionHandlers) HandleGradeBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompetitionHandlers.HandleGradeBreakdown")
	defer span.End()

	breakdown, err := h.service.GradeBreakdown(ctx, competitiondomain.Category(chi.URLParam(r, "cup")))
	if err != nil {
		h.fail(w, r, "GradeBreakdown", err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}
