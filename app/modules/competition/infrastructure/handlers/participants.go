package competitionhandlers

import (
	"net/http"
	"strconv"

	authhandlers "github.com/Black-And-White-Club/irock/app/modules/auth/infrastructure/handlers"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/go-chi/chi/v5"
)

// participantID parses {id} and checks the caller may view it. Staff may
// view anyone; participants only themselves.
func participantID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid participant id")
		return 0, false
	}

	claims, ok := authhandlers.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return 0, false
	}
	if !claims.CanView(id) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return 0, false
	}
	return id, true
}

func (h *CompetitionHandlers) HandleParticipantSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompetitionHandlers.HandleParticipantSummary")
	defer span.End()

	id, ok := participantID(w, r)
	if !ok {
		return
	}
	summary, err := h.service.ParticipantSummary(ctx, id)
	if err != nil {
		h.fail(w, r, "ParticipantSummary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *CompetitionHandlers) HandleAvailableBlocks(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompetitionHandlers.HandleAvailableBlocks")
	defer span.End()

	id, ok := participantID(w, r)
	if !ok {
		return
	}
	blocks, err := h.service.AvailableBlocks(ctx, id)
	if err != nil {
		h.fail(w, r, "AvailableBlocks", err)
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}

// HandleParticipantAscensions pages the history with ?page=, starting at 1.
func (h *CompetitionHandlers) HandleParticipantAscensions(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompetitionHandlers.HandleParticipantAscensions")
	defer span.End()

	id, ok := participantID(w, r)
	if !ok {
		return
	}
	page, ok := queryInt(r, "page", 1)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	paged, err := h.service.ParticipantAscensions(ctx, id, page)
	if err != nil {
		h.fail(w, r, "ParticipantAscensions", err)
		return
	}
	writeJSON(w, http.StatusOK, paged)
}

// HandleParticipantsByCategory lists the {cup} participants, filtered by ?gender=.
func (h *CompetitionHandlers) HandleParticipantsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "CompetitionHandlers.HandleParticipantsByCategory")
	defer span.End()

	gender := competitiondomain.Gender(r.URL.Query().Get("gender"))
	switch gender {
	case "", competitiondomain.GenderMale, competitiondomain.GenderFemale,
		competitiondomain.GenderOther, competitiondomain.GenderPreferNotToSay:
	default:
		writeError(w, http.StatusBadRequest, "invalid gender")
		return
	}

	participants, err := h.service.ParticipantsByCategory(ctx, competitiondomain.Category(chi.URLParam(r, "cup")), gender)
	if err != nil {
		h.fail(w, r, "ParticipantsByCategory", err)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}
