package authhandlers

import (
	"encoding/json"
	"errors"
	"net/http"

	authservice "github.com/Black-And-White-Club/irock/app/modules/auth/application"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin proxies credentials to the backend. A login the gate refuses
// (inactive account or cleared session) is answered with 403 and the
// decision, without a token.
func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AuthHandlers.HandleLogin")
	defer span.End()

	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Login(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, authservice.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, authservice.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "HTTP login failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
		writeError(w, http.StatusBadGateway, "login unavailable")
		return
	}

	if resp.Token == "" {
		writeJSON(w, http.StatusForbidden, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleGate evaluates the caller's session now.
func (h *AuthHandlers) HandleGate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		writeJSON(w, http.StatusOK, h.service.Gate(ctx, nil))
		return
	}
	session := claims.Session
	writeJSON(w, http.StatusOK, h.service.Gate(ctx, &session))
}

// HandlePreview evaluates ?cup= at ?at= for staff.
func (h *AuthHandlers) HandlePreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	cup := competitiondomain.Category(q.Get("cup"))
	if cup == "" {
		writeError(w, http.StatusBadRequest, "missing cup")
		return
	}

	resp, err := h.service.Preview(ctx, cup, q.Get("at"))
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidPreviewTime) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "Gate preview failed", attr.Error(err))
		writeError(w, http.StatusInternalServerError, "preview failed")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
