package competitionhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	competitionservice "github.com/Black-And-White-Club/irock/app/modules/competition/application"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// CompetitionHandlers implements the Handlers interface.
type CompetitionHandlers struct {
	service competitionservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewCompetitionHandlers creates a new CompetitionHandlers instance.
func NewCompetitionHandlers(
	service competitionservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &CompetitionHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps domain failures to 4xx and everything else to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, competitiondomain.ErrSnapshotNotFound),
		errors.Is(err, competitionservice.ErrParticipantNotFound):
		return http.StatusNotFound
	case errors.Is(err, competitionservice.ErrInvalidCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *CompetitionHandlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("operation", op),
			attr.Error(err),
		)
		writeError(w, status, http.StatusText(status))
		return
	}
	writeError(w, status, err.Error())
}

// queryInt returns the integer query parameter key, or def when absent.
func queryInt(r *http.Request, key string, def int) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
