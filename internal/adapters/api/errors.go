package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andrescamacho/mbes-planner/internal/application/common"
	"github.com/andrescamacho/mbes-planner/internal/domain/history"
	"github.com/andrescamacho/mbes-planner/internal/domain/shared"
)

// Error kinds the HTTP layer adds to the engine's own
const (
	kindValidation  shared.ErrorKind = "ValidationError"
	kindNotFound    shared.ErrorKind = "NotFoundError"
	kindRateLimited shared.ErrorKind = "RateLimitError"
)

type errorBody struct {
	Kind    shared.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

// statusFor maps an error onto its HTTP status and wire kind
func statusFor(err error) (int, shared.ErrorKind) {
	var notFound *history.ErrPlanNotFound
	var invalidPlan *history.ErrInvalidPlan

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound, kindNotFound
	case errors.As(err, &invalidPlan):
		return http.StatusBadRequest, kindValidation
	}

	switch kind := shared.KindOf(err); kind {
	case shared.KindInputRange, shared.KindGeometry, shared.KindPlannerInput:
		return http.StatusBadRequest, kind
	case shared.KindComputation:
		return http.StatusUnprocessableEntity, kind
	default:
		return http.StatusInternalServerError, shared.KindUnknown
	}
}

func writeError(w http.ResponseWriter, req *http.Request, err error) {
	status, kind := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		common.LoggerFromContext(req.Context()).Log(common.LevelError, "request failed", map[string]interface{}{
			"error": err.Error(),
		})
		message = "internal error"
	}
	writeJSON(w, status, errorBody{Kind: kind, Message: message})
}

// writeJSON marshals before writing the header; an unencodable body is
// sent as a 500 UnknownError
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorBody{Kind: shared.KindUnknown, Message: "internal error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
