package api

import (
	"errors"
	"net/http"

	"github.com/okian/moonsurvival/internal/domain/ranking"
	"github.com/okian/moonsurvival/pkg/logger"
)

// evaluateRequest mirrors the OpenAPI schema for POST /evaluate.
type evaluateRequest struct {
	Order []string `json:"order"`
}

// EvaluateHandler scores single submissions.
type EvaluateHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps Dependencies, log logger.Logger) *EvaluateHandler {
	return &EvaluateHandler{deps: deps, logger: log}
}

// HandleEvaluate handles POST /evaluate requests.
func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req evaluateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_order", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Evaluate(r.Context(), req.Order)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, ranking.ErrInvalidLength):
		writeError(w, http.StatusBadRequest, "invalid_order", WrapKind(op, ErrBadRequest, err))
	default:
		h.logger.Error(r.Context(), "evaluate failed", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal))
	}
}
