package api

import (
	"errors"
	"net/http"

	"github.com/okian/moonsurvival/internal/domain/ranking"
	"github.com/okian/moonsurvival/pkg/logger"
)

// teamRequest mirrors the OpenAPI schema for POST /team.
type teamRequest struct {
	Submissions []ranking.Submission `json:"submissions"`
}

// TeamHandler aggregates team submissions.
type TeamHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(deps Dependencies, log logger.Logger) *TeamHandler {
	return &TeamHandler{deps: deps, logger: log}
}

// HandleTeam handles POST /team requests.
func (h *TeamHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.team"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req teamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	res, err := h.deps.Team(r.Context(), req.Submissions)
	if err == nil {
		writeJSON(w, http.StatusOK, res)
		return
	}

	if code, ok := teamErrorCode(err); ok {
		writeError(w, http.StatusBadRequest, code, WrapKind(op, ErrBadRequest, err))
		return
	}
	h.logger.Error(r.Context(), "team aggregation failed", logger.Error(Wrap(op, err)))
	writeError(w, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal))
}

// teamErrorCode maps validation failures to client error codes.
func teamErrorCode(err error) (string, bool) {
	switch {
	case errors.Is(err, ranking.ErrEmptyInput):
		return "empty_submissions", true
	case errors.Is(err, ranking.ErrDuplicateParticipant):
		return "duplicate_participant", true
	case errors.Is(err, ranking.ErrInvalidLength):
		return "invalid_order", true
	case errors.Is(err, ranking.ErrNotPermutation):
		return "not_permutation", true
	}
	return "", false
}
