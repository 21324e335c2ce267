package api

import (
	"errors"
	"net/http"

	"github.com/okian/moonsurvival/internal/adapters/chat"
	"github.com/okian/moonsurvival/pkg/logger"
)

type chatRequest struct {
	Message string `json:"message"`
}

// ChatHandler answers chat messages.
type ChatHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(deps Dependencies, log logger.Logger) *ChatHandler {
	return &ChatHandler{deps: deps, logger: log}
}

// HandleChat handles POST /chat requests.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	const op = "api.chat"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	reply, err := h.deps.Chat(r.Context(), req.Message)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, reply)
	case errors.Is(err, chat.ErrEmptyMessage):
		writeError(w, http.StatusBadRequest, "empty_message", WrapKind(op, ErrBadRequest, err))
	default:
		h.logger.Error(r.Context(), "chat failed", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusInternalServerError, "chat_failed", NewKind(op, ErrInternal))
	}
}
