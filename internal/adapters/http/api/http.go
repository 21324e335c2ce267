// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/moonsurvival/internal/adapters/chat"
	"github.com/okian/moonsurvival/internal/adapters/idempotency"
	"github.com/okian/moonsurvival/internal/domain/model"
	"github.com/okian/moonsurvival/internal/domain/ranking"
	"github.com/okian/moonsurvival/pkg/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Items(ctx context.Context) []model.Item
	ChatRemote() bool

	Evaluate(ctx context.Context, order []string) (ranking.Result, error)
	Team(ctx context.Context, submissions []ranking.Submission) (ranking.TeamResult, error)
	Chat(ctx context.Context, message string) (chat.Reply, error)
}

// ResponseStore keeps responses for Idempotency-Key replay.
type ResponseStore interface {
	LookupResponse(ctx context.Context, key string) (idempotency.Response, bool)
	SaveResponse(ctx context.Context, key string, resp idempotency.Response)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	itemsHandler    *ItemsHandler
	evaluateHandler *EvaluateHandler
	teamHandler     *TeamHandler
	chatHandler     *ChatHandler
	responses       ResponseStore
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, responses ResponseStore, log logger.Logger) *Server {
	if log == nil {
		log = logger.Get()
	}
	log = log.Named("api")
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		itemsHandler:    NewItemsHandler(deps),
		evaluateHandler: NewEvaluateHandler(deps, log),
		teamHandler:     NewTeamHandler(deps, log),
		chatHandler:     NewChatHandler(deps, log),
		responses:       responses,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/items", MetricsMiddleware(s.itemsHandler.HandleGetItems, "items"))
	mux.HandleFunc("/evaluate", MetricsMiddleware(Idempotent(s.responses, s.evaluateHandler.HandleEvaluate), "evaluate"))
	mux.HandleFunc("/team", MetricsMiddleware(Idempotent(s.responses, s.teamHandler.HandleTeam), "team"))
	mux.HandleFunc("/chat", MetricsMiddleware(s.chatHandler.HandleChat, "chat"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
