// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the console.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/okian/moonsurvival/internal/adapters/chat"
	"github.com/okian/moonsurvival/internal/adapters/idempotency"
	"github.com/okian/moonsurvival/internal/domain/model"
	"github.com/okian/moonsurvival/internal/domain/ranking"
	"github.com/okian/moonsurvival/pkg/logger"
	"github.com/okian/moonsurvival/pkg/metrics"
	"github.com/okian/moonsurvival/pkg/tracing"
)

// Rejection reasons reported to metrics and logs.
const (
	reasonInvalidLength        = "invalid_length"
	reasonNotPermutation       = "not_permutation"
	reasonDuplicateParticipant = "duplicate_participant"
	reasonEmpty                = "empty"
	reasonOther                = "other"
)

// Service implements the API dependencies for the ranking exercise.
type Service struct {
	// Core components
	evaluator  *ranking.Evaluator
	responder  chat.Responder
	chatRemote bool
	responses  idempotency.Store

	// Configuration
	idempotencySize int

	// Counters
	startedAt   time.Time
	evaluations atomic.Int64
	teams       atomic.Int64
	chats       atomic.Int64
	rejected    atomic.Int64
	replays     atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEvaluator replaces the default reference evaluator.
func WithEvaluator(e *ranking.Evaluator) Option {
	return func(s *Service) {
		if e != nil {
			s.evaluator = e
		}
	}
}

// WithResponder sets the chat responder; remote reports whether it calls a hosted model.
func WithResponder(r chat.Responder, remote bool) Option {
	return func(s *Service) {
		if r != nil {
			s.responder = r
			s.chatRemote = remote
		}
	}
}

// WithIdempotencySize sets the number of responses kept for replay.
func WithIdempotencySize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.idempotencySize = size
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		evaluator:       ranking.Default(),
		responder:       chat.NewLocal(),
		idempotencySize: 10_000,
		startedAt:       time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("service")

	s.responses = idempotency.NewMemoryStore(
		idempotency.WithMaxSize(s.idempotencySize),
		idempotency.WithSizeObserver(metrics.UpdateIdempotencyEntries),
	)

	return s
}

// Items returns the reference items in reference order.
func (s *Service) Items(_ context.Context) []model.Item {
	return s.evaluator.Items()
}

// ChatRemote reports whether chat replies come from a hosted model.
func (s *Service) ChatRemote() bool {
	return s.chatRemote
}

// Evaluate scores a single submission. Unknown names are scored with the
// fixed penalty and get a closest-name suggestion when one is near enough.
func (s *Service) Evaluate(ctx context.Context, order []string) (res ranking.Result, err error) {
	ctx, end := tracing.StartSpan(ctx, "ranking.evaluate", attribute.Int("order.length", len(order)))
	defer func() { end(err) }()

	if err = s.evaluator.CheckLength(order); err != nil {
		s.reject(ctx, "evaluate", err)
		return ranking.Result{}, fmt.Errorf("evaluate: %w", err)
	}

	res, err = s.evaluator.Evaluate(order)
	if err != nil {
		return ranking.Result{}, fmt.Errorf("evaluate: %w", err)
	}

	unknown := 0
	for i := range res.PerItem {
		row := &res.PerItem[i]
		if row.ReferenceRank != nil {
			continue
		}
		unknown++
		if suggestion, ok := s.evaluator.Suggest(row.Name); ok {
			row.Suggestion = suggestion
		}
	}

	s.evaluations.Add(1)
	metrics.RecordEvaluation(res.Score, unknown)
	tracing.SetAttributes(ctx, attribute.Int("score", res.Score), attribute.Int("unrecognized", unknown))
	s.logger.Debug(ctx, "submission evaluated",
		logger.Int("score", res.Score),
		logger.Int("unrecognized", unknown),
	)
	return res, nil
}

// Team aggregates several participants' orderings into a consensus ranking.
func (s *Service) Team(ctx context.Context, submissions []ranking.Submission) (res ranking.TeamResult, err error) {
	ctx, end := tracing.StartSpan(ctx, "ranking.team", attribute.Int("participants", len(submissions)))
	defer func() { end(err) }()

	cleaned := make([]ranking.Submission, len(submissions))
	for i, sub := range submissions {
		cleaned[i] = ranking.Submission{Participant: strings.TrimSpace(sub.Participant), Order: sub.Order}
	}

	res, err = s.evaluator.Team(cleaned)
	if err != nil {
		s.reject(ctx, "team", err)
		return ranking.TeamResult{}, fmt.Errorf("team: %w", err)
	}

	s.teams.Add(1)
	metrics.RecordTeamEvaluation(len(cleaned), res.TeamScore)
	tracing.SetAttributes(ctx, attribute.Int("team.score", res.TeamScore))
	s.logger.Info(ctx, "team evaluated",
		logger.Int("participants", len(cleaned)),
		logger.Int("team_score", res.TeamScore),
	)
	return res, nil
}

// Chat answers a free-text question.
func (s *Service) Chat(ctx context.Context, message string) (reply chat.Reply, err error) {
	ctx, end := tracing.StartSpan(ctx, "chat.reply")
	defer func() { end(err) }()

	message = strings.TrimSpace(message)
	if message == "" {
		return chat.Reply{}, fmt.Errorf("chat: %w", chat.ErrEmptyMessage)
	}

	start := time.Now()
	reply, err = s.responder.Reply(ctx, message)
	if err != nil {
		s.logger.Error(ctx, "chat reply failed", logger.Error(err))
		return chat.Reply{}, fmt.Errorf("chat: %w", err)
	}
	latency := float64(time.Since(start).Microseconds()) / 1000

	s.chats.Add(1)
	metrics.RecordChatReply(string(reply.Source), latency)
	tracing.SetAttributes(ctx, attribute.String("chat.source", string(reply.Source)))
	if reply.Source == chat.SourceFallback {
		s.logger.Warn(ctx, "remote chat unavailable, served local reply")
	}
	return reply, nil
}

// LookupResponse returns a stored response for an idempotency key.
func (s *Service) LookupResponse(ctx context.Context, key string) (idempotency.Response, bool) {
	resp, ok := s.responses.Lookup(ctx, key)
	if ok {
		s.replays.Add(1)
		metrics.RecordIdempotentReplay()
		s.logger.Debug(ctx, "replaying stored response", logger.String("idempotency_key", key))
	}
	return resp, ok
}

// SaveResponse stores a response for an idempotency key. The first response wins.
func (s *Service) SaveResponse(ctx context.Context, key string, resp idempotency.Response) {
	if !s.responses.Save(ctx, key, resp) {
		s.logger.Debug(ctx, "idempotency key already stored", logger.String("idempotency_key", key))
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"items":                s.evaluator.Size(),
		"maxScore":             s.evaluator.MaxScore(),
		"evaluations":          s.evaluations.Load(),
		"teamEvaluations":      s.teams.Load(),
		"chatReplies":          s.chats.Load(),
		"chatRemote":           s.chatRemote,
		"rejectedSubmissions":  s.rejected.Load(),
		"idempotentReplays":    s.replays.Load(),
		"idempotencyEntries":   s.responses.Size(),
		"idempotencyCacheSize": s.idempotencySize,
		"uptimeSeconds":        int64(time.Since(s.startedAt).Seconds()),
	}
}

func (s *Service) reject(ctx context.Context, op string, err error) {
	reason := rejectionReason(err)
	s.rejected.Add(1)
	metrics.RecordRejectedSubmission(reason)
	s.logger.Info(ctx, "submission rejected",
		logger.String("operation", op),
		logger.String("reason", reason),
		logger.Error(err),
	)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ranking.ErrInvalidLength):
		return reasonInvalidLength
	case errors.Is(err, ranking.ErrNotPermutation):
		return reasonNotPermutation
	case errors.Is(err, ranking.ErrDuplicateParticipant):
		return reasonDuplicateParticipant
	case errors.Is(err, ranking.ErrEmptyInput):
		return reasonEmpty
	default:
		return reasonOther
	}
}
