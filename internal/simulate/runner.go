package simulate

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/moonsurvival/internal/domain/model"
	"github.com/okian/moonsurvival/internal/domain/ranking"
	"github.com/okian/moonsurvival/pkg/logger"
)

type itemsResponse struct {
	Items []model.Item `json:"items"`
}

type teamRequest struct {
	Submissions []ranking.Submission `json:"submissions"`
}

type evaluateRequest struct {
	Order []string `json:"order"`
}

// Run executes a complete simulation against cfg.BaseURL.
func Run(ctx context.Context, cfg Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("simulate")

	log.Info(ctx, "starting simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("participants", cfg.Participants),
		logger.Int("swaps", cfg.Swaps),
		logger.Int("workers", cfg.Workers),
		logger.Any("seed", cfg.Seed))

	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, err
	}

	// Step 2: Fetch the reference items and build a local evaluator from them
	items, err := fetchItems(ctx, client)
	if err != nil {
		return stats, fmt.Errorf("fetch items: %w", err)
	}
	local, err := ranking.NewEvaluator(items)
	if err != nil {
		return stats, fmt.Errorf("build local evaluator: %w", err)
	}

	// Step 3: Generate participants
	gen := newGenerator(cfg.Seed, cfg.Swaps)
	subs, err := gen.participants(items, cfg.Participants)
	if err != nil {
		return stats, fmt.Errorf("generate participants: %w", err)
	}
	stats.Participants = len(subs)
	if cfg.OutputFile != "" {
		if err := saveSubmissions(ctx, cfg.OutputFile, subs); err != nil {
			log.Warn(ctx, "failed to save submissions", logger.Error(err))
		}
	}

	// Step 4: Score every participant concurrently
	submitEvaluations(ctx, client, cfg.Workers, local, subs, stats)

	// Step 5: Submit the team and verify the consensus
	key, err := gen.uuid()
	if err != nil {
		return stats, err
	}
	first, err := client.Post(ctx, "/team", key, teamRequest{Submissions: subs})
	if err != nil {
		return stats, fmt.Errorf("submit team: %w", err)
	}
	var team ranking.TeamResult
	if err := first.decode(&team); err != nil {
		return stats, fmt.Errorf("submit team: %w", err)
	}
	if err := verifyTeam(local, subs, team); err != nil {
		return stats, err
	}
	stats.TeamScore = team.TeamScore
	stats.TeamVerified = true

	// Step 6: Repeat the team request and expect a replay
	second, err := client.Post(ctx, "/team", key, teamRequest{Submissions: subs})
	if err != nil {
		return stats, fmt.Errorf("replay team: %w", err)
	}
	if err := verifyReplay(first, second); err != nil {
		return stats, err
	}
	stats.ReplayVerified = true

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.EvaluationsFailed > 0 {
		return stats, fmt.Errorf("%w: %d evaluations failed", ErrMismatch, stats.EvaluationsFailed)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	// The service answers with Prometheus metrics; any 200 is healthy.
	if resp.status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.status)
	}
	return nil
}

func fetchItems(ctx context.Context, client *HTTPClient) ([]model.Item, error) {
	resp, err := client.Get(ctx, "/items")
	if err != nil {
		return nil, err
	}
	var out itemsResponse
	if err := resp.decode(&out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// submitEvaluations posts every order to /evaluate with a worker pool and
// compares each score with the local evaluator.
func submitEvaluations(ctx context.Context, client *HTTPClient, workers int, local *ranking.Evaluator, subs []ranking.Submission, stats *Stats) {
	log := logger.Get().Named("simulate")

	var sent, verified, failed int64
	jobs := make(chan ranking.Submission, workers*2)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range jobs {
				atomic.AddInt64(&sent, 1)
				if err := evaluateOne(ctx, client, local, sub); err != nil {
					atomic.AddInt64(&failed, 1)
					log.Warn(ctx, "evaluation check failed",
						logger.String("participant", sub.Participant), logger.Error(err))
					continue
				}
				atomic.AddInt64(&verified, 1)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, sub := range subs {
			select {
			case <-ctx.Done():
				return
			case jobs <- sub:
			}
		}
	}()

	wg.Wait()

	stats.EvaluationsSent = int(atomic.LoadInt64(&sent))
	stats.EvaluationsVerified = int(atomic.LoadInt64(&verified))
	stats.EvaluationsFailed = int(atomic.LoadInt64(&failed))
}

func evaluateOne(ctx context.Context, client *HTTPClient, local *ranking.Evaluator, sub ranking.Submission) error {
	resp, err := client.Post(ctx, "/evaluate", "", evaluateRequest{Order: sub.Order})
	if err != nil {
		return err
	}
	var got ranking.Result
	if err := resp.decode(&got); err != nil {
		return err
	}
	return verifyEvaluation(local, sub.Order, got)
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.EvaluationsSent) / stats.Duration.Seconds()
	}
	log.Info(ctx, "final statistics",
		logger.Int("participants", stats.Participants),
		logger.Int("evaluationsSent", stats.EvaluationsSent),
		logger.Int("evaluationsVerified", stats.EvaluationsVerified),
		logger.Int("evaluationsFailed", stats.EvaluationsFailed),
		logger.Int("teamScore", stats.TeamScore),
		logger.Bool("teamVerified", stats.TeamVerified),
		logger.Bool("replayVerified", stats.ReplayVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("evaluationsPerSecond", perSecond))
}
