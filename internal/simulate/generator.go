package simulate

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/okian/moonsurvival/internal/domain/model"
	"github.com/okian/moonsurvival/internal/domain/ranking"
	"github.com/okian/moonsurvival/pkg/logger"
)

const directoryPermission = 0o750

// generator produces deterministic participants for a seed.
type generator struct {
	rng   *rand.Rand
	swaps int
}

func newGenerator(seed int64, swaps int) *generator {
	return &generator{rng: rand.New(rand.NewSource(seed)), swaps: swaps} //nolint:gosec // reproducible test data
}

// participants returns n submissions, each a perturbed copy of the reference
// order. Names and keys are UUIDs drawn from the seeded source.
func (g *generator) participants(items []model.Item, n int) ([]ranking.Submission, error) {
	subs := make([]ranking.Submission, n)
	for i := range subs {
		id, err := g.uuid()
		if err != nil {
			return nil, err
		}
		subs[i] = ranking.Submission{
			Participant: "participant-" + id,
			Order:       g.perturb(model.Names(items)),
		}
	}
	return subs, nil
}

func (g *generator) perturb(order []string) []string {
	for i := 0; i < g.swaps; i++ {
		a, b := g.rng.Intn(len(order)), g.rng.Intn(len(order))
		order[a], order[b] = order[b], order[a]
	}
	return order
}

func (g *generator) uuid() (string, error) {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

// saveSubmissions writes the generated submissions to filename as JSON.
func saveSubmissions(ctx context.Context, filename string, subs []ranking.Submission) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal submissions: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("write submissions: %w", err)
	}
	logger.Get().Info(ctx, "submissions saved to file", logger.String("filename", filename))
	return nil
}
