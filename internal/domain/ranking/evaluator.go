// Package ranking scores candidate orderings against a fixed reference ranking
// and aggregates several orderings into a team consensus.
//
// All operations are pure functions of their arguments and the reference table
// the Evaluator was built with; an Evaluator is safe for concurrent use.
package ranking

import (
	"fmt"
	"sort"

	"github.com/okian/moonsurvival/internal/domain/model"
)

// Placement is a submitted name together with its 1-based position.
type Placement struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// ItemResult is one row of the per-position breakdown. ReferenceRank and
// Difference are nil when the submitted name is not a reference item.
type ItemResult struct {
	Name              string `json:"name"`
	SubmittedPosition int    `json:"submitted_position"`
	ReferenceRank     *int   `json:"reference_rank"`
	Difference        *int   `json:"difference"`
	Suggestion        string `json:"suggestion,omitempty"`
}

// Result is the full evaluation of a single submission.
type Result struct {
	Score     int          `json:"score"`
	Submitted []Placement  `json:"submitted"`
	Official  []model.Item `json:"official"`
	PerItem   []ItemResult `json:"per_item"`
}

// Evaluator scores submissions against an immutable reference table.
type Evaluator struct {
	items []model.Item   // reference order, index i holds rank i+1
	ranks map[string]int // name -> 1-based rank
}

var defaultEvaluator = mustEvaluator(model.DefaultItems()) //nolint:gochecknoglobals // immutable after init

func mustEvaluator(items []model.Item) *Evaluator {
	e, err := NewEvaluator(items)
	if err != nil {
		panic(err)
	}
	return e
}

// Default returns the evaluator over the built-in NASA reference table.
func Default() *Evaluator {
	return defaultEvaluator
}

// NewEvaluator copies items and validates that they form a reference set:
// non-empty, unique non-empty names, and ranks exactly 1..N.
func NewEvaluator(items []model.Item) (*Evaluator, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items", ErrInvalidReference)
	}

	sorted := make([]model.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })

	ranks := make(map[string]int, len(sorted))
	for i, it := range sorted {
		if it.Name == "" {
			return nil, fmt.Errorf("%w: item with rank %d has no name", ErrInvalidReference, it.Rank)
		}
		if _, dup := ranks[it.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidReference, it.Name)
		}
		if it.Rank != i+1 {
			return nil, fmt.Errorf("%w: ranks must cover 1..%d without gaps, found %d at position %d",
				ErrInvalidReference, len(sorted), it.Rank, i+1)
		}
		ranks[it.Name] = it.Rank
	}

	return &Evaluator{items: sorted, ranks: ranks}, nil
}

// Size returns N, the number of reference items.
func (e *Evaluator) Size() int {
	return len(e.items)
}

// Items returns a copy of the reference items in rank order.
func (e *Evaluator) Items() []model.Item {
	out := make([]model.Item, len(e.items))
	copy(out, e.items)
	return out
}

// Lookup returns the reference item with the given name.
func (e *Evaluator) Lookup(name string) (model.Item, bool) {
	rank, ok := e.ranks[name]
	if !ok {
		return model.Item{}, false
	}
	return e.items[rank-1], true
}

// MaxScore is the score of the reversed reference order, the largest score
// any permutation can reach.
func (e *Evaluator) MaxScore() int {
	n := len(e.items)
	return n * n / 2
}

// CheckLength fails with a *LengthError when names does not have exactly N entries.
func (e *Evaluator) CheckLength(names []string) error {
	if len(names) != len(e.items) {
		return &LengthError{Got: len(names), Want: len(e.items)}
	}
	return nil
}

// ValidatePermutation checks that names holds every reference item exactly once.
func (e *Evaluator) ValidatePermutation(names []string) error {
	if err := e.CheckLength(names); err != nil {
		return err
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := e.ranks[name]; !ok {
			return fmt.Errorf("%w: unknown item %q", ErrNotPermutation, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: %q appears more than once", ErrNotPermutation, name)
		}
		seen[name] = true
	}
	return nil
}

// Resolve maps names to reference items, failing on the first unknown name.
func (e *Evaluator) Resolve(names []string) ([]model.Item, error) {
	out := make([]model.Item, len(names))
	for i, name := range names {
		it, ok := e.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownItem, name)
		}
		out[i] = it
	}
	return out, nil
}

// Score returns the divergence between names and the reference order: the sum
// over positions of |(rank-1) - i|. A name that is not a reference item adds N,
// which is more than any misplaced item can cost.
func (e *Evaluator) Score(names []string) (int, error) {
	if err := e.CheckLength(names); err != nil {
		return 0, err
	}
	penalty := len(e.items)
	total := 0
	for i, name := range names {
		rank, ok := e.ranks[name]
		if !ok {
			total += penalty
			continue
		}
		total += abs(rank - 1 - i)
	}
	return total, nil
}

// Detail returns the per-position breakdown using 1-based positions.
func (e *Evaluator) Detail(names []string) ([]ItemResult, error) {
	if err := e.CheckLength(names); err != nil {
		return nil, err
	}
	rows := make([]ItemResult, len(names))
	for i, name := range names {
		pos := i + 1
		row := ItemResult{Name: name, SubmittedPosition: pos}
		if rank, ok := e.ranks[name]; ok {
			diff := abs(rank - pos)
			row.ReferenceRank = &rank
			row.Difference = &diff
		}
		rows[i] = row
	}
	return rows, nil
}

// Evaluate computes the complete result for a single submission.
func (e *Evaluator) Evaluate(names []string) (Result, error) {
	score, err := e.Score(names)
	if err != nil {
		return Result{}, err
	}
	perItem, err := e.Detail(names)
	if err != nil {
		return Result{}, err
	}
	submitted := make([]Placement, len(names))
	for i, name := range names {
		submitted[i] = Placement{Name: name, Position: i + 1}
	}
	return Result{
		Score:     score,
		Submitted: submitted,
		Official:  e.Items(),
		PerItem:   perItem,
	}, nil
}

// Accuracy scores an ordering of already-resolved items with the same metric
// as Score: the sum of |rank-1 - i|.
func (e *Evaluator) Accuracy(ranking []model.Item) int {
	total := 0
	for i, it := range ranking {
		total += abs(it.Rank - 1 - i)
	}
	return total
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
