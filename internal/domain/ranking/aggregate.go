package ranking

import (
	"fmt"
	"sort"

	"github.com/okian/moonsurvival/internal/domain/model"
)

// Submission is one participant's ordering of item names.
type Submission struct {
	Participant string   `json:"participant"`
	Order       []string `json:"order"`
}

// ConsensusEntry is a reference item placed in the team ranking together with
// the mean position it received.
type ConsensusEntry struct {
	model.Item
	MeanPosition float64 `json:"mean_position"`
}

// IndividualScore is a participant's accuracy.
type IndividualScore struct {
	Participant string `json:"participant"`
	Score       int    `json:"score"`
}

// TeamResult compares the team consensus and every participant with the reference.
type TeamResult struct {
	TeamRanking   []ConsensusEntry  `json:"team_ranking"`
	TeamScore     int               `json:"team_score"`
	TeamPerItem   []ItemResult      `json:"team_per_item"`
	Individuals   []IndividualScore `json:"individuals"`
	BestPossible  int               `json:"best_possible"`
	WorstPossible int               `json:"worst_possible"`
}

// Aggregate orders the reference items by their mean 1-based position across
// submissions, keeping reference order for ties.
//
// An item missing from a submission counts as position 0 for that submission,
// which pulls the item towards the front. Submissions are not re-validated.
func (e *Evaluator) Aggregate(submissions map[string][]string) ([]model.Item, error) {
	means, err := e.meanPositions(submissions)
	if err != nil {
		return nil, err
	}
	return e.orderByMean(means), nil
}

func (e *Evaluator) meanPositions(submissions map[string][]string) (map[string]float64, error) {
	if len(submissions) == 0 {
		return nil, ErrEmptyInput
	}
	means := make(map[string]float64, len(e.items))
	for _, it := range e.items {
		sum := 0
		for _, order := range submissions {
			sum += positionOf(order, it.Name)
		}
		means[it.Name] = float64(sum) / float64(len(submissions))
	}
	return means, nil
}

func (e *Evaluator) orderByMean(means map[string]float64) []model.Item {
	out := e.Items()
	sort.SliceStable(out, func(i, j int) bool {
		return means[out[i].Name] < means[out[j].Name]
	})
	return out
}

// positionOf returns 1 + the index of the first occurrence of name, or 0.
func positionOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i + 1
		}
	}
	return 0
}

// Team aggregates the submissions and scores the consensus and every
// participant. Each submission must be a permutation of the reference items.
// Individuals are reported in input order.
func (e *Evaluator) Team(submissions []Submission) (TeamResult, error) {
	if len(submissions) == 0 {
		return TeamResult{}, ErrEmptyInput
	}

	byName := make(map[string][]string, len(submissions))
	individuals := make([]IndividualScore, 0, len(submissions))
	for _, sub := range submissions {
		if _, dup := byName[sub.Participant]; dup {
			return TeamResult{}, fmt.Errorf("%w: %q", ErrDuplicateParticipant, sub.Participant)
		}
		if err := e.ValidatePermutation(sub.Order); err != nil {
			return TeamResult{}, fmt.Errorf("participant %q: %w", sub.Participant, err)
		}
		resolved, err := e.Resolve(sub.Order)
		if err != nil {
			return TeamResult{}, fmt.Errorf("participant %q: %w", sub.Participant, err)
		}
		byName[sub.Participant] = sub.Order
		individuals = append(individuals, IndividualScore{
			Participant: sub.Participant,
			Score:       e.Accuracy(resolved),
		})
	}

	means, err := e.meanPositions(byName)
	if err != nil {
		return TeamResult{}, err
	}
	team := e.orderByMean(means)

	entries := make([]ConsensusEntry, len(team))
	for i, it := range team {
		entries[i] = ConsensusEntry{Item: it, MeanPosition: means[it.Name]}
	}
	perItem, err := e.Detail(model.Names(team))
	if err != nil {
		return TeamResult{}, err
	}

	return TeamResult{
		TeamRanking:   entries,
		TeamScore:     e.Accuracy(team),
		TeamPerItem:   perItem,
		Individuals:   individuals,
		BestPossible:  0,
		WorstPossible: e.MaxScore(),
	}, nil
}
