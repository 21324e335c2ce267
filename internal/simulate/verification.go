package simulate

import (
	"bytes"
	"fmt"

	"github.com/okian/moonsurvival/internal/domain/model"
	"github.com/okian/moonsurvival/internal/domain/ranking"
)

// verifyEvaluation checks a server result against the local score.
func verifyEvaluation(local *ranking.Evaluator, order []string, got ranking.Result) error {
	want, err := local.Score(order)
	if err != nil {
		return fmt.Errorf("local score: %w", err)
	}
	if got.Score != want {
		return fmt.Errorf("%w: score %d, want %d", ErrMismatch, got.Score, want)
	}
	if len(got.PerItem) != len(order) {
		return fmt.Errorf("%w: %d rows, want %d", ErrMismatch, len(got.PerItem), len(order))
	}
	return nil
}

// verifyTeam recomputes the team result locally and compares the consensus
// order and every score.
func verifyTeam(local *ranking.Evaluator, subs []ranking.Submission, got ranking.TeamResult) error {
	want, err := local.Team(subs)
	if err != nil {
		return fmt.Errorf("local team: %w", err)
	}
	if got.TeamScore != want.TeamScore {
		return fmt.Errorf("%w: team score %d, want %d", ErrMismatch, got.TeamScore, want.TeamScore)
	}
	if got.WorstPossible != want.WorstPossible {
		return fmt.Errorf("%w: worst possible %d, want %d", ErrMismatch, got.WorstPossible, want.WorstPossible)
	}
	if err := sameOrder(consensusNames(got.TeamRanking), consensusNames(want.TeamRanking)); err != nil {
		return err
	}
	if len(got.Individuals) != len(want.Individuals) {
		return fmt.Errorf("%w: %d individuals, want %d", ErrMismatch, len(got.Individuals), len(want.Individuals))
	}
	for i, ind := range want.Individuals {
		if got.Individuals[i] != ind {
			return fmt.Errorf("%w: individual %d is %+v, want %+v", ErrMismatch, i, got.Individuals[i], ind)
		}
	}
	return nil
}

// verifyReplay checks that second is a replay of first.
func verifyReplay(first, second reply) error {
	if first.replayed {
		return fmt.Errorf("%w: first team response marked as replay", ErrBadResponse)
	}
	if !second.replayed {
		return fmt.Errorf("%w: repeated key was not replayed", ErrBadResponse)
	}
	if second.status != first.status || !bytes.Equal(second.body, first.body) {
		return fmt.Errorf("%w: replayed response differs", ErrMismatch)
	}
	return nil
}

func consensusNames(entries []ranking.ConsensusEntry) []string {
	items := make([]model.Item, len(entries))
	for i, e := range entries {
		items[i] = e.Item
	}
	return model.Names(items)
}

func sameOrder(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: consensus has %d items, want %d", ErrMismatch, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%w: consensus position %d is %q, want %q", ErrMismatch, i+1, got[i], want[i])
		}
	}
	return nil
}
