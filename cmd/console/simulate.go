package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/moonsurvival/internal/simulate"
)

func newSimulateCmd() *cobra.Command {
	cfg := simulate.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive a running server with synthetic participants",
		Long: `Generate seeded participants whose rankings are random perturbations of the
expert order, score each through POST /evaluate, submit the team through
POST /team and check every answer against a local evaluator. The team
request is sent twice with the same Idempotency-Key to verify replay.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := simulate.Run(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "participants: %d\n", stats.Participants)
			fmt.Fprintf(out, "evaluations verified: %d/%d\n", stats.EvaluationsVerified, stats.EvaluationsSent)
			fmt.Fprintf(out, "team score: %d\n", stats.TeamScore)
			fmt.Fprintf(out, "replay verified: %t\n", stats.ReplayVerified)
			fmt.Fprintf(out, "duration: %s\n", stats.Duration)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "Base URL of the service")
	flags.IntVar(&cfg.Participants, "participants", cfg.Participants, "Number of synthetic participants")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for rankings, names and keys")
	flags.IntVar(&cfg.Swaps, "swaps", cfg.Swaps, "Random swaps applied to each ranking")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "Concurrent /evaluate submitters")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	flags.StringVar(&cfg.OutputFile, "output", "", "Write the generated submissions to this JSON file")
	return cmd
}
