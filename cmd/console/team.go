package main

import "github.com/spf13/cobra"

func newTeamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team",
		Short: "Build a team consensus from several rankings",
		Long: `Ask for the number of participants, then a name and a ranking for each.
The team ranking orders items by their mean position; every participant
and the team are scored against the expert ranking.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newConsole(cmd).Team(cmd.Context())
		},
	}
}
