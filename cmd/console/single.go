package main

import "github.com/spf13/cobra"

func newSingleCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "single",
		Short: "Rank the items alone",
		Long: `Print the item list, read one ranking as comma-separated item numbers
(for example 1,3,2,4,...) and show how far each item is from the expert rank.

With --interactive the ranking is arranged with the arrow keys instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newConsole(cmd).Single(cmd.Context(), interactive)
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Arrange the items with the keyboard picker")
	return cmd
}
