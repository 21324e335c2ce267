package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var errNoOrder = errors.New("pass item names as arguments or with --order")

func newScoreCmd() *cobra.Command {
	var order string

	cmd := &cobra.Command{
		Use:   "score [name...]",
		Short: "Score a list of item names",
		Long: `Score item names given in ranking order, either as arguments or as a
comma-separated --order list. Unknown names are reported with the closest
known item.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if order != "" {
				names = splitOrder(order)
			}
			if len(names) == 0 {
				return errNoOrder
			}
			return newConsole(cmd).Score(cmd.Context(), names)
		},
	}
	cmd.Flags().StringVar(&order, "order", "", "Comma-separated item names, most important first")
	return cmd
}

func splitOrder(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
