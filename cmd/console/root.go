package main

import (
	"github.com/spf13/cobra"

	app "github.com/okian/moonsurvival/internal/app"
	"github.com/okian/moonsurvival/internal/console"
	"github.com/okian/moonsurvival/pkg/logger"
)

// newRootCmd builds the command tree. Running the root without a
// subcommand shows the mode menu.
func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "moonsurvival",
		Short: "Moon survival ranking exercise",
		Long: `Rank the 15 items a stranded crew would need to survive on the moon and
compare the ranking with the NASA expert ordering.

Available subcommands:
  single   - rank the items alone
  team     - collect one ranking per participant and build the team consensus
  score    - score a list of item names in one shot
  simulate - drive a running server with synthetic participants`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logger.SetLevelString(logLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newConsole(cmd).Menu(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newSingleCmd())
	rootCmd.AddCommand(newTeamCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newSimulateCmd())
	return rootCmd
}

// newConsole binds a console to the command's streams and a local service.
func newConsole(cmd *cobra.Command) *console.Console {
	return console.New(app.New(), cmd.InOrStdin(), cmd.OutOrStdout())
}
