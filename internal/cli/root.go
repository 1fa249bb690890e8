package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rcv",
		Short: "RCV - GenAI-assisted rule validation for transaction datasets",
		Long: `RCV validates tabular transaction data against regulatory rules written
in plain language. A language model parses the rules document into structured
constraints, the constraints are matched to dataset columns by similarity,
per-customer totals are aggregated, and each batch of records is evaluated
remotely. Violations are printed and can optionally be stored in MongoDB.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewValidateCmd())

	return rootCmd
}
