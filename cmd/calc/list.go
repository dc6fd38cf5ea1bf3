package main

import (
	"github.com/spf13/cobra"

	"architect-calculators/internal/calc"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List calculators and their input fields",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	all := calc.All()
	schemas := make([]calc.Schema, 0, len(all))
	for _, c := range all {
		schemas = append(schemas, c.Describe())
	}

	return writeJSON(cmd.OutOrStdout(), schemas)
}
