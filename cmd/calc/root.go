package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	// prettyFlag is the --pretty flag value
	prettyFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "calc",
	Short: "Architecture calculators",
	Long: `Evaluate the architecture calculators (valueScore, pert, risk, tco, budget)
locally, with the same validation and rounding as the HTTP API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&prettyFlag, "pretty", false, "Indent JSON output")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if prettyFlag {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
