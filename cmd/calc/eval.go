package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"architect-calculators/internal/calc"
)

// errRejected signals a validation failure after the result was printed.
var errRejected = errors.New("calculation rejected")

var evalCmd = &cobra.Command{
	Use:   "eval <calculator> [json]",
	Short: "Evaluate a calculator",
	Long: `Evaluate a calculator against a JSON object. The object is read from stdin
when the argument is omitted. Exits non-zero when the input is rejected.`,
	Example: `  calc eval pert '{"optimistic":2,"mostLikely":4,"pessimistic":12}'
  echo '{"capEx":1000,"opExMonthly":100}' | calc eval tco`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	c, ok := calc.Lookup(args[0])
	if !ok {
		names := make([]string, 0, 5)
		for _, c := range calc.All() {
			names = append(names, c.Name)
		}
		return fmt.Errorf("unknown calculator %q (available: %s)", args[0], strings.Join(names, ", "))
	}

	var src io.Reader = cmd.InOrStdin()
	if len(args) == 2 {
		src = strings.NewReader(args[1])
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	obj, _ := v.(map[string]any)

	result := c.Evaluate(calc.Input(obj))
	if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if !result.OK() {
		return errRejected
	}
	return nil
}
