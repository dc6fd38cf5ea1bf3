// Package calc implements the architecture calculators: value scoring, PERT
// estimation, risk exposure, total cost of ownership and budget reserves.
//
// Every calculator is a declarative field table, an ordered list of checks
// and a compute function. Evaluation is pure and safe for concurrent use.
package calc

import (
	"fmt"
	"math"
)

// Input is a decoded JSON request object.
type Input map[string]any

// Output holds the computed fields of a successful evaluation.
type Output map[string]any

// Result is the response record: either {"success": true, ...outputs} or
// {"error": message}, never both.
type Result map[string]any

// OK reports whether r is a success record.
func (r Result) OK() bool {
	ok, _ := r["success"].(bool)
	return ok
}

// Message returns the error message of a failure record.
func (r Result) Message() string {
	msg, _ := r["error"].(string)
	return msg
}

// Check is a domain constraint over extracted values.
type Check func(Values) error

// Calculator describes one calculator end to end.
type Calculator struct {
	Name    string
	Summary string
	Fields  []Field
	Checks  []Check
	Outputs []string
	Compute func(Values) Output
}

// NewResult builds the response record for the outcome of Run.
func NewResult(out Output, err error) Result {
	if err != nil {
		return Result{"error": err.Error()}
	}

	r := make(Result, len(out)+1)
	for k, v := range out {
		r[k] = v
	}
	r["success"] = true
	return r
}

// Evaluate runs the calculator and folds any error into a failure record.
func (c Calculator) Evaluate(in Input) Result {
	return NewResult(c.Run(in))
}

// Run validates in and computes the outputs. Validation happens in three
// passes: presence of required fields, typed extraction, then the checks in
// declaration order. The first failure is returned as a *FieldError.
func (c Calculator) Run(in Input) (Output, error) {
	if missing := c.missing(in); len(missing) > 0 {
		return nil, missingFields(c.required())
	}

	vals, err := extract(c.Fields, in)
	if err != nil {
		return nil, err
	}

	for _, check := range c.Checks {
		if err := check(vals); err != nil {
			return nil, err
		}
	}

	out := c.Compute(vals)
	for k, v := range out {
		f, ok := v.(float64)
		if !ok {
			continue
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, computeError(k, fmt.Errorf("%s is not a finite number", k))
		}
		out[k] = Round2(f)
	}

	return out, nil
}

func (c Calculator) required() []string {
	var names []string
	for _, f := range c.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

func (c Calculator) missing(in Input) []string {
	var names []string
	for _, f := range c.Fields {
		if !f.Required {
			continue
		}
		if _, ok := in[f.Name]; !ok {
			names = append(names, f.Name)
		}
	}
	return names
}

// FieldSchema is the wire form of a Field.
type FieldSchema struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Default  any    `json:"default,omitempty"`
}

// Schema is the wire form of a Calculator, served to front ends.
type Schema struct {
	Name    string        `json:"name"`
	Summary string        `json:"summary"`
	Fields  []FieldSchema `json:"fields"`
	Outputs []string      `json:"outputs"`
}

func (c Calculator) Describe() Schema {
	fields := make([]FieldSchema, 0, len(c.Fields))
	for _, f := range c.Fields {
		fields = append(fields, FieldSchema{
			Name:     f.Name,
			Type:     f.Kind.String(),
			Required: f.Required,
			Default:  f.Default,
		})
	}

	return Schema{
		Name:    c.Name,
		Summary: c.Summary,
		Fields:  fields,
		Outputs: append([]string(nil), c.Outputs...),
	}
}

var registry = []Calculator{ValueScore, PERT, Risk, TCO, Budget}

var byName = func() map[string]Calculator {
	m := make(map[string]Calculator, len(registry))
	for _, c := range registry {
		m[c.Name] = c
	}
	return m
}()

// Lookup finds a calculator by its route name, e.g. "valueScore".
func Lookup(name string) (Calculator, bool) {
	c, ok := byName[name]
	return c, ok
}

// All returns the calculators in route order.
func All() []Calculator {
	return append([]Calculator(nil), registry...)
}
