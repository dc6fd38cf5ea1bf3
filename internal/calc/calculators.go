package calc

import "strconv"

func between(field, label string, lo, hi float64) Check {
	return func(v Values) error {
		if n := v.Num(field); n < lo || n > hi {
			return rangeError(label+" must be between "+formatBound(lo)+" and "+formatBound(hi), field)
		}
		return nil
	}
}

func nonNegative(field, label string) Check {
	return func(v Values) error {
		if v.Num(field) < 0 {
			return rangeError(label+" must be non-negative", field)
		}
		return nil
	}
}

func positive(field, label string) Check {
	return func(v Values) error {
		if v.Num(field) <= 0 {
			return rangeError(label+" must be positive", field)
		}
		return nil
	}
}

// ValueScore rates how worthwhile it is to automate a task with GenAI.
var ValueScore = Calculator{
	Name:    "valueScore",
	Summary: "GenAI value score: (scale x frequency) / manual complexity",
	Fields: []Field{
		{Name: "scale", Kind: Number, Required: true},
		{Name: "frequency", Kind: Number, Required: true},
		{Name: "manualComplexity", Kind: Number, Required: true},
	},
	Checks: []Check{
		between("scale", "Scale", 1, 10),
		between("frequency", "Frequency", 1, 10),
		between("manualComplexity", "ManualComplexity", 1, 10),
	},
	Outputs: []string{"valueScore"},
	Compute: func(v Values) Output {
		return Output{
			"valueScore": v.Num("scale") * v.Num("frequency") / v.Num("manualComplexity"),
		}
	},
}

// PERT is the three-point estimate. O, M and P must be non-negative and
// ordered; the two conditions are checked separately.
var PERT = Calculator{
	Name:    "pert",
	Summary: "PERT three-point estimate with 95% upper bound",
	Fields: []Field{
		{Name: "optimistic", Kind: Number, Required: true},
		{Name: "mostLikely", Kind: Number, Required: true},
		{Name: "pessimistic", Kind: Number, Required: true},
		{Name: "unit", Kind: Text, Default: "days"},
	},
	Checks: []Check{
		func(v Values) error {
			if v.Num("optimistic") < 0 || v.Num("mostLikely") < 0 || v.Num("pessimistic") < 0 {
				return rangeError("All values must be non-negative", "optimistic", "mostLikely", "pessimistic")
			}
			return nil
		},
		func(v Values) error {
			o, m, p := v.Num("optimistic"), v.Num("mostLikely"), v.Num("pessimistic")
			if o > m || m > p {
				return orderingError("Values must satisfy: Optimistic <= MostLikely <= Pessimistic", "optimistic", "mostLikely", "pessimistic")
			}
			return nil
		},
	},
	Outputs: []string{"expected", "sigma", "upper95", "unit"},
	Compute: func(v Values) Output {
		o, m, p := v.Num("optimistic"), v.Num("mostLikely"), v.Num("pessimistic")
		expected := (o + 4*m + p) / 6
		sigma := (p - o) / 6

		return Output{
			"expected": expected,
			"sigma":    sigma,
			"upper95":  expected + 2*sigma,
			"unit":     v.Text("unit"),
		}
	},
}

// Risk is the expected-value exposure of a single risk.
var Risk = Calculator{
	Name:    "risk",
	Summary: "Risk exposure: probability x impact",
	Fields: []Field{
		{Name: "probabilityPercent", Kind: Number, Required: true},
		{Name: "impact", Kind: Number, Required: true},
		{Name: "period", Kind: Text, Default: "/month"},
	},
	Checks: []Check{
		between("probabilityPercent", "Probability", 0, 100),
		nonNegative("impact", "Impact"),
	},
	Outputs: []string{"exposure", "period"},
	Compute: func(v Values) Output {
		return Output{
			"exposure": v.Num("probabilityPercent") / 100 * v.Num("impact"),
			"period":   v.Text("period"),
		}
	},
}

// TCO is capital expenditure plus monthly operating cost over a horizon.
var TCO = Calculator{
	Name:    "tco",
	Summary: "Total cost of ownership: capEx + opExMonthly x months",
	Fields: []Field{
		{Name: "capEx", Kind: Number, Required: true},
		{Name: "opExMonthly", Kind: Number, Required: true},
		{Name: "months", Kind: Integer, Default: 36},
	},
	Checks: []Check{
		nonNegative("capEx", "CapEx"),
		nonNegative("opExMonthly", "OpExMonthly"),
		positive("months", "Months"),
	},
	Outputs: []string{"tco"},
	Compute: func(v Values) Output {
		return Output{
			"tco": v.Num("capEx") + v.Num("opExMonthly")*v.Num("months"),
		}
	},
}

// Budget adds a known reserve and a percentage-based unknown reserve.
var Budget = Calculator{
	Name:    "budget",
	Summary: "Budget with known and unknown reserves",
	Fields: []Field{
		{Name: "baseBudget", Kind: Number, Required: true},
		{Name: "knownReserve", Kind: Number, Required: true},
		{Name: "unknownPercent", Kind: Number, Default: 20.0},
	},
	Checks: []Check{
		nonNegative("baseBudget", "BaseBudget"),
		nonNegative("knownReserve", "KnownReserve"),
		between("unknownPercent", "UnknownPercent", 0, 100),
	},
	Outputs: []string{"unknownReserve", "totalBudget"},
	Compute: func(v Values) Output {
		base := v.Num("baseBudget")
		unknown := base * (v.Num("unknownPercent") / 100)

		return Output{
			"unknownReserve": unknown,
			"totalBudget":    base + v.Num("knownReserve") + unknown,
		}
	},
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
