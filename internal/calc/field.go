package calc

import (
	"encoding/json"
	"fmt"
	"math"
)

// Kind is the JSON type a field is extracted as.
type Kind int

const (
	Number Kind = iota
	Integer
	Text
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Integer:
		return "integer"
	case Text:
		return "string"
	default:
		return "unknown"
	}
}

// Field is one row of a calculator's input table. Optional fields fall back
// to Default when absent.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Default  any
}

// Values holds the extracted, typed inputs of one evaluation.
// Integer fields are stored truncated toward zero.
type Values struct {
	nums  map[string]float64
	texts map[string]string
}

func (v Values) Num(name string) float64 {
	return v.nums[name]
}

func (v Values) Text(name string) string {
	return v.texts[name]
}

func extract(fields []Field, in Input) (Values, error) {
	vals := Values{
		nums:  make(map[string]float64, len(fields)),
		texts: make(map[string]string),
	}

	for _, f := range fields {
		raw, ok := in[f.Name]
		if !ok {
			raw = f.Default
		}

		switch f.Kind {
		case Text:
			s, ok := raw.(string)
			if !ok {
				return Values{}, typeError(f.Name, fmt.Errorf("field %q must be a string, got %s", f.Name, jsonType(raw)))
			}
			vals.texts[f.Name] = s
		default:
			n, ok := toFloat(raw)
			if !ok {
				return Values{}, typeError(f.Name, fmt.Errorf("field %q must be a number, got %s", f.Name, jsonType(raw)))
			}
			if f.Kind == Integer {
				n = math.Trunc(n)
			}
			vals.nums[f.Name] = n
		}
	}

	return vals, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, float32, int, int64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
