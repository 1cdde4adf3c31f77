// Package prepper implements the dataset preppers bound by the catalog.
package prepper

import (
	"fmt"
	"math"

	"github.com/spachava753/dscatalog/internal/models"
)

func checkRequired(item map[string]any, keys []string) error {
	for _, k := range keys {
		if _, ok := item[k]; !ok {
			return fmt.Errorf("%w: %q", models.ErrMissingKey, k)
		}
	}
	return nil
}

func stringField(item map[string]any, key string) (string, error) {
	s, ok := item[key].(string)
	if !ok {
		return "", fmt.Errorf("%q: expected string, got %T", key, item[key])
	}
	return s, nil
}

func mapField(item map[string]any, key string) (map[string]any, error) {
	m, ok := item[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%q: expected object, got %T", key, item[key])
	}
	return m, nil
}

func toStrings(v any) ([]string, error) {
	switch vv := v.(type) {
	case []string:
		return vv, nil
	case []any:
		out := make([]string, len(vv))
		for i, e := range vv {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("element %d: expected string, got %T", i, e)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list of strings, got %T", v)
	}
}

// toInt accepts the integer shapes produced by encoding/json and by Go literals.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}

func toInts(v any) ([]int, error) {
	switch vv := v.(type) {
	case []int:
		return vv, nil
	case []any:
		out := make([]int, len(vv))
		for i, e := range vv {
			n, err := toInt(e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list of integers, got %T", v)
	}
}

// maxChoices is the number of single-letter labels, A through Z.
const maxChoices = 26

func letter(i int) string {
	return string(rune('A' + i))
}

// letteredChoices maps choices onto A, B, C, ...
func letteredChoices(choices []string) (map[string]string, error) {
	if len(choices) > maxChoices {
		return nil, fmt.Errorf("%d choices exceeds the maximum of %d", len(choices), maxChoices)
	}
	out := make(map[string]string, len(choices))
	for i, c := range choices {
		out[letter(i)] = c
	}
	return out, nil
}

// stringArg reads an optional string constructor argument.
func stringArg(args map[string]any, key, def string) (string, error) {
	v, ok := args[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q: expected string, got %T", key, v)
	}
	return s, nil
}
