// Package query produces filtered, sorted and limited views over record
// collections without mutating them. Fields are addressed by their JSON
// wire names; unknown field names never match and never affect ordering.
package query

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// In is a membership test for a Where clause: the field must equal one of
// the listed values.
type In []any

// Order names a single sort key. Multi-key sorting is not supported; the
// comparison is lexicographic on the string representation of the field
// value, and a missing field on either side compares equal.
type Order struct {
	Field     string
	Direction Direction
}

// Options configures a view. The zero value matches everything, keeps
// insertion order and applies no limit.
type Options struct {
	Where   map[string]any
	OrderBy *Order
	Limit   int
}

// Apply returns a new slice holding the records that match opts.Where,
// ordered by opts.OrderBy and truncated to opts.Limit. The input is never
// mutated and Apply never fails.
func Apply[T any](records []T, opts Options) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if matches(r, opts.Where) {
			out = append(out, r)
		}
	}

	if opts.OrderBy != nil && opts.OrderBy.Field != "" {
		ord := *opts.OrderBy
		sort.SliceStable(out, func(i, j int) bool {
			a, aok := fieldString(out[i], ord.Field)
			b, bok := fieldString(out[j], ord.Field)
			if !aok || !bok {
				return false
			}
			if ord.Direction == Desc {
				return b < a
			}
			return a < b
		})
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

func matches[T any](record T, where map[string]any) bool {
	for key, want := range where {
		got, ok := fieldValue(record, key)
		if !ok {
			return false
		}
		if members, isIn := want.(In); isIn {
			found := false
			for _, m := range members {
				if valueEqual(got, m) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
			continue
		}
		if !valueEqual(got, want) {
			return false
		}
	}
	return true
}

// fieldValue resolves a record field by its JSON tag name. Nil optional
// fields and unknown names report ok=false.
func fieldValue(record any, name string) (any, bool) {
	v := reflect.ValueOf(record)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, false
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if jsonName(t.Field(i)) != name {
			continue
		}
		fv := v.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				return nil, false
			}
			fv = fv.Elem()
		}
		return fv.Interface(), true
	}
	return nil, false
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

// valueEqual compares a field value against a filter value. Numeric kinds
// are widened before comparing so an untyped int literal matches any integer
// field; cross-type matches (string vs number) fail as they do in the wire
// contract.
func valueEqual(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		return bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// fieldString renders a field value for ordering. Timestamps format as
// RFC 3339 in UTC, which sorts chronologically.
func fieldString(record any, name string) (string, bool) {
	v, ok := fieldValue(record, name)
	if !ok {
		return "", false
	}
	if t, isTime := v.(time.Time); isTime {
		return t.UTC().Format(time.RFC3339), true
	}
	return fmt.Sprintf("%v", v), true
}
