package query

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// ErrUnsupportedValue is returned when a parameter value is neither a scalar
// nor a flat list of scalars.
var ErrUnsupportedValue = errors.New("unsupported parameter value")

// Value is a parameter value: a single scalar or an ordered list of scalars.
// Scalars are stored already stringified.
type Value struct {
	list  bool
	items []string
}

func String(s string) Value {
	return Value{items: []string{s}}
}

func Int(n int64) Value {
	return Value{items: []string{strconv.FormatInt(n, 10)}}
}

func Uint(n uint64) Value {
	return Value{items: []string{strconv.FormatUint(n, 10)}}
}

func Float(f float64) Value {
	return Value{items: []string{formatFloat(f)}}
}

// Bool encodes true as "1" and false as "0".
func Bool(b bool) Value {
	if b {
		return Value{items: []string{"1"}}
	}
	return Value{items: []string{"0"}}
}

// Strings builds a list value from the given elements.
func Strings(items ...string) Value {
	return Value{list: true, items: append([]string{}, items...)}
}

// List builds a list value out of scalar values. Nested lists are rejected.
func List(items ...Value) (Value, error) {
	out := Value{list: true, items: make([]string, 0, len(items))}
	for i, item := range items {
		if item.list {
			return Value{}, fmt.Errorf("list element %d: %w: nested list", i, ErrUnsupportedValue)
		}
		out.items = append(out.items, item.items...)
	}
	return out, nil
}

// IsList reports whether the value encodes as an array.
func (v Value) IsList() bool {
	return v.list
}

// Items returns the stringified scalar(s) held by the value.
func (v Value) Items() []string {
	return append([]string{}, v.items...)
}

// ValueOf converts a dynamically typed value into a Value. Strings, bools,
// integer and float kinds are scalars; slices and arrays of those are lists.
// Anything else (maps, structs, nested slices, nil) fails with
// ErrUnsupportedValue.
func ValueOf(v any) (Value, error) {
	switch val := v.(type) {
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case []string:
		return Strings(val...), nil
	}

	if v == nil {
		return Value{}, fmt.Errorf("%w: nil", ErrUnsupportedValue)
	}

	rv := reflect.ValueOf(v)
	if s, ok := scalarOf(rv); ok {
		return String(s), nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			for elem.Kind() == reflect.Interface && !elem.IsNil() {
				elem = elem.Elem()
			}
			s, ok := scalarOf(elem)
			if !ok {
				return Value{}, fmt.Errorf("%w: list element %d of type %s", ErrUnsupportedValue, i, elem.Kind())
			}
			items = append(items, s)
		}
		return Value{list: true, items: items}, nil
	}

	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
}

func scalarOf(rv reflect.Value) (string, bool) {
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return Bool(rv.Bool()).items[0], true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float()), true
	}
	return "", false
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Param is a single key/value entry.
type Param struct {
	Key   string
	Value Value
}

// Params is an ordered parameter list. Keys may repeat.
type Params []Param

// With returns a copy of p with the entry appended.
func (p Params) With(key string, v Value) Params {
	out := make(Params, len(p), len(p)+1)
	copy(out, p)
	return append(out, Param{Key: key, Value: v})
}

// Add appends a dynamically typed value, converting it with ValueOf.
func (p *Params) Add(key string, v any) error {
	val, err := ValueOf(v)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", key, err)
	}
	*p = append(*p, Param{Key: key, Value: val})
	return nil
}

// Merge returns a new list holding p followed by other.
func (p Params) Merge(other Params) Params {
	out := make(Params, 0, len(p)+len(other))
	out = append(out, p...)
	return append(out, other...)
}

// Encode is shorthand for Encode(p, indexed).
func (p Params) Encode(indexed bool) string {
	return Encode(p, indexed)
}

// FromMap converts a map into Params. Maps carry no order, so keys are
// sorted to keep the output stable.
func FromMap(m map[string]any) (Params, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make(Params, 0, len(keys))
	for _, k := range keys {
		if err := params.Add(k, m[k]); err != nil {
			return nil, err
		}
	}
	return params, nil
}
