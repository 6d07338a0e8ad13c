package params

import (
	"fmt"
	"sort"

	"github.com/crmarques/bitgo/faults"
)

// Setter converts a loosely typed value and hands it to one fluent setter of
// R.
type Setter[R any] func(target R, value any) error

// Table maps API field names to the setters of a resource type. It is built
// once per type and stands in for name-based dynamic dispatch.
type Table[R any] map[string]Setter[R]

// Names lists the table's fields in lexical order.
func (t Table[R]) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Assign populates target from data:
//   - nil leaves target untouched;
//   - a mapping assigns each key with a setter in table and ignores the rest;
//   - any other value is assigned to the primary field.
//
// Presence of required fields is not checked here.
func Assign[R any](target R, table Table[R], primary string, data any) error {
	if data == nil {
		return nil
	}

	if mapping, ok := asMapping(data); ok {
		keys := make([]string, 0, len(mapping))
		for key := range mapping {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			setter, ok := table[key]
			if !ok {
				continue
			}
			if err := setter(target, mapping[key]); err != nil {
				return fieldError(key, err)
			}
		}
		return nil
	}

	if primary == "" {
		return faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("resource does not accept a scalar argument (got %T)", data),
			nil,
		)
	}
	setter, ok := table[primary]
	if !ok {
		return faults.NewTypedError(
			faults.InternalError,
			fmt.Sprintf("primary field %q has no setter", primary),
			nil,
		)
	}
	if err := setter(target, data); err != nil {
		return fieldError(primary, err)
	}
	return nil
}

func asMapping(data any) (map[string]any, bool) {
	switch typed := data.(type) {
	case map[string]any:
		return typed, true
	case Values:
		return typed, true
	case map[string]string:
		mapping := make(map[string]any, len(typed))
		for key, value := range typed {
			mapping[key] = value
		}
		return mapping, true
	default:
		return nil, false
	}
}

func fieldError(name string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, fmt.Sprintf("invalid value for %q", name), cause)
}

func String[R any](set func(R, string) R) Setter[R] {
	return func(target R, value any) error {
		converted, err := AsString(value)
		if err != nil {
			return err
		}
		set(target, converted)
		return nil
	}
}

func Bool[R any](set func(R, bool) R) Setter[R] {
	return func(target R, value any) error {
		converted, err := AsBool(value)
		if err != nil {
			return err
		}
		set(target, converted)
		return nil
	}
}

func Int[R any](set func(R, int) R) Setter[R] {
	return func(target R, value any) error {
		converted, err := AsInt64(value)
		if err != nil {
			return err
		}
		set(target, int(converted))
		return nil
	}
}

func Int64[R any](set func(R, int64) R) Setter[R] {
	return func(target R, value any) error {
		converted, err := AsInt64(value)
		if err != nil {
			return err
		}
		set(target, converted)
		return nil
	}
}

func Amount[R any](set func(R, string) R) Setter[R] {
	return func(target R, value any) error {
		converted, err := AsAmount(value)
		if err != nil {
			return err
		}
		set(target, converted)
		return nil
	}
}

func Object[R any](set func(R, map[string]any) R) Setter[R] {
	return func(target R, value any) error {
		converted, err := AsObject(value)
		if err != nil {
			return err
		}
		set(target, converted)
		return nil
	}
}

func List[R any](set func(R, []any) R) Setter[R] {
	return func(target R, value any) error {
		converted, err := AsList(value)
		if err != nil {
			return err
		}
		set(target, converted)
		return nil
	}
}

func Strings[R any](set func(R, []string) R) Setter[R] {
	return func(target R, value any) error {
		converted, err := AsStrings(value)
		if err != nil {
			return err
		}
		set(target, converted)
		return nil
	}
}

// Any passes the value through unchanged.
func Any[R any](set func(R, any) R) Setter[R] {
	return func(target R, value any) error {
		set(target, value)
		return nil
	}
}
