package params

import "sort"

// Values is a flat set of request parameters keyed by API field name.
type Values map[string]any

func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	cloned := make(Values, len(v))
	for key, value := range v {
		cloned[key] = value
	}
	return cloned
}

func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Bag holds the fields of one resource instance that were explicitly set.
// A field that was never touched is absent, which is different from holding a
// zero value. The zero Bag is ready to use.
type Bag struct {
	values Values
}

func (b *Bag) Set(name string, value any) {
	if b.values == nil {
		b.values = Values{}
	}
	b.values[name] = value
}

func (b *Bag) Get(name string) (any, bool) {
	value, ok := b.values[name]
	return value, ok
}

func (b *Bag) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

func (b *Bag) Unset(name string) {
	delete(b.values, name)
}

func (b *Bag) Len() int {
	return len(b.values)
}

// Collect returns the touched fields. Nested values are shared, not copied.
func (b *Bag) Collect() Values {
	collected := make(Values, len(b.values))
	for key, value := range b.values {
		collected[key] = value
	}
	return collected
}

// Lookup returns the field value as T, or T's zero value when the field is
// unset or holds another type.
func Lookup[T any](b *Bag, name string) T {
	var zero T
	if b == nil {
		return zero
	}
	value, ok := b.values[name]
	if !ok {
		return zero
	}
	typed, ok := value.(T)
	if !ok {
		return zero
	}
	return typed
}
