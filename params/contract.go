package params

import (
	"fmt"

	"github.com/crmarques/bitgo/faults"
)

// Contract declares the fields a resource accepts. Required fields are checked
// when a request is about to be composed, never while fields are assigned.
type Contract struct {
	resource string
	primary  string
	required []string
	optional []string
	declared map[string]struct{}
}

// NewContract panics when a name is declared twice or the primary field is
// not declared; contracts are package-level values, so this fails at init.
func NewContract(resource string, primary string, required []string, optional []string) Contract {
	declared := make(map[string]struct{}, len(required)+len(optional))
	for _, names := range [][]string{required, optional} {
		for _, name := range names {
			if _, exists := declared[name]; exists {
				panic(fmt.Sprintf("params: %s declares field %q more than once", resource, name))
			}
			declared[name] = struct{}{}
		}
	}
	if primary != "" {
		if _, ok := declared[primary]; !ok {
			panic(fmt.Sprintf("params: %s primary field %q is not declared", resource, primary))
		}
	}

	return Contract{
		resource: resource,
		primary:  primary,
		required: append([]string(nil), required...),
		optional: append([]string(nil), optional...),
		declared: declared,
	}
}

func (c Contract) Resource() string { return c.resource }

// Primary is the field a scalar constructor argument is assigned to. Empty
// when the resource has none.
func (c Contract) Primary() string { return c.primary }

func (c Contract) RequiredFields() []string {
	return append([]string(nil), c.required...)
}

func (c Contract) OptionalFields() []string {
	return append([]string(nil), c.optional...)
}

func (c Contract) Fields() []string {
	fields := make([]string, 0, len(c.required)+len(c.optional))
	fields = append(fields, c.required...)
	return append(fields, c.optional...)
}

func (c Contract) Declares(name string) bool {
	_, ok := c.declared[name]
	return ok
}

func (c Contract) IsRequired(name string) bool {
	for _, candidate := range c.required {
		if candidate == name {
			return true
		}
	}
	return false
}

// Validate reports every required field that is absent or blank in values,
// in declaration order.
func (c Contract) Validate(values Values) error {
	var missing []string
	for _, name := range c.required {
		value, ok := values[name]
		if !ok || isBlank(value) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return faults.NewMissingParameterError(c.resource, missing...)
}

func isBlank(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case []any:
		return len(typed) == 0
	case []string:
		return len(typed) == 0
	case []map[string]any:
		return len(typed) == 0
	case map[string]any:
		return len(typed) == 0
	case Values:
		return len(typed) == 0
	default:
		return false
	}
}
