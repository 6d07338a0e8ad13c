package resource

import (
	"github.com/crmarques/bitgo/params"
)

// Value is a decoded JSON response, returned exactly as the API sent it.
type Value = any

// Spec is the static description of one resource action.
type Spec struct {
	Name     string
	Method   string
	Path     string
	Contract params.Contract
	// Dispatches is false for builder-only actions whose terminal operation
	// validates and returns the collected parameters without a network call.
	Dispatches bool
}
