package common

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/crmarques/bitgo/resource"
)

// Runner is a resource action ready for its terminal call.
type Runner interface {
	Run(ctx context.Context) (resource.Value, error)
}

func RunResource(command *cobra.Command, globalFlags *GlobalFlags, runner Runner) error {
	value, err := runner.Run(command.Context())
	if err != nil {
		return err
	}
	return WriteResponse(command, globalFlags, value)
}

// WithArgs returns data with each positional value stored under its field
// name; positional values win over --set.
func WithArgs(data map[string]any, fields []string, args []string) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	for idx, field := range fields {
		if idx < len(args) {
			data[field] = args[idx]
		}
	}
	return data
}
