package common

import "github.com/spf13/cobra"

type GlobalFlags struct {
	Context  string
	Coins    []string
	Debug    bool
	NoStatus bool
	NoColor  bool
	Output   string
	JQ       string
}

// AssignmentFlags carry the request fields of a resource command.
type AssignmentFlags struct {
	Set     []string
	Payload string
	Format  string
}

func BindGlobalFlags(command *cobra.Command, flags *GlobalFlags) {
	command.PersistentFlags().StringVarP(&flags.Context, "context", "c", "", "context name")
	command.PersistentFlags().StringSliceVar(&flags.Coins, "coin", nil, "coin identifier (repeatable where a command accepts several)")
	command.PersistentFlags().BoolVarP(&flags.Debug, "debug", "d", false, "enable debug output")
	command.PersistentFlags().BoolVarP(&flags.NoStatus, "no-status", "n", false, "hide status output")
	command.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false, "disable color output")
	command.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputAuto, "output format: auto|text|json|yaml")
	command.PersistentFlags().StringVar(&flags.JQ, "jq", "", "jq expression applied to the response")
	RegisterOutputFlagCompletion(command)
	RegisterCoinFlagCompletion(command)
}

func BindAssignmentFlags(command *cobra.Command, flags *AssignmentFlags) {
	command.Flags().StringArrayVarP(&flags.Set, "set", "s", nil, "request field as key=value (dotted keys nest, JSON literals are decoded; quote null as '\"null\"' for a string)")
	command.Flags().StringVarP(&flags.Payload, "payload", "f", "", "payload file path (use '-' to read object from stdin)")
	command.Flags().StringVarP(&flags.Format, "format", "i", OutputJSON, "payload format: json|yaml")
	RegisterInputFormatFlagCompletion(command)
}
