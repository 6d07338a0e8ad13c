package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	configdomain "github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/core"
	"github.com/crmarques/bitgo/faults"
	"github.com/crmarques/bitgo/internal/cli/common"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return newCommandWithPrompter(deps, globalFlags, terminalPrompter{})
}

func newCommandWithPrompter(
	deps common.CommandDependencies,
	globalFlags *common.GlobalFlags,
	prompter configPrompter,
) *cobra.Command {
	command := &cobra.Command{
		Use:   "config",
		Short: "Manage contexts",
		Args:  cobra.NoArgs,
	}

	command.AddCommand(
		newPrintTemplateCommand(),
		newAddCommand(deps, globalFlags, prompter),
		newUpdateCommand(deps),
		newDeleteCommand(deps, prompter),
		newRenameCommand(deps, prompter),
		newListCommand(deps, globalFlags),
		newUseCommand(deps, prompter),
		newShowCommand(deps, globalFlags, prompter),
		newCurrentCommand(deps, globalFlags),
		newResolveCommand(deps, globalFlags),
		newEnvCommand(globalFlags),
	)

	return command
}

func newPrintTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "print-template",
		Short: "Print a context catalog YAML template with guidance comments",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			_, err := io.WriteString(command.OutOrStdout(), contextTemplateYAML)
			return err
		},
	}
}

func newAddCommand(
	deps common.CommandDependencies,
	globalFlags *common.GlobalFlags,
	prompter configPrompter,
) *cobra.Command {
	var input common.InputFlags
	var setCurrent bool

	command := &cobra.Command{
		Use:   "add [new-context-name]",
		Short: "Add contexts from input or create one interactively",
		Example: strings.Join([]string{
			"  bitgo config add --payload context.yaml",
			"  cat contexts.yaml | bitgo config add --set-current",
			"  bitgo config add dev",
		}, "\n"),
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			contexts, err := common.RequireContexts(deps)
			if err != nil {
				return err
			}

			name := selectedContextName(globalFlags)
			if len(args) > 0 {
				name = strings.TrimSpace(args[0])
			}

			if shouldUseInteractiveCreate(command, input, prompter) {
				cfg, err := promptCreateContext(command, prompter, name)
				if err != nil {
					return err
				}
				if err := contexts.Create(command.Context(), cfg); err != nil {
					return err
				}
				if setCurrent {
					return contexts.SetCurrent(command.Context(), cfg.Name)
				}
				return nil
			}

			items, catalogCurrent, err := decodeContextsStrict(command, input)
			if err != nil {
				return err
			}
			if name != "" {
				if len(items) != 1 {
					return common.ValidationError("a context name can only be given when adding one context", nil)
				}
				items[0].Name = name
			}

			for _, cfg := range items {
				if err := contexts.Create(command.Context(), cfg); err != nil {
					return err
				}
			}
			if !setCurrent {
				return nil
			}

			currentName, err := resolveSetCurrentContext(items, catalogCurrent)
			if err != nil {
				return err
			}
			return contexts.SetCurrent(command.Context(), currentName)
		},
	}

	command.Flags().StringVarP(&input.Payload, "payload", "f", "", "payload file path (use '-' to read from stdin)")
	command.Flags().StringVarP(&input.Format, "format", "i", common.OutputYAML, "input format: json|yaml")
	command.Flags().BoolVar(&setCurrent, "set-current", false, "set the added context as current")
	common.RegisterInputFormatFlagCompletion(command)
	return command
}

func resolveSetCurrentContext(items []configdomain.Context, catalogCurrent string) (string, error) {
	if len(items) == 1 {
		return items[0].Name, nil
	}
	if strings.TrimSpace(catalogCurrent) != "" {
		return strings.TrimSpace(catalogCurrent), nil
	}
	return "", common.ValidationError("--set-current needs a single context or a catalog with current-ctx", nil)
}

func newUpdateCommand(deps common.CommandDependencies) *cobra.Command {
	var input common.InputFlags

	command := &cobra.Command{
		Use:   "update",
		Short: "Replace a context from input",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			contexts, err := common.RequireContexts(deps)
			if err != nil {
				return err
			}
			cfg, err := decodeContextStrict(command, input)
			if err != nil {
				return err
			}
			return contexts.Update(command.Context(), cfg)
		},
	}

	command.Flags().StringVarP(&input.Payload, "payload", "f", "", "payload file path (use '-' to read from stdin)")
	command.Flags().StringVarP(&input.Format, "format", "i", common.OutputYAML, "input format: json|yaml")
	common.RegisterInputFormatFlagCompletion(command)
	return command
}

func newDeleteCommand(deps common.CommandDependencies, prompter configPrompter) *cobra.Command {
	return &cobra.Command{
		Use:               "delete [name]",
		Short:             "Delete a context (interactive when name is omitted)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: common.ContextArgCompletionFunc(deps),
		RunE: func(command *cobra.Command, args []string) error {
			contexts, err := common.RequireContexts(deps)
			if err != nil {
				return err
			}

			if len(args) > 0 {
				return contexts.Delete(command.Context(), args[0])
			}

			selected, err := selectContextForAction(command, contexts, prompter, "delete")
			if err != nil {
				return err
			}
			confirmed, err := prompter.Confirm(command, fmt.Sprintf("Delete context %q?", selected), false)
			if err != nil {
				return err
			}
			if !confirmed {
				return common.WriteText(command, common.OutputText, "delete canceled")
			}
			return contexts.Delete(command.Context(), selected)
		},
	}
}

func newRenameCommand(deps common.CommandDependencies, prompter configPrompter) *cobra.Command {
	return &cobra.Command{
		Use:               "rename [from] [to]",
		Short:             "Rename a context (interactive when args are omitted)",
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: common.ContextArgCompletionFunc(deps),
		RunE: func(command *cobra.Command, args []string) error {
			contexts, err := common.RequireContexts(deps)
			if err != nil {
				return err
			}

			fromName := ""
			toName := ""
			switch len(args) {
			case 2:
				fromName = args[0]
				toName = args[1]
			case 1:
				fromName = args[0]
				if !prompter.IsInteractive(command) {
					return common.ValidationError("new context name is required", nil)
				}
				toName, err = prompter.Input(command, "New context name: ", true)
				if err != nil {
					return err
				}
			default:
				fromName, err = selectContextForAction(command, contexts, prompter, "rename")
				if err != nil {
					return err
				}
				toName, err = prompter.Input(command, "New context name: ", true)
				if err != nil {
					return err
				}
			}

			return contexts.Rename(command.Context(), fromName, toName)
		},
	}
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contexts",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			contexts, err := common.RequireContexts(deps)
			if err != nil {
				return err
			}
			items, err := contexts.List(command.Context())
			if err != nil {
				return err
			}

			redacted := make([]configdomain.Context, 0, len(items))
			for _, item := range items {
				redacted = append(redacted, item.Redacted())
			}
			return common.WriteOutput(command, selectedOutputFormat(globalFlags), redacted, func(w io.Writer, value []configdomain.Context) error {
				for _, item := range value {
					if _, writeErr := fmt.Fprintln(w, item.Name); writeErr != nil {
						return writeErr
					}
				}
				return nil
			})
		},
	}
}

func newUseCommand(deps common.CommandDependencies, prompter configPrompter) *cobra.Command {
	return &cobra.Command{
		Use:               "use [name]",
		Short:             "Set current context (interactive when name is omitted)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: common.ContextArgCompletionFunc(deps),
		RunE: func(command *cobra.Command, args []string) error {
			contexts, err := common.RequireContexts(deps)
			if err != nil {
				return err
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			} else {
				name, err = selectContextForAction(command, contexts, prompter, "use")
				if err != nil {
					return err
				}
			}
			return contexts.SetCurrent(command.Context(), name)
		},
	}
}

func newShowCommand(
	deps common.CommandDependencies,
	globalFlags *common.GlobalFlags,
	prompter configPrompter,
) *cobra.Command {
	var showToken bool

	command := &cobra.Command{
		Use:   "show",
		Short: "Show a stored context from --context or interactive selection",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			contexts, err := common.RequireContexts(deps)
			if err != nil {
				return err
			}

			name := selectedContextName(globalFlags)
			if name == "" {
				name, err = selectContextForAction(command, contexts, prompter, "show --context")
				if err != nil {
					return err
				}
			}

			items, err := contexts.List(command.Context())
			if err != nil {
				return err
			}
			for _, item := range items {
				if item.Name != name {
					continue
				}
				if !showToken {
					item = item.Redacted()
				}
				return common.WriteOutput(command, common.OutputYAML, item, nil)
			}
			return faults.NewTypedError(faults.NotFoundError, fmt.Sprintf("context %q not found", name), nil)
		},
	}

	command.Flags().BoolVar(&showToken, "show-token", false, "print the stored access token")
	return command
}

func newCurrentCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Get current context",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			contexts, err := common.RequireContexts(deps)
			if err != nil {
				return err
			}
			current, err := contexts.GetCurrent(command.Context())
			if err != nil {
				return err
			}
			return common.WriteOutput(command, selectedOutputFormat(globalFlags), current.Redacted(), func(w io.Writer, value configdomain.Context) error {
				_, writeErr := fmt.Fprintln(w, value.Name)
				return writeErr
			})
		},
	}
}

func newResolveCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var overrides []string

	command := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the active context with environment and overrides applied",
		Example: strings.Join([]string{
			"  bitgo config resolve",
			"  bitgo config resolve --context prod",
			"  bitgo config resolve --set host=localhost:3080 --set secure=false",
		}, "\n"),
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			contexts, err := common.RequireContexts(deps)
			if err != nil {
				return err
			}

			parsed, err := parseOverrides(overrides)
			if err != nil {
				return err
			}
			resolved, err := contexts.ResolveContext(command.Context(), configdomain.ContextSelection{
				Name:      selectedContextName(globalFlags),
				Overrides: parsed,
			})
			if err != nil {
				return err
			}

			format := selectedOutputFormat(globalFlags)
			if format == common.OutputAuto || format == common.OutputText {
				format = common.OutputYAML
			}
			return common.WriteOutput(command, format, resolved.Redacted(), nil)
		},
	}

	command.Flags().StringArrayVar(&overrides, "set", nil, "override as key=value ("+strings.Join(core.OverrideKeys(), ", ")+")")
	return command
}

func newEnvCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables that override context fields",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			vars := core.OverrideEnvVars()
			vars["contexts-file"] = configdomain.ContextFileEnvVar

			return common.WriteOutput(command, selectedOutputFormat(globalFlags), vars, func(w io.Writer, value map[string]string) error {
				keys := make([]string, 0, len(value))
				for key := range value {
					keys = append(keys, key)
				}
				sort.Strings(keys)
				for _, key := range keys {
					if _, err := fmt.Fprintf(w, "%-28s %s\n", value[key], key); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func selectedContextName(globalFlags *common.GlobalFlags) string {
	if globalFlags == nil {
		return ""
	}
	return strings.TrimSpace(globalFlags.Context)
}

func selectedOutputFormat(globalFlags *common.GlobalFlags) string {
	if globalFlags == nil || strings.TrimSpace(globalFlags.Output) == "" {
		return common.OutputAuto
	}
	return globalFlags.Output
}

func parseOverrides(values []string) (map[string]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	parsed := make(map[string]string, len(values))
	for _, value := range values {
		parts := strings.SplitN(value, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, common.ValidationError("invalid override: expected key=value", nil)
		}
		parsed[strings.TrimSpace(parts[0])] = parts[1]
	}

	return parsed, nil
}
