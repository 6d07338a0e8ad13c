package common

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crmarques/bitgo/coin"
)

const (
	completionTimeout        = 2 * time.Second
	maxCompletionSuggestions = 256
)

var (
	outputCompletionValues = []string{
		OutputAuto,
		OutputText,
		OutputJSON,
		OutputYAML,
	}
	inputFormatCompletionValues = []string{
		OutputJSON,
		OutputYAML,
	}
)

func completionContext(base context.Context) (context.Context, context.CancelFunc) {
	if base == nil {
		base = context.Background()
	}
	return context.WithTimeout(base, completionTimeout)
}

func RegisterOutputFlagCompletion(command *cobra.Command) {
	RegisterFlagValueCompletions(command, "output", outputCompletionValues)
}

func RegisterInputFormatFlagCompletion(command *cobra.Command) {
	RegisterFlagValueCompletions(command, "format", inputFormatCompletionValues)
}

func RegisterCoinFlagCompletion(command *cobra.Command) {
	supported := coin.Supported()
	values := make([]string, 0, len(supported))
	for _, item := range supported {
		values = append(values, item.String())
	}
	RegisterFlagValueCompletions(command, "coin", values)
}

func RegisterFlagValueCompletions(command *cobra.Command, flagName string, values []string) {
	_ = command.RegisterFlagCompletionFunc(flagName, func(
		_ *cobra.Command,
		_ []string,
		toComplete string,
	) ([]string, cobra.ShellCompDirective) {
		return CompleteValues(values, toComplete)
	})
}

func RegisterContextFlagCompletion(command *cobra.Command, deps CommandDependencies) {
	_ = command.RegisterFlagCompletionFunc("context", func(
		_ *cobra.Command,
		_ []string,
		toComplete string,
	) ([]string, cobra.ShellCompDirective) {
		return completeContextNames(deps, toComplete)
	})
}

// ContextArgCompletionFunc completes the first positional argument with
// context names.
func ContextArgCompletionFunc(deps CommandDependencies) cobra.CompletionFunc {
	return func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return completeContextNames(deps, toComplete)
	}
}

// WalletArgCompletionFunc completes the first positional argument with the
// ids of the selected coin's wallets. It stays silent when no session can be
// opened.
func WalletArgCompletionFunc(deps CommandDependencies, globalFlags *GlobalFlags) cobra.CompletionFunc {
	return func(command *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 || deps.Connect == nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		ctx, cancel := completionContext(command.Context())
		defer cancel()
		command.SetContext(ctx)

		scoped, err := OpenCoin(command, deps, globalFlags)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		page, err := scoped.Wallets(map[string]any{"limit": maxCompletionSuggestions}).Get(ctx)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return CompleteValues(walletIDs(page), toComplete)
	}
}

func completeContextNames(deps CommandDependencies, toComplete string) ([]string, cobra.ShellCompDirective) {
	service, err := RequireContexts(deps)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx, cancel := completionContext(context.Background())
	defer cancel()

	items, err := service.List(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return CompleteValues(names, toComplete)
}

func walletIDs(page any) []string {
	object, ok := page.(map[string]any)
	if !ok {
		return nil
	}
	items, _ := object["wallets"].([]any)

	ids := make([]string, 0, len(items))
	for _, item := range items {
		wallet, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := wallet["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func CompleteValues(values []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	trimmedPrefix := strings.TrimSpace(toComplete)
	unique := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmedValue := strings.TrimSpace(value)
		if trimmedValue == "" {
			continue
		}
		if trimmedPrefix != "" && !strings.HasPrefix(trimmedValue, trimmedPrefix) {
			continue
		}
		unique[trimmedValue] = struct{}{}
	}

	items := make([]string, 0, len(unique))
	for value := range unique {
		items = append(items, value)
	}
	sort.Strings(items)
	return items, cobra.ShellCompDirectiveNoFileComp
}
