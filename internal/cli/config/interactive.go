package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crmarques/bitgo/coin"
	configdomain "github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/internal/cli/common"
)

const noDefaultCoinOption = "none"

func shouldUseInteractiveCreate(command *cobra.Command, input common.InputFlags, prompter configPrompter) bool {
	if input.Payload != "" {
		return false
	}
	if common.HasPipedInput(command) {
		return false
	}
	return prompter.IsInteractive(command)
}

func promptCreateContext(command *cobra.Command, prompter configPrompter, contextName string) (configdomain.Context, error) {
	name := strings.TrimSpace(contextName)
	if name == "" {
		var err error
		name, err = prompter.Input(command, "Context name: ", true)
		if err != nil {
			return configdomain.Context{}, err
		}
	}

	storeToken, err := prompter.Confirm(command, "Store the access token in the catalog? (otherwise use BITGO_TOKEN)", true)
	if err != nil {
		return configdomain.Context{}, err
	}
	token := ""
	if storeToken {
		token, err = prompter.Secret(command, "Access token: ")
		if err != nil {
			return configdomain.Context{}, err
		}
	}

	host, err := prompter.Input(command, fmt.Sprintf("Host (defaults to %s): ", configdomain.DefaultHost), false)
	if err != nil {
		return configdomain.Context{}, err
	}
	if host != "" {
		if err := configdomain.ValidateHost(host); err != nil {
			return configdomain.Context{}, err
		}
	}

	secure, err := prompter.Confirm(command, "Use HTTPS?", true)
	if err != nil {
		return configdomain.Context{}, err
	}

	coinOptions := []string{noDefaultCoinOption}
	for _, item := range coin.Supported() {
		coinOptions = append(coinOptions, item.String())
	}
	selectedCoin, err := prompter.Select(command, "Default coin", coinOptions)
	if err != nil {
		return configdomain.Context{}, err
	}
	if selectedCoin == noDefaultCoinOption {
		selectedCoin = ""
	}

	cfg := configdomain.Context{
		Name:  name,
		Token: token,
		Host:  strings.TrimSpace(host),
		Coin:  selectedCoin,
	}
	if !secure {
		cfg.Secure = &secure
	}
	return cfg, nil
}

func selectContextForAction(
	command *cobra.Command,
	contexts configdomain.ContextService,
	prompter configPrompter,
	actionLabel string,
) (string, error) {
	items, err := contexts.List(command.Context())
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", common.ValidationError("no contexts available", nil)
	}
	if !prompter.IsInteractive(command) {
		return "", common.ValidationError(fmt.Sprintf("context name is required: bitgo config %s <name>", actionLabel), nil)
	}

	options := make([]string, 0, len(items))
	for _, item := range items {
		options = append(options, item.Name)
	}
	return prompter.Select(command, "Choose context", options)
}
