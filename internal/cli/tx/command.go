package tx

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/crmarques/bitgo/internal/cli/common"
)

const (
	fieldWalletID         = "walletId"
	fieldWalletPassphrase = "walletPassphrase"
	fieldRecipients       = "recipients"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "tx",
		Short: "Build, sign and send wallet transactions",
		Args:  cobra.NoArgs,
	}

	command.AddCommand(
		newListCommand(deps, globalFlags),
		newGetCommand(deps, globalFlags),
		newBuildCommand(deps, globalFlags),
		newSignCommand(deps, globalFlags),
		newSendCommand(deps, globalFlags),
		newSendCoinsCommand(deps, globalFlags),
		newSendManyCommand(deps, globalFlags),
	)

	return command
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:               "list <wallet-id>",
		Short:             "List wallet transactions",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: common.WalletArgCompletionFunc(deps, globalFlags),
		RunE: func(command *cobra.Command, args []string) error {
			data, err := common.ReadRequestData(command, assignments)
			if err != nil {
				return err
			}

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.Wallet(args[0]).Transactions(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:               "get <wallet-id> <tx-id>",
		Short:             "Get a wallet transaction",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: common.WalletArgCompletionFunc(deps, globalFlags),
		RunE: func(command *cobra.Command, args []string) error {
			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.Wallet(args[0]).Transactions(args[1]))
		},
	}
}

func newBuildCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags
	var recipients []string

	command := &cobra.Command{
		Use:   "build <wallet-id>",
		Short: "Build an unsigned transaction",
		Example: strings.Join([]string{
			"  bitgo tx build 5b34 --coin tbtc --recipient 2N4X:150000",
			"  bitgo tx build 5b34 --set recipients='[{\"address\":\"2N4X\",\"amount\":\"150000\"}]' --set feeRate=20000",
		}, "\n"),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: common.WalletArgCompletionFunc(deps, globalFlags),
		RunE: func(command *cobra.Command, args []string) error {
			data, err := requestData(command, assignments, recipients, args)
			if err != nil {
				return err
			}

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.BuildTransaction(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	bindRecipientFlag(command, &recipients)
	return command
}

func newSignCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:   "sign <wallet-id>",
		Short: "Validate and print the parameters for signing a prebuilt transaction",
		Long: "Validate and print the parameters for signing a prebuilt transaction.\n" +
			"Signing happens offline with the wallet keys; nothing is sent to the API.",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: common.WalletArgCompletionFunc(deps, globalFlags),
		RunE: func(command *cobra.Command, args []string) error {
			data, err := requestData(command, assignments, nil, args)
			if err != nil {
				return err
			}

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.SignTransaction(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newSendCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:               "send <wallet-id> [tx-hex]",
		Short:             "Submit a half-signed transaction",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: common.WalletArgCompletionFunc(deps, globalFlags),
		RunE: func(command *cobra.Command, args []string) error {
			data, err := common.ReadRequestData(command, assignments)
			if err != nil {
				return err
			}
			data = common.WithArgs(data, []string{fieldWalletID, "txHex"}, args)

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.SendTransaction(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newSendCoinsCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:   "sendcoins <wallet-id> [address] [amount]",
		Short: "Send coins to one address",
		Example: strings.Join([]string{
			"  bitgo tx sendcoins 5b34 2N4X 150000 --coin tbtc",
			"  bitgo tx sendcoins 5b34 --set address=2N4X --set amount=150000 --set walletPassphrase=secret",
		}, "\n"),
		Args:              cobra.RangeArgs(1, 3),
		ValidArgsFunction: common.WalletArgCompletionFunc(deps, globalFlags),
		RunE: func(command *cobra.Command, args []string) error {
			data, err := common.ReadRequestData(command, assignments)
			if err != nil {
				return err
			}
			data = common.WithArgs(data, []string{fieldWalletID, "address", "amount"}, args)
			if err := common.PromptMissingSecret(command, data, fieldWalletPassphrase, "Wallet passphrase: "); err != nil {
				return err
			}

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.Wallet(args[0]).SendCoins(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newSendManyCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags
	var recipients []string

	command := &cobra.Command{
		Use:   "sendmany <wallet-id>",
		Short: "Send coins to several recipients in one transaction",
		Example: strings.Join([]string{
			"  bitgo tx sendmany 5b34 --coin tbtc --recipient 2N4X:150000 --recipient 2MzQ:25000",
		}, "\n"),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: common.WalletArgCompletionFunc(deps, globalFlags),
		RunE: func(command *cobra.Command, args []string) error {
			data, err := requestData(command, assignments, recipients, args)
			if err != nil {
				return err
			}
			if err := common.PromptMissingSecret(command, data, fieldWalletPassphrase, "Wallet passphrase: "); err != nil {
				return err
			}

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.Wallet(args[0]).SendMany(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	bindRecipientFlag(command, &recipients)
	return command
}

func bindRecipientFlag(command *cobra.Command, recipients *[]string) {
	command.Flags().StringArrayVar(recipients, "recipient", nil, "recipient as address:amount (repeatable)")
}

func requestData(command *cobra.Command, assignments common.AssignmentFlags, recipients []string, args []string) (map[string]any, error) {
	data, err := common.ReadRequestData(command, assignments)
	if err != nil {
		return nil, err
	}
	data = common.WithArgs(data, []string{fieldWalletID}, args)

	if len(recipients) == 0 {
		return data, nil
	}

	list, _ := data[fieldRecipients].([]any)
	for _, raw := range recipients {
		recipient, err := parseRecipient(raw)
		if err != nil {
			return nil, err
		}
		list = append(list, recipient)
	}
	data[fieldRecipients] = list
	return data, nil
}

// parseRecipient splits at the last colon so prefixed addresses such as
// bitcoincash:q... stay whole.
func parseRecipient(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	idx := strings.LastIndex(trimmed, ":")
	if idx <= 0 || idx == len(trimmed)-1 {
		return nil, common.ValidationError("invalid recipient \""+trimmed+"\": expected address:amount", nil)
	}
	return map[string]any{
		"address": strings.TrimSpace(trimmed[:idx]),
		"amount":  strings.TrimSpace(trimmed[idx+1:]),
	}, nil
}
