package wallet

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/crmarques/bitgo/internal/cli/common"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "wallet",
		Short: "Manage wallets",
		Args:  cobra.NoArgs,
	}

	command.AddCommand(
		newListCommand(deps, globalFlags),
		newGetCommand(deps, globalFlags),
		newGetByAddressCommand(deps, globalFlags),
		newUpdateCommand(deps, globalFlags),
		newGenerateCommand(deps, globalFlags),
		newUnspentsCommand(deps, globalFlags),
		newMaxSpendableCommand(deps, globalFlags),
		newTransfersCommand(deps, globalFlags),
	)

	return command
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:   "list",
		Short: "List wallets of one or more coins",
		Example: strings.Join([]string{
			"  bitgo wallet list --coin tbtc",
			"  bitgo wallet list --coin tbtc --coin tltc --set limit=10",
		}, "\n"),
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			data, err := common.ReadRequestData(command, assignments)
			if err != nil {
				return err
			}

			coins, err := common.SelectedCoinTypes(globalFlags)
			if err != nil {
				return err
			}
			if len(coins) <= 1 {
				scoped, err := common.OpenCoin(command, deps, globalFlags)
				if err != nil {
					return err
				}
				return common.RunResource(command, globalFlags, scoped.Wallets(data))
			}

			session, err := common.OpenSession(command, deps, globalFlags)
			if err != nil {
				return err
			}
			results, err := session.Client.ListWallets(command.Context(), coins, data)
			if err != nil {
				return err
			}

			pages := make([]any, 0, len(results))
			for _, result := range results {
				pages = append(pages, map[string]any{"coin": result.Coin.String(), "wallets": result.Wallets})
			}
			return common.WriteResponse(command, globalFlags, pages)
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags
	var allTokens bool

	command := &cobra.Command{
		Use:               "get <wallet-id>",
		Short:             "Get a wallet",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: common.WalletArgCompletionFunc(deps, globalFlags),
		RunE: func(command *cobra.Command, args []string) error {
			data, err := common.ReadRequestData(command, assignments)
			if err != nil {
				return err
			}
			if command.Flags().Changed("all-tokens") {
				data["allTokens"] = allTokens
			}

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.Wallet(common.WithArgs(data, []string{"walletId"}, args)))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	command.Flags().BoolVar(&allTokens, "all-tokens", false, "include token balances")
	return command
}

func newGetByAddressCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get-by-address <address>",
		Short: "Get the wallet that owns an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.WalletByAddress(args[0]))
		},
	}
}

func newUpdateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:   "update <wallet-id>",
		Short: "Update wallet settings",
		Example: strings.Join([]string{
			"  bitgo wallet update 5b34 --set label=treasury",
			"  bitgo wallet update 5b34 --set approvalsRequired=2",
		}, "\n"),
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
			return common.RunResource(command, globalFlags, scoped.Wallet(args[0]).Update(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newGenerateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:   "generate [label]",
		Short: "Generate a wallet with BitGo-managed keys",
		Example: strings.Join([]string{
			"  bitgo wallet generate treasury --coin tbtc",
			"  bitgo wallet generate --set label=treasury --set enterprise=59cd",
		}, "\n"),
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			data, err := common.ReadRequestData(command, assignments)
			if err != nil {
				return err
			}
			data = common.WithArgs(data, []string{"label"}, args)
			if err := common.PromptMissingSecret(command, data, "passphrase", "Wallet passphrase: "); err != nil {
				return err
			}

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.GenerateWallet(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newUnspentsCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:               "unspents <wallet-id>",
		Short:             "List wallet unspents",
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
			return common.RunResource(command, globalFlags, scoped.Wallet(args[0]).Unspents(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newMaxSpendableCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:               "max-spendable <wallet-id>",
		Short:             "Get the maximum amount a wallet can send",
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
			return common.RunResource(command, globalFlags, scoped.Wallet(args[0]).MaximumSpendable(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newTransfersCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:               "transfers <wallet-id> [transfer-id]",
		Short:             "List wallet transfers or get one",
		Args:              cobra.RangeArgs(1, 2),
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
			data = common.WithArgs(data, []string{"walletId", "transferId"}, args)
			return common.RunResource(command, globalFlags, scoped.Wallet(args[0]).Transfers(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}
