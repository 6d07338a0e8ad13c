package address

import (
	"github.com/spf13/cobra"

	"github.com/crmarques/bitgo/internal/cli/common"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "address",
		Short: "Manage wallet receive addresses",
		Args:  cobra.NoArgs,
	}

	command.AddCommand(
		newListCommand(deps, globalFlags),
		newGetCommand(deps, globalFlags),
		newCreateCommand(deps, globalFlags),
	)

	return command
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:               "list <wallet-id>",
		Short:             "List wallet addresses",
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
			return common.RunResource(command, globalFlags, scoped.Wallet(args[0]).Addresses(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:               "get <wallet-id> <address>",
		Short:             "Get one wallet address",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: common.WalletArgCompletionFunc(deps, globalFlags),
		RunE: func(command *cobra.Command, args []string) error {
			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.Wallet(args[0]).Addresses(nil).Find(args[1]))
		},
	}
}

func newCreateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:               "create <wallet-id> [label]",
		Short:             "Create a receive address",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: common.WalletArgCompletionFunc(deps, globalFlags),
		RunE: func(command *cobra.Command, args []string) error {
			data, err := common.ReadRequestData(command, assignments)
			if err != nil {
				return err
			}
			data = common.WithArgs(data, []string{"walletId", "label"}, args)

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.Wallet(args[0]).CreateAddress(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}
