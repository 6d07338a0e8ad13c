package key

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/crmarques/bitgo/internal/cli/common"
)

func NewCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	command := &cobra.Command{
		Use:   "key",
		Short: "Manage keychains",
		Args:  cobra.NoArgs,
	}

	command.AddCommand(
		newListCommand(deps, globalFlags),
		newGetCommand(deps, globalFlags),
		newCreateCommand(deps, globalFlags),
		newGenerateCommand(deps, globalFlags),
	)

	return command
}

func newListCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:   "list",
		Short: "List keychains",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			data, err := common.ReadRequestData(command, assignments)
			if err != nil {
				return err
			}

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.Keychains(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newGetCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key-id>",
		Short: "Get a keychain",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.Keychains(args[0]))
		},
	}
}

func newCreateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:   "create [pub]",
		Short: "Register a keychain",
		Example: strings.Join([]string{
			"  bitgo key create xpub661MyMwAqRbcF --coin tbtc",
			"  bitgo key create --set pub=xpub661MyMwAqRbcF --set source=backup",
		}, "\n"),
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			data, err := common.ReadRequestData(command, assignments)
			if err != nil {
				return err
			}
			data = common.WithArgs(data, []string{"pub"}, args)

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.CreateKeychain(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}

func newGenerateCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var assignments common.AssignmentFlags

	command := &cobra.Command{
		Use:   "generate",
		Short: "Generate a keychain on the API host",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			data, err := common.ReadRequestData(command, assignments)
			if err != nil {
				return err
			}

			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.GenerateKeychain(data))
		},
	}

	common.BindAssignmentFlags(command, &assignments)
	return command
}
