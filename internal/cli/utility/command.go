package utility

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/crmarques/bitgo/internal/cli/common"
)

type cipherFlags struct {
	input    string
	password string
	adata    string
}

// NewCommands returns the top-level commands that are not scoped to a
// wallet.
func NewCommands(deps common.CommandDependencies, globalFlags *common.GlobalFlags) []*cobra.Command {
	return []*cobra.Command{
		newEncryptCommand(deps, globalFlags),
		newDecryptCommand(deps, globalFlags),
		newPingCommand(deps, globalFlags),
		newVerifyAddressCommand(deps, globalFlags),
	}
}

func newEncryptCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var flags cipherFlags

	command := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a value with a password on the API host",
		Example: strings.Join([]string{
			"  bitgo encrypt --input xprv9s21 --password secret",
			"  bitgo encrypt --input xprv9s21   # prompts for the password",
		}, "\n"),
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			data, err := cipherData(command, flags, true)
			if err != nil {
				return err
			}

			session, err := common.OpenSession(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, session.Client.Utilities().Encrypt(data))
		},
	}

	bindCipherFlags(command, &flags, true)
	return command
}

func newDecryptCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	var flags cipherFlags

	command := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a value with a password on the API host",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			data, err := cipherData(command, flags, false)
			if err != nil {
				return err
			}

			session, err := common.OpenSession(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, session.Client.Utilities().Decrypt(data))
		},
	}

	bindCipherFlags(command, &flags, false)
	return command
}

func newPingCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API host answers",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			session, err := common.OpenSession(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, session.Client.Utilities().Ping())
		},
	}
}

func newVerifyAddressCommand(deps common.CommandDependencies, globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-address <address>",
		Short: "Check that an address is valid for the coin",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			scoped, err := common.OpenCoin(command, deps, globalFlags)
			if err != nil {
				return err
			}
			return common.RunResource(command, globalFlags, scoped.VerifyAddress(args[0]))
		},
	}
}

func bindCipherFlags(command *cobra.Command, flags *cipherFlags, withAdata bool) {
	command.Flags().StringVar(&flags.input, "input", "", "value to transform")
	command.Flags().StringVar(&flags.password, "password", "", "password (prompted when omitted on a terminal)")
	if withAdata {
		command.Flags().StringVar(&flags.adata, "adata", "", "additional authenticated data")
	}
}

func cipherData(command *cobra.Command, flags cipherFlags, withAdata bool) (map[string]any, error) {
	data := map[string]any{}
	if flags.input != "" {
		data["input"] = flags.input
	}
	if flags.password != "" {
		data["password"] = flags.password
	}
	if withAdata && flags.adata != "" {
		data["adata"] = flags.adata
	}

	if err := common.PromptMissingSecret(command, data, "password", "Password: "); err != nil {
		return nil, err
	}
	return data, nil
}
