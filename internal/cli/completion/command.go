package completion

import (
	"bytes"
	"io"

	"github.com/spf13/cobra"
)

var (
	zshCompletionAppendPattern = []byte(`completions+=${comp}`)
	zshCompletionAppendQuoted  = []byte(`completions+=("${comp}")`)
	zshEvalRequestPattern      = []byte(`out=$(eval ${requestComp} 2>/dev/null)`)
	zshEvalRequestQuoted       = []byte(`out=$(eval "${requestComp}" 2>/dev/null)`)
)

type shell struct {
	name     string
	short    string
	generate func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name:  "bash",
		short: "Generate Bash completion",
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletionV2(w, true)
		},
	},
	{
		name:  "zsh",
		short: "Generate Zsh completion",
		generate: func(root *cobra.Command, w io.Writer) error {
			buffer := &bytes.Buffer{}
			if err := root.GenZshCompletion(buffer); err != nil {
				return err
			}
			_, err := w.Write(normalizeZshCompletion(buffer.Bytes()))
			return err
		},
	},
	{
		name:  "fish",
		short: "Generate Fish completion",
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name:  "powershell",
		short: "Generate PowerShell completion",
		generate: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

func NewCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Args:  cobra.NoArgs,
	}

	for _, item := range shells {
		command.AddCommand(&cobra.Command{
			Use:   item.name,
			Short: item.short,
			Args:  cobra.NoArgs,
			RunE: func(command *cobra.Command, _ []string) error {
				return item.generate(command.Root(), command.OutOrStdout())
			},
		})
	}

	return command
}

func normalizeZshCompletion(script []byte) []byte {
	normalized := bytes.ReplaceAll(script, zshCompletionAppendPattern, zshCompletionAppendQuoted)
	normalized = bytes.ReplaceAll(normalized, zshEvalRequestPattern, zshEvalRequestQuoted)
	return normalized
}
