package common

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func IsInteractiveTerminal(command *cobra.Command) bool {
	in, inInfo, ok := fileFromReader(command.InOrStdin())
	if !ok || in == nil || inInfo == nil {
		return false
	}
	out, outInfo, ok := fileFromWriter(command.OutOrStdout())
	if !ok || out == nil || outInfo == nil {
		return false
	}

	return (inInfo.Mode()&os.ModeCharDevice) != 0 && (outInfo.Mode()&os.ModeCharDevice) != 0
}

func HasPipedInput(command *cobra.Command) bool {
	_, info, ok := fileFromReader(command.InOrStdin())
	if !ok || info == nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) == 0
}

// ReadSecret reads a value without echo when stdin is a terminal, and the
// first line of stdin otherwise. The prompt goes to stderr.
func ReadSecret(command *cobra.Command, prompt string) (string, error) {
	_, _ = fmt.Fprint(command.ErrOrStderr(), prompt)

	if in, _, ok := fileFromReader(command.InOrStdin()); ok && term.IsTerminal(int(in.Fd())) {
		secret, err := term.ReadPassword(int(in.Fd()))
		_, _ = fmt.Fprintln(command.ErrOrStderr())
		if err != nil {
			return "", ValidationError("failed to read secret", err)
		}
		return requireSecret(string(secret))
	}

	line, err := bufio.NewReader(command.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", ValidationError("failed to read secret", err)
	}
	return requireSecret(strings.TrimRight(line, "\r\n"))
}

func requireSecret(value string) (string, error) {
	if value == "" {
		return "", ValidationError("value is required", nil)
	}
	return value, nil
}

func fileFromReader(reader io.Reader) (*os.File, os.FileInfo, bool) {
	file, ok := reader.(*os.File)
	if !ok {
		return nil, nil, false
	}
	info, err := file.Stat()
	if err != nil {
		return nil, nil, false
	}
	return file, info, true
}

func fileFromWriter(writer io.Writer) (*os.File, os.FileInfo, bool) {
	file, ok := writer.(*os.File)
	if !ok {
		return nil, nil, false
	}
	info, err := file.Stat()
	if err != nil {
		return nil, nil, false
	}
	return file, info, true
}

// PromptMissingSecret fills field from the terminal when data lacks it and
// stdin is interactive. Otherwise data is left for the resource to reject.
func PromptMissingSecret(command *cobra.Command, data map[string]any, field string, prompt string) error {
	if value, ok := data[field]; ok && value != "" {
		return nil
	}
	if !IsInteractiveTerminal(command) {
		return nil
	}

	secret, err := ReadSecret(command, prompt)
	if err != nil {
		return err
	}
	data[field] = secret
	return nil
}
