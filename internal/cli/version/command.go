package version

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crmarques/bitgo/config"
	"github.com/crmarques/bitgo/internal/cli/common"
)

// Set at build time with -ldflags.
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

type info struct {
	Version   string `json:"version" yaml:"version"`
	Client    string `json:"client" yaml:"client"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
}

func NewCommand(globalFlags *common.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value := info{Version: config.Version, Client: config.ClientName, Commit: Commit, BuildDate: BuildDate}
			return common.WriteOutput(cmd, globalFlags.Output, value, func(w io.Writer, item info) error {
				_, err := fmt.Fprintf(w, "%s v%s (%s) %s\n", item.Client, item.Version, item.Commit, item.BuildDate)
				return err
			})
		},
	}
}
