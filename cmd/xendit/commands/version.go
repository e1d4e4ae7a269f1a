package commands

import (
	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// VersionInfo is the output of the version command.
type VersionInfo struct {
	Version        string `json:"version"         yaml:"version"`
	Commit         string `json:"commit"          yaml:"commit"`
	Built          string `json:"built"           yaml:"built"`
	LibraryVersion string `json:"library_version" yaml:"library_version"`
}

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the Xendit CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version:        version,
				Commit:         commit,
				Built:          date,
				LibraryVersion: constants.Version,
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), format, info, func(table *tablewriter.Table) {
				table.Header("Property", "Value")
				_ = table.Append("Version", info.Version)
				_ = table.Append("Commit", info.Commit)
				_ = table.Append("Built", info.Built)
				_ = table.Append("Library", info.LibraryVersion)
			})
		},
	}
}
