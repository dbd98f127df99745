package commands

import (
	"github.com/spf13/cobra"

	"github.com/dotcommander/scrumdinger/internal/app"
	"github.com/dotcommander/scrumdinger/internal/output"
)

// NewDataCmd creates the data command group.
func NewDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Data file utilities",
	}

	cmd.AddCommand(newDataPathCmd())
	namespaceIndex(cmd)
	return cmd
}

func newDataPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the resolved backend and data path",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, kindSource, err := app.ResolveBackendDetailed()
			if err != nil {
				return cmdErr(err)
			}
			path, source, err := app.ResolveDataPathDetailed(kind)
			if err != nil {
				return cmdErr(err)
			}

			type resp struct {
				Backend       string `json:"backend"`
				BackendSource string `json:"backend_source"`
				Path          string `json:"path"`
				Source        string `json:"source"`
			}
			return output.PrintSuccess(resp{Backend: kind, BackendSource: kindSource, Path: path, Source: source})
		},
	}
	return cmd
}
