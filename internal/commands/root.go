package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dotcommander/scrumdinger/internal/app"
	"github.com/dotcommander/scrumdinger/internal/logging"
	"github.com/dotcommander/scrumdinger/internal/output"
)

// Execute runs the CLI application.
func Execute(version string) error {
	logger = logging.Component(logging.New(os.Stderr, app.LogLevel()), "cli")

	root := newRootCmd(version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.ExecuteContext(ctx)
	if err != nil {
		var pe printedError
		if !errors.As(err, &pe) {
			logger.Error().Err(err).Msg("command failed")
		}
	}
	return err
}

func newRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "scrumdinger",
		Short:         "Track daily scrums, their attendees and meeting history",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				type resp struct {
					Version string `json:"version"`
				}
				return output.PrintSuccess(resp{Version: version})
			}
			return runTUI(cmd.Context())
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.EnsureConfigDir(); err != nil {
				return err
			}

			if dataPath, err := cmd.Flags().GetString("data-path"); err == nil && dataPath != "" {
				app.SetDataPathOverride(dataPath)
			}
			if backend, err := cmd.Flags().GetString("backend"); err == nil && backend != "" {
				app.SetBackendOverride(backend)
			}
			return nil
		},
	}

	root.PersistentFlags().String("data-path", "", "Override data file path")
	root.PersistentFlags().String("backend", "", "Storage backend: sqlite or file (default: $SCRUMDINGER_BACKEND)")
	root.Flags().BoolP("version", "v", false, "version for scrumdinger")

	root.AddCommand(NewTUICmd())
	root.AddCommand(NewScrumCmd())
	root.AddCommand(NewSamplesCmd())
	root.AddCommand(NewResetCmd())
	root.AddCommand(NewDataCmd())
	root.AddCommand(NewDoctorCmd())
	return root
}
