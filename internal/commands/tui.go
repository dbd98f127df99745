package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dotcommander/scrumdinger/internal/app"
	"github.com/dotcommander/scrumdinger/internal/logging"
	"github.com/dotcommander/scrumdinger/internal/tui"
)

// NewTUICmd creates the tui command.
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the scrum window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context())
		},
	}
}

// runTUI logs to a file while the window owns the terminal.
func runTUI(ctx context.Context) error {
	logPath, err := app.LogFilePath()
	if err != nil {
		return cmdErr(err)
	}
	log, closer, err := logging.OpenFile(logPath, app.LogLevel())
	if err != nil {
		return cmdErr(err)
	}
	defer func() { _ = closer.Close() }()
	log = logging.Component(log, "tui")

	r, stop, err := startRoot(ctx, log)
	if err != nil {
		return cmdErr(err)
	}
	defer stop()

	log.Info().Msg("window opened")
	if err := tui.Run(ctx, r); err != nil {
		return cmdErr(err)
	}
	log.Info().Msg("window closed")
	return nil
}
