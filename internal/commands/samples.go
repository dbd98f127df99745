package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dotcommander/scrumdinger/internal/models"
	"github.com/dotcommander/scrumdinger/internal/output"
	"github.com/dotcommander/scrumdinger/internal/scrumapp"
)

// NewSamplesCmd creates the samples command.
func NewSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "Print the sample scrums used after an error is dismissed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type resp struct {
				Scrums []models.DailyScrum `json:"scrums"`
			}
			return output.PrintSuccess(resp{Scrums: models.SampleData()})
		},
	}
}

// NewResetCmd creates the reset command.
func NewResetCmd() *cobra.Command {
	return &cobra.Command{
		Annotations: map[string]string{annotationSaves: "true"},
		Use:         "reset",
		Short:       "Replace all scrums with the sample data and save",
		Long: "Replace all scrums with the sample data and save. Works even when the " +
			"stored data cannot be loaded, the same way dismissing a load error does in the window.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, stop, err := startRoot(ctx, logger)
			if err != nil {
				return cmdErr(err)
			}
			defer stop()

			st, err := resetToSamples(ctx, r)
			if err != nil {
				return cmdErr(err)
			}
			type resp struct {
				Scrums        []models.DailyScrum `json:"scrums"`
				LoadRecovered bool                `json:"load_recovered"`
			}
			return output.PrintSuccess(resp{Scrums: st.Records, LoadRecovered: st.recovered})
		},
	}
}

type resetResult struct {
	scrumapp.State
	recovered bool
}

// resetToSamples mounts r and resets it to the sample data. A failed load is
// dismissed, which performs the reset; otherwise the records are replaced.
func resetToSamples(ctx context.Context, r *scrumapp.Root) (resetResult, error) {
	r.Mount()
	if err := r.WaitIdle(ctx); err != nil {
		return resetResult{}, err
	}

	var res resetResult
	if st := r.State(); st.Phase == scrumapp.PhaseErrorShown {
		logger.Warn().Err(st.Error.Err()).Msg("stored scrums unreadable; resetting")
		r.DismissError()
		res.recovered = true
	} else if err := r.Edit(ctx, scrumapp.ReplaceAll(models.SampleData())); err != nil {
		return resetResult{}, err
	}

	r.RequestSave()
	st, err := settle(ctx, r)
	if err != nil {
		return resetResult{}, err
	}
	res.State = st
	return res, nil
}
