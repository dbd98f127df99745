package commands

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/scrumdinger/internal/app"
	"github.com/dotcommander/scrumdinger/internal/output"
	"github.com/dotcommander/scrumdinger/internal/store"
)

// NewDoctorCmd creates the doctor command.
func NewDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and that the stored scrums can be loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := app.GetBackend()
			if err != nil {
				return cmdErr(err)
			}
			path, source, err := app.ResolveDataPathDetailed(kind)
			if err != nil {
				return cmdErr(err)
			}

			type resp struct {
				Backend     string              `json:"backend"`
				DataPath    string              `json:"data_path"`
				DataSource  string              `json:"data_source"`
				OpenOK      bool                `json:"open_ok"`
				OpenErr     string              `json:"open_error,omitempty"`
				LoadOK      bool                `json:"load_ok"`
				LoadErr     string              `json:"load_error,omitempty"`
				Scrums      int                 `json:"scrums"`
				Schema      *store.SchemaStatus `json:"schema,omitempty"`
				Diagnostics []store.Diagnostic  `json:"diagnostics"`
				Hint        string              `json:"hint,omitempty"`
			}
			r := resp{Backend: kind, DataPath: path, DataSource: source, Diagnostics: []store.Diagnostic{}}

			// Opening a sqlite backend migrates it, so read the schema first.
			if kind == app.BackendSQLite {
				schema, err := readSchemaIfPresent(path)
				if err != nil {
					return cmdErr(err)
				}
				r.Schema = schema
			}

			backend, err := store.Open(kind, path)
			if err != nil {
				r.OpenErr = err.Error()
				r.Hint = "Set data_path to a writable location or use --data-path."
				return output.PrintSuccess(r)
			}
			defer func() { _ = backend.Close() }()
			r.OpenOK = true

			scrums, err := backend.Load(cmd.Context())
			if err != nil {
				r.LoadErr = err.Error()
				r.Hint = "Run `scrumdinger reset` to replace unreadable data with the sample scrums."
				return output.PrintSuccess(r)
			}
			r.LoadOK = true
			r.Scrums = len(scrums)

			if diags := store.RunDiagnostics(scrums, r.Schema); diags != nil {
				r.Diagnostics = diags
			}
			return output.PrintSuccess(r)
		},
	}
	return cmd
}

// readSchemaIfPresent returns nil when there is no database file yet.
func readSchemaIfPresent(path string) (*store.SchemaStatus, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	st, err := store.ReadSchemaStatus(path)
	if err != nil {
		return nil, err
	}
	return &st, nil
}
