package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dotcommander/scrumdinger/internal/app"
	"github.com/dotcommander/scrumdinger/internal/logging"
	"github.com/dotcommander/scrumdinger/internal/output"
	"github.com/dotcommander/scrumdinger/internal/scrumapp"
	"github.com/dotcommander/scrumdinger/internal/store"
)

//nolint:gochecknoglobals // set once by Execute
var logger = zerolog.Nop()

type printedError struct {
	err error
}

func (e printedError) Error() string {
	// The JSON error response is the output.
	return "error already printed"
}

func (e printedError) Unwrap() error { return e.err }

// guidedError is an error the root put on screen, with its guidance as the
// suggested action.
type guidedError struct {
	w *scrumapp.ErrorWrapper
}

func (e guidedError) Error() string           { return e.w.Message() }
func (e guidedError) Unwrap() error           { return e.w.Err() }
func (e guidedError) SuggestedAction() string { return e.w.Guidance() }

func (e guidedError) ErrorCode() string {
	var pe *store.PersistenceError
	if errors.As(e.w.Err(), &pe) {
		return pe.ErrorCode()
	}
	return "PERSISTENCE_FAILED"
}

func (e guidedError) Context() map[string]string {
	ctx := map[string]string{"error_id": e.w.ID()}
	var pe *store.PersistenceError
	if errors.As(e.w.Err(), &pe) {
		for k, v := range pe.Context() {
			ctx[k] = v
		}
	}
	return ctx
}

// openBackend resolves the configured backend and data path and opens it.
func openBackend() (store.Backend, error) {
	kind, err := app.GetBackend()
	if err != nil {
		return nil, err
	}
	path, err := app.GetDataPath(kind)
	if err != nil {
		return nil, err
	}
	return store.Open(kind, path)
}

// startRoot opens the data store and runs an application root over it. The
// returned stop function waits up to the configured save grace for pending
// saves, then tears everything down.
func startRoot(ctx context.Context, log zerolog.Logger) (*scrumapp.Root, func(), error) {
	backend, err := openBackend()
	if err != nil {
		return nil, nil, err
	}
	s := store.NewScrumStore(backend, logging.Component(log, "store"))
	r := scrumapp.New(s, scrumapp.WithLogger(logging.Component(log, "root")))

	runCtx, cancel := context.WithCancel(ctx)
	go func() { _ = r.Run(runCtx) }()

	stop := func() {
		graceCtx, cancelGrace := context.WithTimeout(context.Background(), app.SaveGrace())
		defer cancelGrace()
		if err := r.Shutdown(graceCtx); err != nil {
			log.Warn().Err(err).Msg("shutdown did not finish within save grace")
		}
		cancel()
		if err := s.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}
	return r, stop, nil
}

// settle waits for the root to go idle and reports the error it shows, if any.
func settle(ctx context.Context, r *scrumapp.Root) (scrumapp.State, error) {
	if err := r.WaitIdle(ctx); err != nil {
		return scrumapp.State{}, err
	}
	st := r.State()
	if !st.ShowsMain() {
		return st, guidedError{w: st.Error}
	}
	return st, nil
}

// withRoot mounts a root, waits for the initial load and hands it to fn. A
// load failure is reported with its guidance and fn is not called.
func withRoot(ctx context.Context, fn func(r *scrumapp.Root, st scrumapp.State) error) error {
	r, stop, err := startRoot(ctx, logger)
	if err != nil {
		return cmdErr(err)
	}
	defer stop()

	r.Mount()
	st, err := settle(ctx, r)
	if err != nil {
		return cmdErr(err)
	}
	if err := fn(r, st); err != nil {
		return cmdErr(err)
	}
	return nil
}

// applyAndSave runs fn through the root and saves the result.
func applyAndSave(ctx context.Context, r *scrumapp.Root, fn scrumapp.EditFunc) (scrumapp.State, error) {
	if err := r.Edit(ctx, fn); err != nil {
		return scrumapp.State{}, err
	}
	r.RequestSave()
	return settle(ctx, r)
}

func cmdErr(err error) error {
	if err == nil {
		return nil
	}
	var pe printedError
	if errors.As(err, &pe) {
		return err
	}
	ev := logger.Error().Err(err)
	var re store.RecoverableError
	if errors.As(err, &re) {
		ev = ev.Str("error_code", re.ErrorCode()).Fields(stringFields(re.Context()))
	}
	ev.Msg("command error")
	if perr := output.PrintError(err); perr != nil {
		return fmt.Errorf("print error: %w", perr)
	}
	return printedError{err: err}
}

func stringFields(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
