// Package scrumapp is the application root: it sequences the startup load,
// user-requested saves and the error view over a ScrumStore.
//
// All state changes happen on the goroutine running Run. Load and save run as
// separate tasks whose results are posted back to that loop.
package scrumapp

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/dotcommander/scrumdinger/internal/models"
	"github.com/dotcommander/scrumdinger/internal/reactive"
	"github.com/dotcommander/scrumdinger/internal/store"
)

// ErrStopped is returned by blocking calls made after the root has stopped.
var ErrStopped = errors.New("scrumapp: root stopped")

const inboxSize = 64

// Root is the single long-lived orchestrator of one window.
type Root struct {
	store   *store.ScrumStore
	samples func() []models.DailyScrum
	log     zerolog.Logger

	inbox chan message
	state *reactive.Signal[State]

	mounted atomic.Bool
	running atomic.Bool

	// loop-owned
	errw    *ErrorWrapper
	ready   bool
	pending int
	idle    []chan struct{}

	taskCtx    context.Context
	cancelTask context.CancelFunc
	tasks      sync.WaitGroup

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// Option configures a Root.
type Option func(*Root)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Root) { r.log = l }
}

// WithSamples replaces the sample dataset used on error recovery.
func WithSamples(fn func() []models.DailyScrum) Option {
	return func(r *Root) { r.samples = fn }
}

// New returns a root over s. Call Run to start it.
func New(s *store.ScrumStore, opts ...Option) *Root {
	taskCtx, cancel := context.WithCancel(context.Background())
	r := &Root{
		store:      s,
		samples:    models.SampleData,
		log:        zerolog.Nop(),
		inbox:      make(chan message, inboxSize),
		taskCtx:    taskCtx,
		cancelTask: cancel,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.state = reactive.New(State{Records: s.Records()})
	return r
}

// Run processes messages until ctx is cancelled or Shutdown is called.
// In-flight tasks are cancelled on return and their results dropped.
func (r *Root) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return errors.New("scrumapp: Run called twice")
	}
	defer close(r.done)
	defer r.cancelTask()

	r.log.Debug().Msg("root running")
	for {
		select {
		case <-ctx.Done():
			r.log.Debug().Msg("root context done")
			return ctx.Err()
		case <-r.stop:
			r.log.Debug().Msg("root stopped")
			return nil
		case m := <-r.inbox:
			m.apply(r)
			r.publish()
		}
	}
}

// Mount starts the one-time load. Later calls are ignored and return false.
func (r *Root) Mount() bool {
	if !r.mounted.CompareAndSwap(false, true) {
		return false
	}
	r.post(mountMsg{})
	return true
}

// RequestSave persists the current records once.
func (r *Root) RequestSave() {
	r.post(saveRequestedMsg{})
}

// DismissError resets the records to the sample dataset and clears the
// active error. It does nothing while no error is shown.
func (r *Root) DismissError() {
	r.post(dismissMsg{})
}

// Edit applies fn to the records on the loop and waits for it. If fn returns
// an error the records are left as they were.
func (r *Root) Edit(ctx context.Context, fn func([]models.DailyScrum) ([]models.DailyScrum, error)) error {
	reply := make(chan error, 1)
	if !r.postContext(ctx, editMsg{fn: fn, reply: reply}) {
		return r.stoppedErr(ctx)
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrStopped
	}
}

// WaitIdle blocks until every message posted before it has been handled and
// no load or save is in flight.
func (r *Root) WaitIdle(ctx context.Context) error {
	reply := make(chan struct{})
	if !r.postContext(ctx, idleMsg{reply: reply}) {
		return r.stoppedErr(ctx)
	}
	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrStopped
	}
}

// State returns the latest published snapshot.
func (r *Root) State() State {
	return r.state.Get()
}

// Subscribe calls fn with every published snapshot, on the loop goroutine.
func (r *Root) Subscribe(fn func(State)) func() {
	return r.state.Subscribe(fn)
}

// Shutdown waits for pending tasks until ctx expires, then cancels whatever
// is left and stops the loop.
func (r *Root) Shutdown(ctx context.Context) error {
	var waitErr error
	if r.running.Load() {
		waitErr = r.WaitIdle(ctx)
		if errors.Is(waitErr, ErrStopped) {
			waitErr = nil
		}
		if waitErr != nil {
			r.log.Warn().Err(waitErr).Int("pending", r.State().Pending).Msg("shutdown before pending tasks finished")
		}
	}

	r.stopOnce.Do(func() { close(r.stop) })
	r.cancelTask()
	if r.running.Load() {
		<-r.done
	}
	r.tasks.Wait()
	return waitErr
}

func (r *Root) post(m message) {
	r.postContext(context.Background(), m)
}

func (r *Root) postContext(ctx context.Context, m message) bool {
	select {
	case <-r.done:
		return false
	case <-r.stop:
		return false
	default:
	}
	select {
	case r.inbox <- m:
		return true
	case <-r.done:
		return false
	case <-r.stop:
		return false
	case <-ctx.Done():
		return false
	}
}

func (r *Root) stoppedErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrStopped
}

// spawn runs fn as a task and posts its result back to the loop.
func (r *Root) spawn(fn func(ctx context.Context) message) {
	r.pending++
	r.tasks.Add(1)
	go func() {
		defer r.tasks.Done()
		result := fn(r.taskCtx)
		if r.taskCtx.Err() != nil {
			return
		}
		r.post(result)
	}()
}

func (r *Root) taskFinished() {
	r.pending--
	if r.pending > 0 {
		return
	}
	for _, ch := range r.idle {
		close(ch)
	}
	r.idle = nil
}

func (r *Root) present(w *ErrorWrapper) {
	if r.errw != nil {
		r.log.Warn().
			Str("replaced_id", r.errw.ID()).
			Str("error_id", w.ID()).
			Msg("replacing active error")
	}
	r.errw = w
	r.log.Error().
		Err(w.Err()).
		Str("error_id", w.ID()).
		Str("guidance", w.Guidance()).
		Msg("showing error")
}

func (r *Root) publish() {
	phase := PhaseNoError
	if r.errw != nil {
		phase = PhaseErrorShown
	}
	r.state.Set(State{
		Phase:   phase,
		Records: r.store.Records(),
		Error:   r.errw,
		Ready:   r.ready,
		Pending: r.pending,
	})
}
