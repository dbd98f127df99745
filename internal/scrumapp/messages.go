package scrumapp

import (
	"context"

	"github.com/dotcommander/scrumdinger/internal/models"
)

// message is handled on the loop goroutine.
type message interface {
	apply(r *Root)
}

type mountMsg struct{}

func (mountMsg) apply(r *Root) {
	r.log.Info().Msg("mounted; loading scrums")
	r.spawn(func(ctx context.Context) message {
		scrums, err := r.store.Fetch(ctx)
		return loadResultMsg{scrums: scrums, err: err}
	})
}

type loadResultMsg struct {
	scrums []models.DailyScrum
	err    error
}

func (m loadResultMsg) apply(r *Root) {
	r.taskFinished()
	if m.err != nil {
		r.present(NewErrorWrapper(m.err, GuidanceLoadFailed))
		return
	}
	r.store.SetRecords(m.scrums)
	r.ready = true
	r.log.Info().Int("count", len(m.scrums)).Msg("scrums loaded")
}

type saveRequestedMsg struct{}

func (saveRequestedMsg) apply(r *Root) {
	snapshot := r.store.Records()
	r.log.Debug().Int("count", len(snapshot)).Msg("saving scrums")
	r.spawn(func(ctx context.Context) message {
		return saveResultMsg{err: r.store.Save(ctx, snapshot)}
	})
}

type saveResultMsg struct {
	err error
}

func (m saveResultMsg) apply(r *Root) {
	r.taskFinished()
	if m.err != nil {
		r.present(NewErrorWrapper(m.err, GuidanceSaveFailed))
		return
	}
	r.log.Info().Msg("scrums saved")
}

type dismissMsg struct{}

func (dismissMsg) apply(r *Root) {
	if r.errw == nil {
		r.log.Debug().Msg("dismiss ignored; no error shown")
		return
	}
	r.log.Info().Str("error_id", r.errw.ID()).Msg("error dismissed; restoring sample data")
	r.store.SetRecords(r.samples())
	r.errw = nil
	r.ready = true
}

type editMsg struct {
	fn    func([]models.DailyScrum) ([]models.DailyScrum, error)
	reply chan<- error
}

func (m editMsg) apply(r *Root) {
	next, err := m.fn(r.store.Records())
	if err == nil {
		r.store.SetRecords(next)
	}
	m.reply <- err
}

type idleMsg struct {
	reply chan struct{}
}

func (m idleMsg) apply(r *Root) {
	if r.pending == 0 {
		close(m.reply)
		return
	}
	r.idle = append(r.idle, m.reply)
}
