// Package tui is the terminal window: a scrum list with detail and editor
// screens, and a modal error view driven by the application root.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dotcommander/scrumdinger/internal/scrumapp"
)

// Controller is the part of the application root the window drives.
type Controller interface {
	Mount() bool
	RequestSave()
	DismissError()
	Edit(ctx context.Context, fn scrumapp.EditFunc) error
	State() scrumapp.State
}

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
)

// stateMsg carries a snapshot published by the root.
type stateMsg scrumapp.State

// editDoneMsg reports the outcome of an edit submitted from a command.
type editDoneMsg struct {
	err error
}

// Model is the bubbletea model of the window.
type Model struct {
	ctrl     Controller
	state    scrumapp.State
	screen   screen
	cursor   int
	selected string
	form     *scrumForm
	status   string
	now      func() time.Time
	quitting bool
}

// New returns a model bound to ctrl.
func New(ctrl Controller) Model {
	return Model{
		ctrl:  ctrl,
		state: ctrl.State(),
		now:   time.Now,
	}
}

// Init mounts the root, which starts the one-time load.
func (m Model) Init() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Mount()
		return nil
	}
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool { return m.quitting }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = scrumapp.State(msg)
		m.reconcile()
		return m, nil
	case editDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = ""
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.state.ShowsMain() {
			return m.updateErrorModal(msg)
		}
		switch m.screen {
		case screenDetail:
			return m.updateDetail(msg)
		case screenForm:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

// reconcile keeps the cursor and selection valid after the records change,
// e.g. after a reset to the sample data.
func (m *Model) reconcile() {
	if n := len(m.state.Records); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if m.screen == screenDetail {
		if _, ok := scrumapp.FindScrum(m.state.Records, m.selected); !ok {
			m.screen = screenList
			m.selected = ""
		}
	}
	if !m.state.ShowsMain() && m.screen == screenForm {
		m.screen = screenList
		m.form = nil
	}
}

func (m Model) updateErrorModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		ctrl := m.ctrl
		return m, func() tea.Msg {
			ctrl.DismissError()
			return nil
		}
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Records)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.state.Records) {
			m.selected = m.state.Records[m.cursor].ID
			m.screen = screenDetail
		}
	case "n":
		if m.state.Ready {
			m.form = newScrumForm()
			m.screen = screenForm
		}
	case "d":
		if m.state.Ready && m.cursor < len(m.state.Records) {
			return m, m.submit(scrumapp.DeleteScrum(m.state.Records[m.cursor].ID))
		}
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s, ok := scrumapp.FindScrum(m.state.Records, m.selected)
	if !ok {
		m.screen = screenList
		return m, nil
	}
	switch msg.String() {
	case "esc", "backspace", "left", "h":
		m.screen = screenList
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "e":
		m.form = editScrumForm(s)
		m.screen = screenForm
	case "m":
		return m, m.submit(scrumapp.RecordMeeting(s.ID, finishedMeeting(s, m.now())))
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.Type {
	case tea.KeyEsc:
		m.form = nil
		if m.selected != "" && !f.isNew {
			m.screen = screenDetail
		} else {
			m.screen = screenList
		}
		return m, nil
	case tea.KeyCtrlS:
		scrum, err := f.result()
		if err != nil {
			f.err = err.Error()
			return m, nil
		}
		m.form = nil
		if f.isNew {
			m.screen = screenList
			m.cursor = len(m.state.Records)
			return m, m.submit(scrumapp.AddScrum(scrum))
		}
		m.screen = screenDetail
		return m, m.submit(scrumapp.ReplaceScrum(scrum))
	case tea.KeyTab, tea.KeyDown:
		f.next()
	case tea.KeyShiftTab, tea.KeyUp:
		f.prev()
	case tea.KeyLeft:
		f.adjust(-1)
	case tea.KeyRight:
		f.adjust(1)
	case tea.KeyBackspace:
		f.backspace()
	case tea.KeySpace:
		f.typeRunes([]rune{' '})
	case tea.KeyRunes:
		f.typeRunes(msg.Runes)
	}
	f.err = ""
	return m, nil
}

// submit applies fn through the root and, when it succeeds, requests a save:
// a finished edit session is what persists the records.
func (m Model) submit(fn scrumapp.EditFunc) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		err := ctrl.Edit(context.Background(), fn)
		if err == nil {
			ctrl.RequestSave()
		}
		return editDoneMsg{err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.state.ShowsMain() {
		return m.viewErrorModal()
	}
	var b strings.Builder
	switch m.screen {
	case screenDetail:
		m.viewDetail(&b)
	case screenForm:
		m.viewForm(&b)
	default:
		m.viewList(&b)
	}
	if m.status != "" {
		b.WriteString("\n" + errStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m Model) viewErrorModal() string {
	w := m.state.Error
	body := titleStyle.Render("An error has occurred!") + "\n" +
		w.Message() + "\n\n" +
		dimStyle.Render(w.Guidance()) + "\n\n" +
		helpStyle.Render("enter: dismiss • q: quit")
	return modalStyle.Render(body) + "\n"
}

func (m Model) viewList(b *strings.Builder) {
	b.WriteString(titleStyle.Render("Daily Scrums") + "\n")
	if !m.state.Ready && m.state.Pending > 0 {
		b.WriteString(dimStyle.Render("Loading…") + "\n")
	}
	if len(m.state.Records) == 0 && m.state.Ready {
		b.WriteString(dimStyle.Render("No scrums yet. Press n to add one.") + "\n")
	}
	for i, s := range m.state.Records {
		line := fmt.Sprintf("%s\n%d attendees • %d min", s.Title, len(s.Attendees), s.LengthInMinutes)
		b.WriteString(cardStyle(s.Theme, i == m.cursor).Render(line) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓: move • enter: open • n: new • d: delete • q: quit") + "\n")
}

func (m Model) viewDetail(b *strings.Builder) {
	s, ok := scrumapp.FindScrum(m.state.Records, m.selected)
	if !ok {
		return
	}
	b.WriteString(titleStyle.Render(s.Title) + "\n")
	fmt.Fprintf(b, "%s %d minutes\n", labelStyle.Render("Length"), s.LengthInMinutes)
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render("Theme"), cardStyle(s.Theme, false).Width(12).Render(string(s.Theme)))
	b.WriteString(labelStyle.Render("Attendees") + "\n")
	for _, a := range s.Attendees {
		b.WriteString("  • " + a.Name + "\n")
	}
	b.WriteString(labelStyle.Render("History") + "\n")
	if len(s.History) == 0 {
		b.WriteString(dimStyle.Render("  No meetings yet") + "\n")
	}
	for _, h := range s.History {
		fmt.Fprintf(b, "  %s  %d min, %d attendees\n", h.Date.Format("Jan 2, 2006 15:04"), h.LengthInMinutes, len(h.Attendees))
	}
	b.WriteString("\n" + helpStyle.Render("e: edit • m: meeting done • esc: back • q: quit") + "\n")
}

func (m Model) viewForm(b *strings.Builder) {
	f := m.form
	heading := "Edit " + f.scrum.Title
	if f.isNew {
		heading = "New Scrum"
	}
	b.WriteString(titleStyle.Render(heading) + "\n")

	values := [fieldCount]string{
		f.scrum.Title,
		fmt.Sprintf("%d minutes", f.scrum.LengthInMinutes),
		cardStyle(f.scrum.Theme, false).Width(12).Render(string(f.scrum.Theme)),
		f.attendees,
	}
	for i := field(0); i < fieldCount; i++ {
		label := labelStyle.Render(fieldLabels[i])
		value := values[i]
		if i == f.focus {
			label = focusStyle.Render("› " + fieldLabels[i])
			if i == fieldTitle || i == fieldAttendees {
				value += "▏"
			}
		}
		b.WriteString(label + " " + value + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + errStyle.Render(f.err) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab: next field • ←/→: adjust • ctrl+s: done • esc: cancel") + "\n")
}
