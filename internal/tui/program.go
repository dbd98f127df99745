package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dotcommander/scrumdinger/internal/scrumapp"
)

// Root is what Run needs from the application root.
type Root interface {
	Controller
	Subscribe(fn func(scrumapp.State)) func()
}

// Run shows the window until the user quits or ctx is cancelled. Root state
// changes reach the model as messages. Leaving the window requests a final
// save unless an error is on screen or the records were never loaded; the
// caller waits for it when shutting the root down.
func Run(ctx context.Context, root Root, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(root), opts...)

	unsubscribe := root.Subscribe(func(s scrumapp.State) {
		p.Send(stateMsg(s))
	})
	defer unsubscribe()

	_, err := p.Run()
	if st := root.State(); st.ShowsMain() && st.Ready {
		root.RequestSave()
	}
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
