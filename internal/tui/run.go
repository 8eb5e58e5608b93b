package tui

import (
	"context"
	"errors"

	"advocates/internal/search"

	tea "github.com/charmbracelet/bubbletea"
)

// Run opens the browser on the terminal and blocks until the user quits or
// ctx is cancelled.
func Run(ctx context.Context, fetcher search.Fetcher, opts search.Options, progOpts ...tea.ProgramOption) error {
	var p *tea.Program
	// Send blocks until the event loop reads it, and the loop itself can be
	// the caller, so snapshots are forwarded from their own goroutine.
	opts.OnChange = func(s search.State) {
		go p.Send(StateMsg(s))
	}
	ctrl := search.NewController(fetcher, opts)
	defer ctrl.Close()

	p = tea.NewProgram(New(ctrl), append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, progOpts...)...)
	if _, err := p.Run(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
