// Package tui is the interactive advocates browser.
package tui

import (
	"fmt"
	"strings"

	"advocates/internal/search"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Controller is the part of search.Controller the browser drives.
type Controller interface {
	Start()
	SetSearchText(text string)
	Reset()
	NextPage()
	PrevPage()
	State() search.State
}

// StateMsg carries a controller snapshot into the event loop.
type StateMsg search.State

type Model struct {
	ctrl   Controller
	input  textinput.Model
	state  search.State
	styles Styles
	width  int
}

func New(ctrl Controller) Model {
	in := textinput.New()
	in.Placeholder = "Search by name, city, degree or specialty..."
	in.Prompt = "Search: "
	in.CharLimit = 120
	in.Width = 60
	in.Focus()

	return Model{
		ctrl:   ctrl,
		input:  in,
		state:  ctrl.State(),
		styles: DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	ctrl := m.ctrl
	return tea.Batch(textinput.Blink, func() tea.Msg {
		ctrl.Start()
		return StateMsg(ctrl.State())
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StateMsg:
		m.apply(search.State(msg))
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "ctrl+r":
			m.ctrl.Reset()
			m.input.SetValue("")
			m.sync()
			return m, nil
		case "right", "pgdown":
			m.ctrl.NextPage()
			m.sync()
			return m, nil
		case "left", "pgup":
			m.ctrl.PrevPage()
			m.sync()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.state.SearchText {
		m.ctrl.SetSearchText(v)
		m.sync()
	}
	return m, cmd
}

// apply keeps the newest snapshot; notifications may arrive out of order.
func (m *Model) apply(s search.State) {
	if s.Version < m.state.Version {
		return
	}
	m.state = s
}

func (m *Model) sync() {
	m.apply(m.ctrl.State())
}

func (m Model) View() string {
	var b strings.Builder
	s := m.state

	b.WriteString(m.styles.Title.Render("Solace Advocates"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	query := s.Query
	if query == "" {
		query = "(all)"
	}
	b.WriteString(m.styles.Label.Render("Searching for: "))
	b.WriteString(m.styles.Query.Render(query))
	b.WriteString("\n\n")

	switch {
	case s.Err != "":
		b.WriteString(m.styles.Error.Render(s.Err))
	case s.Loading:
		b.WriteString(m.styles.Muted.Render("Loading..."))
	case len(s.Data) == 0:
		b.WriteString(m.styles.Muted.Render("No results"))
	default:
		b.WriteString(RenderTable(m.styles, s.Data, m.width))
	}
	b.WriteString("\n\n")

	b.WriteString(m.pager(s))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("←/→ page • ctrl+r reset • esc quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) pager(s search.State) string {
	prev, next := m.styles.Disabled, m.styles.Disabled
	if s.CanPrev() {
		prev = m.styles.Enabled
	}
	if s.CanNext() {
		next = m.styles.Enabled
	}
	return fmt.Sprintf("%s  Page %d of %d • %d total  %s",
		prev.Render("‹ Previous"), s.Page, s.TotalPages, s.Total, next.Render("Next ›"))
}
