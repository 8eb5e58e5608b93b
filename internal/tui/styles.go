package tui

import (
	"strings"

	"advocates/internal/domain/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	Primary = lipgloss.Color("#1D4339")
	Accent  = lipgloss.Color("#D7A13B")
	Muted   = lipgloss.Color("#8A8F98")
	Danger  = lipgloss.Color("#E53935")
	PillBg  = lipgloss.Color("#E6F0EC")
)

type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Query    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Pill     lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Enabled  lipgloss.Style
	Disabled lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1),
		Label:    lipgloss.NewStyle().Bold(true),
		Query:    lipgloss.NewStyle().Foreground(Accent),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(Primary).Padding(0, 1),
		Cell:     lipgloss.NewStyle().Padding(0, 1),
		Pill:     lipgloss.NewStyle().Foreground(Primary).Background(PillBg).Padding(0, 1),
		Error:    lipgloss.NewStyle().Foreground(Danger),
		Muted:    lipgloss.NewStyle().Foreground(Muted),
		Enabled:  lipgloss.NewStyle().Bold(true).Foreground(Primary),
		Disabled: lipgloss.NewStyle().Foreground(Muted).Faint(true),
	}
}

// Pills renders each specialty as a small badge.
func (s Styles) Pills(specialties models.Specialties) string {
	pills := make([]string, 0, len(specialties))
	for _, sp := range specialties {
		pills = append(pills, s.Pill.Render(sp))
	}
	return strings.Join(pills, " ")
}
