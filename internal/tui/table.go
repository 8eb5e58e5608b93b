package tui

import (
	"strconv"

	"advocates/internal/domain/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var Headers = []string{"First Name", "Last Name", "City", "Degree", "Specialties", "Years of Experience", "Phone Number"}

// Rows flattens advocates into table cells. pills renders the specialties
// column; nil joins them as plain text.
func Rows(data []models.Advocate, pills func(models.Specialties) string) [][]string {
	rows := make([][]string, 0, len(data))
	for _, a := range data {
		specialties := a.Specialties.Join(", ")
		if pills != nil {
			specialties = pills(a.Specialties)
		}
		rows = append(rows, []string{
			a.FirstName,
			a.LastName,
			a.City,
			a.Degree,
			specialties,
			strconv.Itoa(a.YearsOfExperience),
			strconv.FormatInt(a.PhoneNumber, 10),
		})
	}
	return rows
}

// RenderTable draws the advocates table. width <= 0 lets the table size itself.
func RenderTable(styles Styles, data []models.Advocate, width int) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Muted).
		Headers(Headers...).
		Rows(Rows(data, styles.Pills)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header
			}
			return styles.Cell
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}
