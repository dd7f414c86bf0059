package app

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/maildraft/internal/model"
	"github.com/nhle/maildraft/internal/theme"
)

const maxCellWidth = 40

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers(headers...)
}

func renderLaunches(launches []model.Launch) string {
	t := newTable("WHEN", "METHOD", "APP", "SUBJECT", "TO", "ID")
	for _, l := range launches {
		t.Row(
			l.CreatedAt.Local().Format("2006-01-02 15:04"),
			theme.MethodStyle(string(l.Method)).Render(string(l.Method)),
			truncate(l.App),
			truncate(l.Subject),
			truncate(l.Recipients),
			l.ID,
		)
	}
	return t.Render()
}

func renderDrafts(drafts []model.SavedDraft) string {
	t := newTable("NAME", "SUBJECT", "TO", "UPDATED")
	for _, d := range drafts {
		t.Row(
			d.Name,
			truncate(d.Properties.Subject),
			truncate(d.Properties.To.Join(", ")),
			d.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return t.Render()
}

// truncate shortens s to maxCellWidth runes.
func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-1]) + "…"
}
