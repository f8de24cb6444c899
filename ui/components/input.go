package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/StudyAssist/ui/styles"
)

// RenderInput draws the notes panel: the text area and both triggers, dimmed
// when disabled.
func RenderInput(inputView string, loading, canSubmit, canClear bool, width int) string {
	submitLabel := "ctrl+s  Generate Summary & Quiz"
	if loading {
		submitLabel = "Processing..."
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.ButtonStyle(canSubmit).Render(submitLabel),
		styles.ButtonStyle(canClear).Render("ctrl+l  Clear"),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.InputTitleStyle().Render("Your Notes"),
		inputView,
		"",
		buttons,
	)
	return styles.PanelStyle(width).Render(body)
}
