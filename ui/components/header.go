package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/StudyAssist/ui/styles"
)

func RenderHeader(width int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.HeaderStyle(width).Render("AI Study Assistant"),
		styles.TaglineStyle(width).Render("Transform your notes into summaries and quiz questions"),
	)
}

var howToSteps = []struct {
	title string
	text  string
}{
	{"Paste Your Text", "Add your study notes, articles, or any content you want to process"},
	{"Generate Content", "Press ctrl+s to get an AI-powered summary and quiz questions"},
	{"Study & Test", "Use the summary to review and the quiz questions to test your knowledge"},
}

// RenderHowTo renders the usage steps and the footer.
func RenderHowTo(width int) string {
	var b strings.Builder
	for i, step := range howToSteps {
		b.WriteString(styles.StepNumberStyle().Render(string(rune('1' + i))))
		b.WriteString(" " + step.title + ": " + step.text)
		if i < len(howToSteps)-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.HelpStyle(width).Render(b.String()),
		styles.FooterStyle(width).Render("Powered by your text-processing service"),
	)
}
