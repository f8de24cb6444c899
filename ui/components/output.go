package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/StudyAssist/internal/models"
	"github.com/Rorical/StudyAssist/ui/styles"
)

const (
	EmptyPlaceholder   = "Your AI-generated summary and quiz questions will appear here"
	LoadingPlaceholder = "Analyzing your text and generating content..."
)

// RenderFunc renders result text for the given width.
type RenderFunc func(text string, width int) string

// RenderOutput draws the analysis panel. Exactly one of loading placeholder,
// error block, result block or empty placeholder is shown.
func RenderOutput(form models.Snapshot, pending bool, spinnerView string, render RenderFunc, width int) string {
	inner := ContentWidth(width)

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.OutputTitleStyle().Render("AI Analysis"),
		outputContent(form, pending, spinnerView, render, inner),
	)
	return styles.PanelStyle(width).Render(body)
}

func outputContent(form models.Snapshot, pending bool, spinnerView string, render RenderFunc, width int) string {
	// submit sent but core has not reported Loading yet
	if pending {
		return loadingBlock(spinnerView, width)
	}

	switch state := form.State.(type) {
	case models.Loading:
		return loadingBlock(spinnerView, width)
	case models.Failure:
		return lipgloss.JoinVertical(lipgloss.Left,
			styles.ErrorTitleStyle().Render("Error"),
			styles.ErrorBlockStyle(width).Render(state.Message),
		)
	case models.Result:
		if strings.TrimSpace(state.Text) == "" {
			return styles.PlaceholderStyle(width).Render(EmptyPlaceholder)
		}
		if render == nil {
			return state.Text
		}
		return render(state.Text, width)
	default:
		return styles.PlaceholderStyle(width).Render(EmptyPlaceholder)
	}
}

func loadingBlock(spinnerView string, width int) string {
	return styles.PlaceholderStyle(width).Render(spinnerView + " " + LoadingPlaceholder)
}
