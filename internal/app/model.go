package app

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/StudyAssist/internal/dispatcher"
	"github.com/Rorical/StudyAssist/internal/models"
	"github.com/Rorical/StudyAssist/internal/update"
	"github.com/Rorical/StudyAssist/internal/utils"
	"github.com/Rorical/StudyAssist/ui/components"
)

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	markdown   *utils.MarkdownRenderer
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(dispatcher.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, m.dispatcher.GetEventBus())
	return m, cmd
}

func (m *AppModel) View() string {
	state := m.appModel
	width := state.Width
	if width <= 0 {
		width = 80
	}
	panelWidth, sideBySide := components.Layout(width)

	input := components.RenderInput(
		state.Input.View(),
		state.Loading(),
		state.CanSubmit(),
		state.CanClear(),
		panelWidth,
	)
	output := components.RenderOutput(
		state.Form,
		state.Pending,
		state.Spinner.View(),
		m.markdown.Render,
		panelWidth,
	)

	var panels string
	if sideBySide {
		panels = lipgloss.JoinHorizontal(lipgloss.Top, input, output)
	} else {
		panels = lipgloss.JoinVertical(lipgloss.Left, input, output)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderHeader(width),
		panels,
		components.RenderHowTo(width),
		components.RenderStatus(state.Status, width),
	)
}
