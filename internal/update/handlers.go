package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/StudyAssist/internal/dispatcher"
	"github.com/Rorical/StudyAssist/internal/eventbus"
	"github.com/Rorical/StudyAssist/internal/models"
	"github.com/Rorical/StudyAssist/ui/components"
)

const inputHeight = 12

// HandleKeyMsg handles keyboard input. Everything that is not a shortcut is
// forwarded to the text area.
func HandleKeyMsg(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	case "ctrl+s":
		return handleSubmit(appModel, eb)
	case "ctrl+l":
		return handleClear(appModel, eb)
	}

	var cmd tea.Cmd
	appModel.Input, cmd = appModel.Input.Update(keyMsg)
	return cmd
}

func handleSubmit(appModel *models.AppModel, eb *eventbus.EventBus) tea.Cmd {
	if appModel.Loading() {
		appModel.Status = "Still processing, please wait"
		return nil
	}
	if strings.TrimSpace(appModel.Input.Value()) == "" {
		appModel.Status = "Enter some text first"
		return nil
	}

	if err := eb.SendToCore(eventbus.SubmitEvent{Text: appModel.Input.Value()}); err != nil {
		appModel.Status = "Error sending request: " + err.Error()
		return nil
	}

	appModel.Sent++
	appModel.Pending = true
	appModel.Status = "Processing"
	return appModel.Spinner.Tick
}

func handleClear(appModel *models.AppModel, eb *eventbus.EventBus) tea.Cmd {
	if !appModel.CanClear() {
		appModel.Status = "Cannot clear while processing"
		return nil
	}

	if err := eb.SendToCore(eventbus.ClearEvent{}); err != nil {
		appModel.Status = "Error clearing form: " + err.Error()
		return nil
	}

	appModel.Sent++
	appModel.Input.Reset()
	return nil
}

// HandleCoreEvent mirrors the workflow state pushed by core.
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg dispatcher.CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		wasLoading := appModel.Loading()

		appModel.Form = event.Snapshot
		// an update pushed before core took up the submit does not answer it
		appModel.Pending = appModel.Pending && event.Handled < appModel.Sent
		appModel.Status = statusFor(event.Snapshot.State)
		if appModel.Pending {
			appModel.Status = "Processing"
		}

		if appModel.Loading() && !wasLoading {
			return appModel.Spinner.Tick
		}
	}

	return nil
}

func statusFor(state models.State) string {
	switch state.(type) {
	case models.Loading:
		return "Processing"
	case models.Result:
		return "Done"
	case models.Failure:
		return "Error"
	default:
		return "Ready"
	}
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height

	panelWidth, _ := components.Layout(sizeMsg.Width)
	appModel.Input.SetWidth(components.ContentWidth(panelWidth))
	appModel.Input.SetHeight(inputHeight)
}

// HandleSpinnerTick keeps the spinner running only while loading.
func HandleSpinnerTick(appModel *models.AppModel, tick spinner.TickMsg) tea.Cmd {
	if !appModel.Loading() {
		return nil
	}
	var cmd tea.Cmd
	appModel.Spinner, cmd = appModel.Spinner.Update(tick)
	return cmd
}
