package update

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/StudyAssist/internal/dispatcher"
	"github.com/Rorical/StudyAssist/internal/eventbus"
	"github.com/Rorical/StudyAssist/internal/models"
)

func typeText(m *models.AppModel, eb *eventbus.EventBus, text string) {
	for _, r := range text {
		HandleKeyMsg(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, eb)
	}
}

func coreUpdate(state models.State, handled uint64) dispatcher.CoreEventMsg {
	return dispatcher.CoreEventMsg{Event: eventbus.StateUpdateEvent{
		Snapshot: models.Snapshot{State: state},
		Handled:  handled,
	}}
}

func pendingEvents(eb *eventbus.EventBus) []eventbus.UIEvent {
	var events []eventbus.UIEvent
	for {
		select {
		case e := <-eb.UIToCore():
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestTypingEditsInput(t *testing.T) {
	m := models.NewAppModel()
	eb := eventbus.NewEventBus()
	defer eb.Close()

	typeText(&m, eb, "cells")

	assert.Equal(t, "cells", m.Input.Value())
	assert.True(t, m.CanSubmit())
}

func TestSubmit_SendsRawText(t *testing.T) {
	m := models.NewAppModel()
	eb := eventbus.NewEventBus()
	defer eb.Close()
	m.Input.SetValue("  mitosis notes  ")

	cmd := HandleKeyMsg(&m, tea.KeyMsg{Type: tea.KeyCtrlS}, eb)

	assert.NotNil(t, cmd, "spinner starts")
	assert.True(t, m.Pending)
	assert.True(t, m.Loading())
	assert.Equal(t, []eventbus.UIEvent{eventbus.SubmitEvent{Text: "  mitosis notes  "}}, pendingEvents(eb))
}

func TestSubmit_DisabledWhenBlankOrLoading(t *testing.T) {
	m := models.NewAppModel()
	eb := eventbus.NewEventBus()
	defer eb.Close()

	m.Input.SetValue("   ")
	HandleKeyMsg(&m, tea.KeyMsg{Type: tea.KeyCtrlS}, eb)
	assert.Empty(t, pendingEvents(eb))
	assert.False(t, m.Pending)

	m.Input.SetValue("notes")
	m.Form = models.Snapshot{State: models.Loading{}}
	HandleKeyMsg(&m, tea.KeyMsg{Type: tea.KeyCtrlS}, eb)
	assert.Empty(t, pendingEvents(eb))
	assert.False(t, m.CanSubmit())
}

func TestClear_DisabledWhileLoading(t *testing.T) {
	m := models.NewAppModel()
	eb := eventbus.NewEventBus()
	defer eb.Close()

	m.Pending = true
	HandleKeyMsg(&m, tea.KeyMsg{Type: tea.KeyCtrlL}, eb)
	assert.Empty(t, pendingEvents(eb))

	m.Pending = false
	m.Input.SetValue("notes")
	HandleKeyMsg(&m, tea.KeyMsg{Type: tea.KeyCtrlL}, eb)
	assert.Equal(t, []eventbus.UIEvent{eventbus.ClearEvent{}}, pendingEvents(eb))
	assert.Empty(t, m.Input.Value())
	assert.Equal(t, uint64(1), m.Sent)
}

func TestCoreEvent_MirrorsState(t *testing.T) {
	m := models.NewAppModel()
	m.Input.SetValue("notes")
	m.Pending = true
	m.Sent = 1

	cmd := HandleCoreEvent(&m, coreUpdate(models.Loading{}, 1))
	assert.Nil(t, cmd, "spinner already running since submit")
	assert.False(t, m.Pending)
	assert.Equal(t, "Processing", m.Status)

	HandleCoreEvent(&m, coreUpdate(models.Result{Text: "Summary"}, 1))
	assert.Equal(t, "Summary", m.Form.Output())
	assert.Equal(t, "Done", m.Status)
	assert.False(t, m.Loading())
	assert.Equal(t, "notes", m.Input.Value())

	HandleCoreEvent(&m, coreUpdate(models.Idle{}, 2))
	assert.Equal(t, "notes", m.Input.Value(), "core updates never touch the text area")
	assert.Equal(t, "Ready", m.Status)
}

func TestCoreEvent_StaleUpdateKeepsPending(t *testing.T) {
	m := models.NewAppModel()
	eb := eventbus.NewEventBus()
	defer eb.Close()

	HandleKeyMsg(&m, tea.KeyMsg{Type: tea.KeyCtrlL}, eb)
	m.Input.SetValue("new notes")
	HandleKeyMsg(&m, tea.KeyMsg{Type: tea.KeyCtrlS}, eb)
	require.True(t, m.Pending)

	// the clear's update arrives after the submit was sent
	HandleCoreEvent(&m, coreUpdate(models.Idle{}, 1))
	assert.True(t, m.Pending)
	assert.True(t, m.Loading())
	assert.Equal(t, "new notes", m.Input.Value())

	HandleCoreEvent(&m, coreUpdate(models.Loading{}, 2))
	assert.False(t, m.Pending)
	assert.True(t, m.Loading())
}

func TestCoreEvent_LoadingStartsSpinner(t *testing.T) {
	m := models.NewAppModel()

	cmd := HandleCoreEvent(&m, coreUpdate(models.Loading{}, 0))
	assert.NotNil(t, cmd)
}

func TestQuitKeys(t *testing.T) {
	m := models.NewAppModel()
	eb := eventbus.NewEventBus()
	defer eb.Close()

	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		cmd := HandleKeyMsg(&m, tea.KeyMsg{Type: key}, eb)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestWindowSize(t *testing.T) {
	m := models.NewAppModel()

	HandleUpdateWithEventBus(&m, tea.WindowSizeMsg{Width: 120, Height: 40}, nil)

	assert.Equal(t, 120, m.Width)
	assert.Equal(t, 40, m.Height)
}
