package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
)

const InputPlaceholder = "Paste your study notes, articles, or any text you want to process here..."

// AppModel represents the UI state - only local UI concerns. The workflow
// state itself is owned by core and mirrored in Form.
type AppModel struct {
	Input   textarea.Model // InputText, edited locally
	Spinner spinner.Model  // Loading placeholder animation
	Form    Snapshot       // Last state pushed by core
	Pending bool           // Submit sent, core has not taken it up yet
	Sent    uint64         // UI events sent to core
	Status  string         // Status bar text
	Width   int            // Terminal width
	Height  int            // Terminal height
}

func NewAppModel() AppModel {
	ta := textarea.New()
	ta.Placeholder = InputPlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetHeight(12)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return AppModel{
		Input:   ta,
		Spinner: sp,
		Form:    Snapshot{State: Idle{}},
		Status:  "Ready",
	}
}

// Loading is true from the moment a submit is sent until core resolves it.
func (m AppModel) Loading() bool {
	return m.Pending || m.Form.Loading()
}

// CanSubmit mirrors the disabled state of the submit trigger.
func (m AppModel) CanSubmit() bool {
	return !m.Loading() && strings.TrimSpace(m.Input.Value()) != ""
}

// CanClear mirrors the disabled state of the clear trigger.
func (m AppModel) CanClear() bool {
	return !m.Loading()
}
