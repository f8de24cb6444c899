package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/StudyAssist/internal/core"
	"github.com/Rorical/StudyAssist/internal/dispatcher"
	"github.com/Rorical/StudyAssist/internal/eventbus"
	"github.com/Rorical/StudyAssist/internal/models"
	"github.com/Rorical/StudyAssist/internal/remote"
	"github.com/Rorical/StudyAssist/internal/utils"
)

// Application manages the complete application lifecycle
type Application struct {
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.Service
	model      *AppModel
	logger     *slog.Logger
}

func NewApplication(endpoint string, logger *slog.Logger) *Application {
	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		logger.Warn("event bus error", "op", e.Operation, "error", e.Err)
	})

	disp := dispatcher.NewEventDispatcher(eb)

	client := remote.New(endpoint, remote.WithLogger(logger))
	workflow := core.NewWorkflow(client, logger)
	service := core.NewService(workflow, eb, logger)

	model := &AppModel{
		appModel:   models.NewAppModel(),
		dispatcher: disp,
		markdown:   utils.NewMarkdownRenderer(utils.StyleDark),
	}

	logger.Info("application created", "endpoint", client.Endpoint())

	return &Application{
		eventBus:   eb,
		dispatcher: disp,
		service:    service,
		model:      model,
		logger:     logger,
	}
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.dispatcher.Stop()
	app.service.Stop()
	app.eventBus.Close()
	app.logger.Info("application stopped")
}
