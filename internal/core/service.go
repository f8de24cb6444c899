package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/Rorical/StudyAssist/internal/eventbus"
	"github.com/Rorical/StudyAssist/internal/logging"
	"github.com/Rorical/StudyAssist/internal/models"
)

// Service feeds UI events into the Workflow and pushes every state change
// back to the UI over the event bus.
type Service struct {
	workflow *Workflow
	eventBus *eventbus.EventBus
	logger   *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	handled  atomic.Uint64
}

func NewService(workflow *Workflow, eb *eventbus.EventBus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	s := &Service{
		workflow: workflow,
		eventBus: eb,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	workflow.OnChange(func(snap models.Snapshot) {
		s.pushState(snap)
	})

	return s
}

// Start sends the initial state and runs the event loop in a goroutine.
func (s *Service) Start() {
	s.pushState(s.workflow.Snapshot())
	go s.eventLoop()
}

// Stop cancels any in-flight request and waits for the loop to exit.
func (s *Service) Stop() {
	s.cancel()
	<-s.done
}

func (s *Service) Workflow() *Workflow {
	return s.workflow
}

func (s *Service) eventLoop() {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *Service) handleUIEvent(event eventbus.UIEvent) {
	s.handled.Add(1)

	switch e := event.(type) {
	case eventbus.SubmitEvent:
		s.workflow.SetInput(e.Text)
		if _, err := s.workflow.Submit(s.ctx); err != nil {
			s.logger.Warn("submit ignored", "error", err)
			s.pushState(s.workflow.Snapshot())
		}
	case eventbus.ClearEvent:
		if err := s.workflow.Clear(); err != nil {
			s.logger.Warn("clear ignored", "error", err)
			s.pushState(s.workflow.Snapshot())
		}
	default:
		s.logger.Warn("unknown UI event", "type", fmt.Sprintf("%T", event))
	}
}

func (s *Service) pushState(snap models.Snapshot) {
	err := s.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Snapshot: snap,
		Handled:  s.handled.Load(),
	})
	if err != nil {
		var busErr eventbus.EventBusError
		if errors.As(err, &busErr) {
			s.logger.Error("failed to push state to UI", "op", busErr.Operation, "error", busErr.Err)
			return
		}
		s.logger.Error("failed to push state to UI", "error", err)
	}
}
