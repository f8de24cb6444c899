package core

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/Rorical/StudyAssist/internal/logging"
	"github.com/Rorical/StudyAssist/internal/models"
	"github.com/Rorical/StudyAssist/internal/remote"
)

// ErrBusy is returned by Submit and Clear while a request is in flight.
var ErrBusy = errors.New("a submission is already in progress")

// Processor is the remote text-processing collaborator.
type Processor interface {
	Process(ctx context.Context, text string) (string, error)
}

// Workflow owns the form state and mediates between the input and the
// Processor. It is safe for concurrent use.
type Workflow struct {
	mu        sync.RWMutex
	processor Processor
	logger    *slog.Logger
	input     string
	state     models.State
	observers []func(models.Snapshot)
}

func NewWorkflow(processor Processor, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Workflow{
		processor: processor,
		logger:    logger,
		state:     models.Idle{},
	}
}

// OnChange registers fn to be called after every state transition.
// Observers run on the goroutine that caused the transition, outside the lock.
func (w *Workflow) OnChange(fn func(models.Snapshot)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, fn)
}

func (w *Workflow) SetInput(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = text
}

func (w *Workflow) Input() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.input
}

func (w *Workflow) State() models.State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

func (w *Workflow) Snapshot() models.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return models.Snapshot{Input: w.input, State: w.state}
}

// Submit runs one submission cycle on the current input and returns the state
// it settled in. Blank input fails validation without a request. Otherwise
// the state moves to Loading (observers are told before the request goes
// out), exactly one request is made with the untrimmed input, and the state
// resolves to Result or Failure.
//
// The only error returned is ErrBusy, when another submission is in flight.
func (w *Workflow) Submit(ctx context.Context) (models.State, error) {
	w.mu.Lock()
	if _, loading := w.state.(models.Loading); loading {
		w.mu.Unlock()
		w.logger.Warn("submit rejected", "reason", "in flight")
		return nil, ErrBusy
	}

	input := w.input
	if strings.TrimSpace(input) == "" {
		failed := models.Failure{Kind: models.ValidationFailure, Message: models.MsgEmptyInput}
		w.state = failed
		snap, observers := w.snapshotLocked()
		w.mu.Unlock()

		w.logger.Debug("submit rejected", "reason", "empty input")
		notify(observers, snap)
		return failed, nil
	}

	w.state = models.Loading{}
	snap, observers := w.snapshotLocked()
	w.mu.Unlock()
	notify(observers, snap)

	w.logger.Info("submitting text", "chars", len(input))

	var final models.State = models.Failure{Kind: models.TransportFailure, Message: models.MsgConnectivity}
	defer func() {
		w.resolve(final)
	}()

	text, err := w.processor.Process(ctx, input)
	if err != nil {
		final = w.classify(err)
		return final, nil
	}

	final = models.Result{Text: text}
	w.logger.Info("submission succeeded", "chars", len(text))
	return final, nil
}

// Clear empties input, output and error. It is refused while loading.
func (w *Workflow) Clear() error {
	w.mu.Lock()
	if _, loading := w.state.(models.Loading); loading {
		w.mu.Unlock()
		return ErrBusy
	}

	w.input = ""
	w.state = models.Idle{}
	snap, observers := w.snapshotLocked()
	w.mu.Unlock()

	w.logger.Debug("form cleared")
	notify(observers, snap)
	return nil
}

// resolve leaves Loading. It runs on every exit path of Submit, including a
// panicking Processor.
func (w *Workflow) resolve(final models.State) {
	w.mu.Lock()
	w.state = final
	snap, observers := w.snapshotLocked()
	w.mu.Unlock()

	notify(observers, snap)
}

func (w *Workflow) classify(err error) models.Failure {
	var svcErr *remote.ServiceError
	if errors.As(err, &svcErr) {
		msg := svcErr.Message
		if msg == "" {
			msg = models.MsgServiceFallback
		}
		w.logger.Warn("service rejected submission", "status", svcErr.StatusCode, "error", err)
		return models.Failure{Kind: models.ServiceFailure, Message: msg, Err: err}
	}

	w.logger.Error("submission failed", "error", err)
	return models.Failure{Kind: models.TransportFailure, Message: models.MsgConnectivity, Err: err}
}

func (w *Workflow) snapshotLocked() (models.Snapshot, []func(models.Snapshot)) {
	observers := make([]func(models.Snapshot), len(w.observers))
	copy(observers, w.observers)
	return models.Snapshot{Input: w.input, State: w.state}, observers
}

func notify(observers []func(models.Snapshot), snap models.Snapshot) {
	for _, fn := range observers {
		fn(snap)
	}
}
