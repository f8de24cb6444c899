package core

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/StudyAssist/internal/models"
	"github.com/Rorical/StudyAssist/internal/remote"
)

type fakeProcessor struct {
	mu     sync.Mutex
	calls  []string
	result string
	err    error
	block  chan struct{}
}

func (f *fakeProcessor) Process(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	return f.result, f.err
}

func (f *fakeProcessor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recorder struct {
	mu    sync.Mutex
	snaps []models.Snapshot
}

func (r *recorder) observe(s models.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) states() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.snaps))
	for i, s := range r.snaps {
		names[i] = models.StateName(s.State)
	}
	return names
}

func TestSubmit_BlankInputFailsValidation(t *testing.T) {
	for _, input := range []string{"", " ", "\n\t  "} {
		proc := &fakeProcessor{}
		rec := &recorder{}
		w := NewWorkflow(proc, nil)
		w.OnChange(rec.observe)
		w.SetInput(input)

		state, err := w.Submit(context.Background())
		require.NoError(t, err)

		failure, ok := state.(models.Failure)
		require.True(t, ok)
		assert.Equal(t, models.ValidationFailure, failure.Kind)
		assert.Equal(t, "Please enter some text to process", failure.Message)
		assert.Zero(t, proc.callCount(), "no request for %q", input)
		assert.Equal(t, []string{"error"}, rec.states(), "never passes through loading")
	}
}

func TestSubmit_SendsUntrimmedInputOnce(t *testing.T) {
	proc := &fakeProcessor{result: "ok"}
	w := NewWorkflow(proc, nil)
	w.SetInput("  Photosynthesis notes \n")

	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"  Photosynthesis notes \n"}, proc.calls)
}

func TestSubmit_Success(t *testing.T) {
	proc := &fakeProcessor{result: "Summary: ..."}
	rec := &recorder{}
	w := NewWorkflow(proc, nil)
	w.OnChange(rec.observe)
	w.SetInput("Photosynthesis notes")

	state, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Result{Text: "Summary: ..."}, state)

	snap := w.Snapshot()
	assert.Equal(t, "Summary: ...", snap.Output())
	assert.Empty(t, snap.ErrorMessage())
	assert.False(t, snap.Loading())
	assert.Equal(t, []string{"loading", "result"}, rec.states())
}

func TestSubmit_ServiceFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"with message", &remote.ServiceError{StatusCode: 400, Message: "No text provided"}, "No text provided"},
		{"without message", &remote.ServiceError{StatusCode: 500}, "An error occurred while processing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorkflow(&fakeProcessor{err: tt.err}, nil)
			w.SetInput("text")

			_, err := w.Submit(context.Background())
			require.NoError(t, err)

			snap := w.Snapshot()
			assert.Equal(t, tt.message, snap.ErrorMessage())
			assert.Empty(t, snap.Output())
			assert.False(t, snap.Loading())

			failure := snap.State.(models.Failure)
			assert.Equal(t, models.ServiceFailure, failure.Kind)
			assert.ErrorIs(t, failure.Err, tt.err)
		})
	}
}

func TestSubmit_TransportFailure(t *testing.T) {
	cause := &remote.TransportError{Op: "send request", Err: errors.New("connection refused")}
	w := NewWorkflow(&fakeProcessor{err: cause}, nil)
	w.SetInput("text")

	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	snap := w.Snapshot()
	assert.Equal(t, "Failed to connect to the server. Please try again later.", snap.ErrorMessage())
	assert.Empty(t, snap.Output())
	assert.False(t, snap.Loading())
	assert.NotContains(t, snap.ErrorMessage(), "connection refused")
}

type panickingProcessor struct{}

func (panickingProcessor) Process(context.Context, string) (string, error) {
	panic("boom")
}

func TestSubmit_LoadingClearedOnPanic(t *testing.T) {
	w := NewWorkflow(panickingProcessor{}, nil)
	w.SetInput("text")

	assert.Panics(t, func() { _, _ = w.Submit(context.Background()) })
	assert.False(t, w.Snapshot().Loading())
	assert.Equal(t, models.MsgConnectivity, w.Snapshot().ErrorMessage())
}

func TestSubmit_NewAttemptClearsPreviousOutcome(t *testing.T) {
	proc := &fakeProcessor{err: &remote.ServiceError{StatusCode: 500, Message: "quota"}}
	w := NewWorkflow(proc, nil)
	w.SetInput("text")
	_, _ = w.Submit(context.Background())
	require.Equal(t, "quota", w.Snapshot().ErrorMessage())

	var duringLoad models.Snapshot
	proc.err = nil
	proc.result = "fresh"
	proc.block = make(chan struct{})

	done := make(chan struct{})
	w.OnChange(func(s models.Snapshot) {
		if s.Loading() {
			duringLoad = s
			close(proc.block)
		}
	})
	go func() {
		defer close(done)
		_, _ = w.Submit(context.Background())
	}()
	<-done

	assert.Empty(t, duringLoad.ErrorMessage())
	assert.Empty(t, duringLoad.Output())
	assert.Equal(t, "fresh", w.Snapshot().Output())
}

func TestSubmit_RejectsOverlap(t *testing.T) {
	proc := &fakeProcessor{result: "done", block: make(chan struct{})}
	w := NewWorkflow(proc, nil)
	w.SetInput("text")

	loading := make(chan struct{})
	var once sync.Once
	w.OnChange(func(s models.Snapshot) {
		if s.Loading() {
			once.Do(func() { close(loading) })
		}
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = w.Submit(context.Background())
	}()
	<-loading

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, w.Clear(), ErrBusy)
	assert.True(t, w.Snapshot().Loading())

	close(proc.block)
	<-done

	assert.Equal(t, 1, proc.callCount())
	assert.Equal(t, "done", w.Snapshot().Output())
}

func TestClear(t *testing.T) {
	states := []models.State{
		models.Idle{},
		models.Result{Text: "summary"},
		models.Failure{Kind: models.ServiceFailure, Message: "bad"},
	}

	for _, s := range states {
		w := NewWorkflow(&fakeProcessor{}, nil)
		w.SetInput("some notes")
		w.state = s

		require.NoError(t, w.Clear())

		snap := w.Snapshot()
		assert.Empty(t, snap.Input)
		assert.Empty(t, snap.Output())
		assert.Empty(t, snap.ErrorMessage())
		assert.Equal(t, models.Idle{}, snap.State)
	}
}

// Scenarios below run against a real HTTP endpoint.

func endpoint(t *testing.T, handler http.HandlerFunc) (*remote.Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return remote.New(srv.URL), &hits
}

func TestScenario_EmptyInput(t *testing.T) {
	client, hits := endpoint(t, func(w http.ResponseWriter, r *http.Request) {})
	w := NewWorkflow(client, nil)

	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Please enter some text to process", w.Snapshot().ErrorMessage())
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestScenario_Success(t *testing.T) {
	client, hits := endpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"result": "Summary: ..."}`)
	})
	w := NewWorkflow(client, nil)
	w.SetInput("Photosynthesis notes")

	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Summary: ...", w.Snapshot().Output())
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestScenario_ServerErrorEmptyBody(t *testing.T) {
	client, _ := endpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{}`)
	})
	w := NewWorkflow(client, nil)
	w.SetInput("text")

	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "An error occurred while processing", w.Snapshot().ErrorMessage())
}

func TestScenario_ServerErrorObject(t *testing.T) {
	client, _ := endpoint(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"quota exceeded"}}`)
	})
	w := NewWorkflow(client, nil)
	w.SetInput("text")

	state, err := w.Submit(context.Background())
	require.NoError(t, err)

	failure, ok := state.(models.Failure)
	require.True(t, ok)
	assert.Equal(t, models.ServiceFailure, failure.Kind)
	assert.Equal(t, models.MsgServiceFallback, failure.Message)
}

func TestScenario_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	w := NewWorkflow(remote.New(url), nil)
	w.SetInput("text")

	_, err := w.Submit(context.Background())
	require.NoError(t, err)

	snap := w.Snapshot()
	assert.Equal(t, "Failed to connect to the server. Please try again later.", snap.ErrorMessage())
	assert.Empty(t, snap.Output())
	assert.False(t, snap.Loading())
}
