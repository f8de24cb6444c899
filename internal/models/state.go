package models

// User-facing messages. The underlying cause of a failure is logged, never
// shown.
const (
	MsgEmptyInput      = "Please enter some text to process"
	MsgServiceFallback = "An error occurred while processing"
	MsgConnectivity    = "Failed to connect to the server. Please try again later."
)

// State is the workflow state. It is exactly one of Idle, Loading, Result or
// Failure, so output, error and loading can never be shown together.
type State interface {
	isState()
}

// Idle is the initial state and the state after Clear.
type Idle struct{}

// Loading means a request is in flight.
type Loading struct{}

// Result holds the text returned by the service.
type Result struct {
	Text string
}

// Failure holds the message shown to the user.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (Idle) isState()    {}
func (Loading) isState() {}
func (Result) isState()  {}
func (Failure) isState() {}

type FailureKind int

const (
	// ValidationFailure: the input was blank, nothing was sent.
	ValidationFailure FailureKind = iota
	// ServiceFailure: the service answered with a non-success status.
	ServiceFailure
	// TransportFailure: no usable answer arrived.
	TransportFailure
)

func (k FailureKind) String() string {
	switch k {
	case ValidationFailure:
		return "validation"
	case ServiceFailure:
		return "service"
	case TransportFailure:
		return "transport"
	default:
		return "unknown"
	}
}

// Snapshot is what observers see after every transition.
type Snapshot struct {
	Input string
	State State
}

func (s Snapshot) Loading() bool {
	_, ok := s.State.(Loading)
	return ok
}

// Output is the result text, empty unless the state is Result.
func (s Snapshot) Output() string {
	if r, ok := s.State.(Result); ok {
		return r.Text
	}
	return ""
}

// ErrorMessage is the failure message, empty unless the state is Failure.
func (s Snapshot) ErrorMessage() string {
	if f, ok := s.State.(Failure); ok {
		return f.Message
	}
	return ""
}

// StateName is used for logs and the status bar.
func StateName(s State) string {
	switch s.(type) {
	case Idle, nil:
		return "idle"
	case Loading:
		return "loading"
	case Result:
		return "result"
	case Failure:
		return "error"
	default:
		return "unknown"
	}
}
