package empower

import "sync"

type (
	// Source locates the expression being asserted.
	Source struct {
		Content  string `json:"content"`
		Filepath string `json:"filepath,omitempty"`
		Line     int    `json:"line,omitempty"`
	}

	// Event is one recorded sub-expression value.
	Event struct {
		Value any    `json:"value"`
		Path  string `json:"path"`
	}

	// Captured wraps an argument value with the events
	// recorded while it was evaluated.
	Captured struct {
		Value  any
		Source Source
		Events []Event
	}

	// CapturedArg is the context of a single captured argument.
	CapturedArg struct {
		Value  any     `json:"value"`
		Events []Event `json:"events"`
	}

	// Context is the power-assert context of a captured call.
	Context struct {
		Source Source        `json:"source"`
		Args   []CapturedArg `json:"args"`
	}

	// CaptureFunc records a sub-expression value and returns it.
	CaptureFunc = func(value any, path string) any

	// ExprFunc completes an argument expression, returning the
	// value together with the events recorded since the last call.
	ExprFunc = func(value any, source Source) *Captured

	// Recorder accumulates events between Capt and Expr calls.
	Recorder struct {
		lock   sync.Mutex
		events []Event
	}
)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Capt records value under path and returns value unchanged.
func (r *Recorder) Capt(value any, path string) any {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.events = append(r.events, Event{value, path})
	return value
}

// Expr drains the recorded events into a Captured argument.
func (r *Recorder) Expr(value any, source Source) *Captured {
	r.lock.Lock()
	events := r.events
	r.events = nil
	r.lock.Unlock()
	return &Captured{Value: value, Source: source, Events: events}
}

func isCaptured(arg any) bool {
	c, ok := arg.(*Captured)
	return ok && c != nil
}
