package tools

import (
	"time"

	"github.com/google/uuid"
)

// State is the progress of a single tool call. Calls only move forward and
// end in StateCompleted or StateFailed.
type State int

const (
	StateReceived State = iota
	StateValidated
	StateResolved
	StateDispatched
	StateCompleted
	StateFailed
)

func (state State) String() string {
	switch state {
	case StateReceived:
		return "received"
	case StateValidated:
		return "validated"
	case StateResolved:
		return "resolved"
	case StateDispatched:
		return "dispatched"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// Terminal reports whether no further transition is possible.
func (state State) Terminal() bool {
	return state == StateCompleted || state == StateFailed
}

// trace follows one call through its states for logging and metrics.
type trace struct {
	id      string
	tool    string
	start   time.Time
	state   State
	reached State
}

func newTrace(tool string) *trace {
	return &trace{
		id:    uuid.NewString(),
		tool:  tool,
		start: time.Now(),
		state: StateReceived,
	}
}

// advance moves to next if that is forward from the current state.
func (t *trace) advance(next State) {
	if t.state.Terminal() || next <= t.state {
		return
	}

	t.state = next

	if !next.Terminal() {
		t.reached = next
	}
}

func (t *trace) elapsed() time.Duration {
	return time.Since(t.start)
}
