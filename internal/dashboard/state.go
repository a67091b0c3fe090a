package dashboard

import (
	"sync"

	"github.com/okian/studyscore/pkg/metrics"
)

// State is the lifecycle of one user action.
type State string

// Action states: idle -> loading -> success | error.
const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// stateCell records the latest state of an action.
type stateCell struct {
	mu     sync.Mutex
	action string
	state  State
}

func newStateCell(action string) stateCell {
	return stateCell{action: action, state: StateIdle}
}

func (c *stateCell) set(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	metrics.RecordUIState(c.action, string(s))
}

func (c *stateCell) get() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
