package simulation

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Session lifecycle states.
const (
	StateUninitialized = "uninitialized"
	StateReady         = "ready"
	StateStepping      = "stepping"
	StateComplete      = "complete"
)

const (
	eventInitialize = "initialize"
	eventStep       = "step"
	eventFinish     = "finish"
	eventReset      = "reset"
)

type sessionContext struct {
	SessionID string
}

// lifecycle wraps the statekit machine that gates session operations.
// Ready and Stepping are re-entrant for step events; Complete only accepts
// a full reset.
type lifecycle struct {
	interpreter *statekit.Interpreter[sessionContext]
}

func newLifecycle(sessionID string) (*lifecycle, error) {
	builder := statekit.NewMachine[sessionContext]("simulation-session").
		WithInitial(statekit.StateID(StateUninitialized)).
		WithContext(sessionContext{SessionID: sessionID})

	builder.State(StateUninitialized).
		On(eventInitialize).Target(StateReady).
		Done()

	builder.State(StateReady).
		On(eventStep).Target(StateStepping).
		On(eventFinish).Target(StateComplete).
		Done()

	builder.State(StateStepping).
		On(eventStep).Target(StateStepping).
		On(eventFinish).Target(StateComplete).
		Done()

	builder.State(StateComplete).
		On(eventReset).Target(StateReady).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build session state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &lifecycle{interpreter: interpreter}, nil
}

func (l *lifecycle) fire(event string) {
	l.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
}

func (l *lifecycle) current() string {
	return string(l.interpreter.State().Value)
}
