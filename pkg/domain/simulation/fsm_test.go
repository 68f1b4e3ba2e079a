package simulation

import "testing"

func TestLifecycleTransitions(t *testing.T) {
	l, err := newLifecycle("s1")
	if err != nil {
		t.Fatalf("newLifecycle: %v", err)
	}
	if l.current() != StateUninitialized {
		t.Fatalf("initial state = %s, want %s", l.current(), StateUninitialized)
	}

	l.fire(eventInitialize)
	if l.current() != StateReady {
		t.Fatalf("after initialize = %s, want %s", l.current(), StateReady)
	}

	l.fire(eventStep)
	if l.current() != StateStepping {
		t.Fatalf("after step = %s, want %s", l.current(), StateStepping)
	}

	// Stepping is re-entrant.
	l.fire(eventStep)
	if l.current() != StateStepping {
		t.Fatalf("after re-entrant step = %s, want %s", l.current(), StateStepping)
	}

	l.fire(eventFinish)
	if l.current() != StateComplete {
		t.Fatalf("after finish = %s, want %s", l.current(), StateComplete)
	}

	// Complete ignores step events; only reset moves it.
	l.fire(eventStep)
	if l.current() != StateComplete {
		t.Fatalf("step from complete moved state to %s", l.current())
	}
	l.fire(eventReset)
	if l.current() != StateReady {
		t.Fatalf("after reset = %s, want %s", l.current(), StateReady)
	}
}

func TestLifecycleFinishFromReady(t *testing.T) {
	// A single-step session completes without ever entering Stepping.
	l, err := newLifecycle("s2")
	if err != nil {
		t.Fatalf("newLifecycle: %v", err)
	}
	l.fire(eventInitialize)
	l.fire(eventFinish)
	if l.current() != StateComplete {
		t.Fatalf("finish from ready moved state to %s, want %s", l.current(), StateComplete)
	}
}

func TestLifecycleIgnoresEventsBeforeInitialize(t *testing.T) {
	l, err := newLifecycle("s3")
	if err != nil {
		t.Fatalf("newLifecycle: %v", err)
	}
	l.fire(eventStep)
	l.fire(eventFinish)
	if l.current() != StateUninitialized {
		t.Fatalf("state = %s, want %s", l.current(), StateUninitialized)
	}
}
