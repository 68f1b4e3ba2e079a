package application

import (
	"errors"
	"sync"
	"time"

	"github.com/estrack/estrack/pkg/domain/simulation"
)

// ErrNoSession is returned for operations before Initialize.
var ErrNoSession = errors.New("no simulation session initialized")

// DefaultAutoplayInterval is the inter-step delay when none is configured.
const DefaultAutoplayInterval = time.Second

// StepListener observes completed steps. Listeners run synchronously inside
// Step, after the log entry is recorded and before Step returns.
type StepListener func(simulation.StepRecord)

// SimulationService owns one simulation session at a time and drives it
// manually (Step) or on a fixed-interval autoplay ticker. The mutex makes
// the ticker goroutine and direct callers take turns; a step is always an
// atomic unit of compute + log + callbacks.
type SimulationService struct {
	mu        sync.Mutex
	session   *simulation.Session
	listeners []StepListener
	stop      chan struct{}
	running   bool
}

// NewSimulationService creates a simulation service with no active session.
func NewSimulationService() *SimulationService {
	return &SimulationService{}
}

// Initialize replaces the active session. Any running autoplay stops first;
// the step log starts empty.
func (s *SimulationService) Initialize(cfg simulation.Config) (*simulation.Session, error) {
	s.Stop()

	session, err := simulation.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
	return session, nil
}

// Session returns the active session, or nil before Initialize.
func (s *SimulationService) Session() *simulation.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Subscribe registers a listener for completed steps.
func (s *SimulationService) Subscribe(fn StepListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Step advances the session one period. It returns simulation.ErrComplete
// once the configured step limit is reached.
func (s *SimulationService) Step() (*simulation.StepRecord, error) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	record, err := s.session.Step()
	listeners := s.listeners
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	for _, fn := range listeners {
		fn(*record)
	}
	return record, nil
}

// StartAutoplay begins stepping on a fixed interval until the session
// completes or Stop is called. It reports false when autoplay is already
// running or no session exists: only one timer is ever live per service.
func (s *SimulationService) StartAutoplay(interval time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running || s.session == nil {
		return false
	}
	if interval <= 0 {
		interval = DefaultAutoplayInterval
	}

	s.stop = make(chan struct{})
	s.running = true
	go s.autoplay(interval, s.stop)
	return true
}

func (s *SimulationService) autoplay(interval time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, err := s.Step(); err != nil {
				s.Stop()
				return
			}
		}
	}
}

// Stop cancels a running autoplay. It is idempotent and safe to call in any
// state, including with no session at all.
func (s *SimulationService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.stop)
	s.running = false
}

// AutoplayRunning reports whether an autoplay ticker is live.
func (s *SimulationService) AutoplayRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
