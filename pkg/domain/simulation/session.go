// Package simulation drives scripted what-if progressions of a project's
// planned and earned value series, re-deriving schedule metrics each step.
package simulation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/estrack/estrack/pkg/domain/schedule"
)

// ErrComplete is the terminal signal: the session has taken its configured
// number of steps and only a full reset can move it again.
var ErrComplete = errors.New("simulation complete")

// Config captures the immutable parameters of a simulation session.
type Config struct {
	PlannedValues []float64
	EarnedValues  []float64
	ActualTime    int
	// MilestoneDuration enables milestone forecasting when > 0.
	MilestoneDuration float64
	MaxSteps          int
	Scenario          Scenario
	// ReplanEnabled pins the re-plan point to ActualTime at
	// initialization. The re-plan time never moves afterwards.
	ReplanEnabled bool
}

// StepRecord is one entry of the append-only step log.
type StepRecord struct {
	Period       int                     `json:"period" yaml:"period"`
	PlannedValue float64                 `json:"planned_value" yaml:"planned_value"`
	EarnedValue  float64                 `json:"earned_value" yaml:"earned_value"`
	Metrics      *schedule.MetricsRecord `json:"metrics" yaml:"metrics"`
	Analysis     schedule.Classification `json:"analysis" yaml:"analysis"`
	Narrative    string                  `json:"narrative" yaml:"narrative"`
}

// Session owns one simulation run. It is not safe for concurrent use; the
// caller serializes access (a single interaction loop in practice).
type Session struct {
	id         string
	cfg        Config
	replanTime *int

	pv      []float64
	ev      []float64
	period  int
	steps   int
	metrics *schedule.MetricsRecord
	log     []StepRecord

	fsm *lifecycle
}

// NewSession validates the configuration, captures series copies, computes
// the initial metrics record and moves the lifecycle to Ready.
func NewSession(cfg Config) (*Session, error) {
	if _, err := ParseScenario(string(cfg.Scenario)); err != nil {
		return nil, err
	}
	if cfg.MaxSteps < 1 {
		return nil, fmt.Errorf("max steps must be positive, got %d", cfg.MaxSteps)
	}
	if len(cfg.PlannedValues) == 0 || len(cfg.EarnedValues) == 0 {
		return nil, fmt.Errorf("planned and earned series must be non-empty")
	}

	s := &Session{
		id:  uuid.NewString(),
		cfg: cfg,
		pv:  schedule.CopySeries(cfg.PlannedValues),
		ev:  schedule.CopySeries(cfg.EarnedValues),
	}
	s.period = cfg.ActualTime
	if cfg.ReplanEnabled {
		rt := cfg.ActualTime
		s.replanTime = &rt
	}

	metrics, err := schedule.ComputeMetrics(s.pv, s.ev, s.period, s.options())
	if err != nil {
		return nil, err
	}
	s.metrics = metrics

	fsm, err := newLifecycle(s.id)
	if err != nil {
		return nil, err
	}
	s.fsm = fsm
	s.fsm.fire(eventInitialize)

	return s, nil
}

func (s *Session) options() schedule.Options {
	return schedule.Options{
		MilestoneDuration: s.cfg.MilestoneDuration,
		ReplanTime:        s.replanTime,
	}
}

// Step advances the simulation by one period: extend the planned series if
// needed, grow earned value per the scenario, recompute the metrics record
// wholesale and append a log entry. It returns ErrComplete once MaxSteps
// is reached; calling it again stays a no-op with the same signal.
func (s *Session) Step() (*StepRecord, error) {
	if s.steps >= s.cfg.MaxSteps || s.fsm.current() == StateComplete {
		return nil, ErrComplete
	}

	s.period++
	if s.period >= len(s.pv) {
		s.pv = append(s.pv, schedule.ExtrapolateNext(s.pv))
	}
	pvIncrement := s.pv[s.period] - s.pv[s.period-1]

	target := s.cfg.Scenario.targetIndex(s.metrics.PerformanceIndex)
	earned := s.ev[len(s.ev)-1] + target*pvIncrement
	s.ev = append(s.ev, earned)

	metrics, err := schedule.ComputeMetrics(s.pv[:s.period+1], s.ev, s.period, s.options())
	if err != nil {
		return nil, err
	}

	previous := s.metrics
	s.metrics = metrics

	analysis := schedule.Classify(metrics, previous)
	record := StepRecord{
		Period:       s.period,
		PlannedValue: s.pv[s.period],
		EarnedValue:  earned,
		Metrics:      metrics,
		Analysis:     analysis,
		Narrative:    schedule.FormatNarrative(analysis, metrics),
	}
	s.log = append(s.log, record)

	s.steps++
	if s.steps >= s.cfg.MaxSteps {
		s.fsm.fire(eventFinish)
	} else {
		s.fsm.fire(eventStep)
	}
	return &record, nil
}

// Reset restores the session to its initial position. Only a Complete
// session resets; mid-run the lifecycle refuses the event.
func (s *Session) Reset() error {
	if s.fsm.current() != StateComplete {
		return fmt.Errorf("cannot reset while %s", s.fsm.current())
	}
	s.pv = schedule.CopySeries(s.cfg.PlannedValues)
	s.ev = schedule.CopySeries(s.cfg.EarnedValues)
	s.period = s.cfg.ActualTime
	s.steps = 0
	s.log = nil

	metrics, err := schedule.ComputeMetrics(s.pv, s.ev, s.period, s.options())
	if err != nil {
		return err
	}
	s.metrics = metrics
	s.fsm.fire(eventReset)
	return nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State reports the lifecycle state name. A fresh session is Ready; the
// first step moves it to Stepping until MaxSteps flips it to Complete.
func (s *Session) State() string { return s.fsm.current() }

// StepCount returns the number of steps taken since initialization.
func (s *Session) StepCount() int { return s.steps }

// Period returns the index of the current period.
func (s *Session) Period() int { return s.period }

// Metrics returns the most recent metrics record.
func (s *Session) Metrics() *schedule.MetricsRecord { return s.metrics }

// ReplanTime returns the pinned re-plan period, or nil when re-planning is
// disabled.
func (s *Session) ReplanTime() *int { return s.replanTime }

// Scenario returns the configured scenario tag.
func (s *Session) Scenario() Scenario { return s.cfg.Scenario }

// MaxSteps returns the configured step limit.
func (s *Session) MaxSteps() int { return s.cfg.MaxSteps }

// Log returns a copy of the append-only step log.
func (s *Session) Log() []StepRecord {
	out := make([]StepRecord, len(s.log))
	copy(out, s.log)
	return out
}

// Series returns copies of the current planned and earned value series.
func (s *Session) Series() (pv, ev []float64) {
	return schedule.CopySeries(s.pv), schedule.CopySeries(s.ev)
}
