// Package project defines the caller-supplied input for a schedule analysis.
package project

import (
	"fmt"

	"github.com/estrack/estrack/pkg/domain/schedule"
)

// Project is one analysis input: cumulative planned and earned value series
// plus the evaluation position and optional forecast parameters.
type Project struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// PlannedValues and EarnedValues are cumulative, indexed from period 0.
	PlannedValues []float64 `json:"planned_values" yaml:"planned_values"`
	EarnedValues  []float64 `json:"earned_values" yaml:"earned_values"`

	// ActualTime is the index of the current period.
	ActualTime int `json:"actual_time" yaml:"actual_time"`

	// MilestoneDuration is the planned period of the tracked milestone;
	// zero disables milestone forecasting.
	MilestoneDuration float64 `json:"milestone_duration,omitempty" yaml:"milestone_duration,omitempty"`

	// ReplanTime is the re-baseline period, if the project was re-planned.
	ReplanTime *int `json:"replan_time,omitempty" yaml:"replan_time,omitempty"`
}

// Validate checks the structural constraints the metric engine relies on.
func (p *Project) Validate() error {
	if len(p.PlannedValues) == 0 {
		return fmt.Errorf("project needs at least one planned value")
	}
	if len(p.EarnedValues) == 0 {
		return fmt.Errorf("project needs at least one earned value")
	}
	if len(p.EarnedValues) > len(p.PlannedValues) {
		return fmt.Errorf("earned series has %d periods but only %d are planned",
			len(p.EarnedValues), len(p.PlannedValues))
	}
	if p.ActualTime < 0 || p.ActualTime > len(p.PlannedValues)-1 {
		return fmt.Errorf("%w: actual time %d with %d planned periods",
			schedule.ErrInvalidPeriod, p.ActualTime, len(p.PlannedValues))
	}
	if p.MilestoneDuration < 0 {
		return fmt.Errorf("milestone duration cannot be negative")
	}
	if p.ReplanTime != nil {
		if rt := *p.ReplanTime; rt < 0 || rt > p.ActualTime {
			return fmt.Errorf("re-plan time %d must lie in [0, %d]", rt, p.ActualTime)
		}
	}
	return nil
}

// Options maps the project's optional inputs onto engine options.
func (p *Project) Options() schedule.Options {
	return schedule.Options{
		MilestoneDuration: p.MilestoneDuration,
		ReplanTime:        p.ReplanTime,
	}
}

// Normalize clamps negative series entries to zero, returning the project for
// chaining. Cumulative value series have no meaningful negative points.
func (p *Project) Normalize() *Project {
	p.PlannedValues = schedule.ClampNonNegative(p.PlannedValues)
	p.EarnedValues = schedule.ClampNonNegative(p.EarnedValues)
	return p
}
