// Package application wires the schedule engine and simulation driver into
// services consumed by the CLI and other hosts.
package application

import (
	"fmt"

	"github.com/estrack/estrack/pkg/domain/project"
	"github.com/estrack/estrack/pkg/domain/schedule"
)

// CalcService evaluates schedule metrics for project inputs. It is a pure
// query surface: identical inputs always produce identical records.
type CalcService struct{}

// NewCalcService creates a calc service.
func NewCalcService() *CalcService {
	return &CalcService{}
}

// Evaluate validates the project and computes its metrics record.
func (s *CalcService) Evaluate(p *project.Project) (*schedule.MetricsRecord, error) {
	if p == nil {
		return nil, fmt.Errorf("no project supplied")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	record, err := schedule.ComputeMetrics(p.PlannedValues, p.EarnedValues, p.ActualTime, p.Options())
	if err != nil {
		return nil, fmt.Errorf("compute metrics: %w", err)
	}
	return record, nil
}

// Classify derives the qualitative analysis for a record, optionally against
// a preceding one for the trend component.
func (s *CalcService) Classify(cur, prev *schedule.MetricsRecord) (schedule.Classification, string) {
	c := schedule.Classify(cur, prev)
	return c, schedule.FormatNarrative(c, cur)
}
