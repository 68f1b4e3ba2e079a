// Package schedule implements Earned Schedule analysis over cumulative
// Planned Value and Earned Value series.
package schedule

import (
	"errors"
	"fmt"
	"math"
)

// epsilon bounds float comparisons against planned-value points.
const epsilon = 1e-9

// ErrInvalidPeriod is returned when the requested actual time lies outside
// the recorded series. Callers get a rejection, not a silent clamp.
var ErrInvalidPeriod = errors.New("actual time outside recorded series")

// MetricsRecord is one evaluation of the schedule metrics. Records are value
// objects: computed wholesale per evaluation, never patched incrementally.
// All fields carry full precision; rounding for display is up to the caller.
type MetricsRecord struct {
	// EarnedSchedule (ES) is the period at which the current earned value
	// was planned to occur, in 1-indexed period units.
	EarnedSchedule float64 `json:"earned_schedule" yaml:"earned_schedule"`
	// ScheduleVariance is SV(t) = ES - actual time.
	ScheduleVariance float64 `json:"schedule_variance" yaml:"schedule_variance"`
	// PerformanceIndex is SPI(t) = ES / actual time, 1.0 at time zero.
	PerformanceIndex float64 `json:"performance_index" yaml:"performance_index"`

	Milestone *MilestoneForecast `json:"milestone,omitempty" yaml:"milestone,omitempty"`
	Replan    *ReplanForecast    `json:"replan,omitempty" yaml:"replan,omitempty"`
}

// MilestoneForecast projects milestone completion from current performance.
// EstimateAtCompletion and ToCompleteIndex may be +Inf when the respective
// denominators vanish; that reads as "unbounded forecast", not a fault.
type MilestoneForecast struct {
	// EstimateAtCompletion is IEAC(t)_M: the period at which the milestone
	// is forecast to be reached.
	EstimateAtCompletion float64 `json:"estimate_at_completion" yaml:"estimate_at_completion"`
	// ForecastVariance is F-SV(t) = planned milestone period - IEAC(t)_M.
	ForecastVariance float64 `json:"forecast_variance" yaml:"forecast_variance"`
	// ToCompleteIndex is TSPI_M: the efficiency required from here on to
	// hit the milestone on time.
	ToCompleteIndex float64 `json:"to_complete_index" yaml:"to_complete_index"`
}

// ReplanForecast carries the re-baselined forecast when a re-plan point is set.
type ReplanForecast struct {
	// PreDuration is the number of periods elapsed before the re-plan.
	PreDuration float64 `json:"pre_duration" yaml:"pre_duration"`
	// RemainingDuration is the planned periods left after the re-plan.
	RemainingDuration float64 `json:"remaining_duration" yaml:"remaining_duration"`
	// PerformanceIndex is SPI(t) measured over the post-re-plan segment
	// only. It falls back to the overall SPI(t) until post-re-plan data
	// exists; the first period after a re-plan therefore inherits
	// pre-re-plan performance (known approximation, kept deliberately).
	PerformanceIndex float64 `json:"performance_index" yaml:"performance_index"`
	// EstimateAtCompletion is IEAC(t)_RP = pre duration + remaining/SPI.
	EstimateAtCompletion float64 `json:"estimate_at_completion" yaml:"estimate_at_completion"`
}

// Options selects the optional forecast blocks of a metrics evaluation.
type Options struct {
	// MilestoneDuration is the planned period of the tracked milestone.
	// Values <= 0 disable milestone forecasting.
	MilestoneDuration float64
	// ReplanTime marks the re-baseline period. Nil means no re-plan.
	// Must satisfy 0 <= *ReplanTime <= actual time.
	ReplanTime *int
}

// ComputeEarnedSchedule locates the latest cumulative earned value on the
// planned-value curve and returns the matching period, interpolating between
// planned points. Periods are 1-indexed in the result: an earned value equal
// to pvCum[0] yields 1. The result is 0 when the earned value is below the
// first planned point and len(pvCum) when it is at or beyond the last.
//
// pvCum must be non-empty; that is a caller precondition, not a runtime check.
func ComputeEarnedSchedule(evLatest float64, pvCum []float64) float64 {
	last := -1
	for i, pv := range pvCum {
		if pv > evLatest {
			break
		}
		last = i
	}
	if last < 0 {
		return 0
	}
	if last == len(pvCum)-1 || math.Abs(pvCum[last]-evLatest) < epsilon {
		return float64(last + 1)
	}

	span := pvCum[last+1] - pvCum[last]
	fraction := 0.0
	if span >= epsilon {
		fraction = (evLatest - pvCum[last]) / span
	}
	return float64(last+1) + fraction
}

// ComputeMetrics evaluates the full metrics record for the given cumulative
// series at actualTime. The earned series may be shorter than the planned
// series when recent periods have no earned value recorded; the latest entry
// is the one measured. An actualTime outside the planned series (or beyond
// any recorded data) is rejected with ErrInvalidPeriod.
func ComputeMetrics(pv, ev []float64, actualTime int, opts Options) (*MetricsRecord, error) {
	if len(pv) == 0 || len(ev) == 0 {
		return nil, fmt.Errorf("planned and earned series must be non-empty")
	}
	if actualTime < 0 || actualTime > len(pv)-1 {
		return nil, fmt.Errorf("%w: period %d with %d planned periods", ErrInvalidPeriod, actualTime, len(pv))
	}
	if opts.ReplanTime != nil {
		if rt := *opts.ReplanTime; rt < 0 || rt > actualTime {
			return nil, fmt.Errorf("re-plan time %d must lie in [0, %d]", rt, actualTime)
		}
	}

	es := ComputeEarnedSchedule(ev[len(ev)-1], pv)

	spi := 1.0
	if actualTime > 0 {
		spi = es / float64(actualTime)
	}

	record := &MetricsRecord{
		EarnedSchedule:   es,
		ScheduleVariance: es - float64(actualTime),
		PerformanceIndex: spi,
	}

	if opts.MilestoneDuration > 0 {
		record.Milestone = milestoneForecast(opts.MilestoneDuration, es, spi, actualTime)
	}
	if opts.ReplanTime != nil {
		record.Replan = replanForecast(pv, ev, actualTime, *opts.ReplanTime, spi)
	}
	return record, nil
}

func milestoneForecast(duration, es, spi float64, actualTime int) *MilestoneForecast {
	ieac := math.Inf(1)
	if spi > 0 {
		ieac = duration / spi
	}

	tspi := math.Inf(1)
	if duration != float64(actualTime) {
		tspi = (duration - es) / (duration - float64(actualTime))
	}

	return &MilestoneForecast{
		EstimateAtCompletion: ieac,
		ForecastVariance:     duration - ieac,
		ToCompleteIndex:      tspi,
	}
}

func replanForecast(pv, ev []float64, actualTime, replanTime int, overallSPI float64) *ReplanForecast {
	remaining := float64(len(pv) - replanTime)

	// Measure the post-re-plan segment on its own baseline when data for
	// it exists; otherwise the overall index stands in.
	spi := overallSPI
	if actualTime > replanTime && len(ev) > replanTime {
		es := ComputeEarnedSchedule(ev[len(ev)-1], pv[replanTime:])
		spi = es / float64(actualTime-replanTime)
	}

	ieac := math.Inf(1)
	if spi > 0 {
		ieac = float64(replanTime) + remaining/spi
	}

	return &ReplanForecast{
		PreDuration:          float64(replanTime),
		RemainingDuration:    remaining,
		PerformanceIndex:     spi,
		EstimateAtCompletion: ieac,
	}
}
