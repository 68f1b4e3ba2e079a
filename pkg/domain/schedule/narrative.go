package schedule

import (
	"fmt"
	"math"
	"strings"
)

// The narrative layer is a decision table over fixed numeric thresholds,
// split into a classifier (tags) and a formatter (text) so the thresholds
// stay testable independent of wording.

// ScheduleStatus buckets SPI(t) at the 0.9 and 1.0 thresholds.
type ScheduleStatus string

const (
	// StatusOnTrack: SPI(t) >= 1.0.
	StatusOnTrack ScheduleStatus = "on_track"
	// StatusLagging: 0.9 <= SPI(t) < 1.0.
	StatusLagging ScheduleStatus = "lagging"
	// StatusBehind: SPI(t) < 0.9.
	StatusBehind ScheduleStatus = "behind"
)

// ForecastOutlook buckets the milestone forecast variance at -1 and 0.
type ForecastOutlook string

const (
	// OutlookOnTime: F-SV(t) >= 0.
	OutlookOnTime ForecastOutlook = "on_time"
	// OutlookMinorSlip: -1 <= F-SV(t) < 0.
	OutlookMinorSlip ForecastOutlook = "minor_slip"
	// OutlookMajorSlip: F-SV(t) < -1.
	OutlookMajorSlip ForecastOutlook = "major_slip"
	// OutlookUnknown: no milestone forecast in the record.
	OutlookUnknown ForecastOutlook = "unknown"
)

// RequiredEffort buckets TSPI_M at the 1.0 and 1.2 thresholds.
type RequiredEffort string

const (
	// EffortSustainable: TSPI_M <= 1.0.
	EffortSustainable RequiredEffort = "sustainable"
	// EffortStretch: 1.0 < TSPI_M <= 1.2.
	EffortStretch RequiredEffort = "stretch"
	// EffortUnrealistic: TSPI_M > 1.2, including the +Inf sentinel.
	EffortUnrealistic RequiredEffort = "unrealistic"
	// EffortUnknown: no milestone forecast in the record.
	EffortUnknown RequiredEffort = "unknown"
)

// Trend compares SPI(t) against the immediately preceding evaluation.
// The comparison is exact equality, not a tolerance band.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Classification is the structured outcome of the narrative decision table.
type Classification struct {
	Status  ScheduleStatus  `json:"status" yaml:"status"`
	Outlook ForecastOutlook `json:"outlook" yaml:"outlook"`
	Effort  RequiredEffort  `json:"effort" yaml:"effort"`
	Trend   Trend           `json:"trend" yaml:"trend"`
}

// Classify derives the qualitative tags for the current record. prev may be
// nil for the first evaluation; the trend then reads as stable.
func Classify(cur, prev *MetricsRecord) Classification {
	c := Classification{
		Status:  classifyStatus(cur.PerformanceIndex),
		Outlook: OutlookUnknown,
		Effort:  EffortUnknown,
		Trend:   TrendStable,
	}

	if m := cur.Milestone; m != nil {
		c.Outlook = classifyOutlook(m.ForecastVariance)
		c.Effort = classifyEffort(m.ToCompleteIndex)
	}

	if prev != nil {
		switch {
		case cur.PerformanceIndex > prev.PerformanceIndex:
			c.Trend = TrendImproving
		case cur.PerformanceIndex < prev.PerformanceIndex:
			c.Trend = TrendDeclining
		}
	}
	return c
}

func classifyStatus(spi float64) ScheduleStatus {
	switch {
	case spi >= 1.0:
		return StatusOnTrack
	case spi >= 0.9:
		return StatusLagging
	default:
		return StatusBehind
	}
}

func classifyOutlook(forecastVariance float64) ForecastOutlook {
	switch {
	case forecastVariance >= 0:
		return OutlookOnTime
	case forecastVariance >= -1:
		return OutlookMinorSlip
	default:
		return OutlookMajorSlip
	}
}

func classifyEffort(tspi float64) RequiredEffort {
	switch {
	case tspi <= 1.0:
		return EffortSustainable
	case tspi <= 1.2:
		return EffortStretch
	default:
		return EffortUnrealistic
	}
}

// FormatNarrative renders a classification as status text. The wording is a
// fixed template per tag; every sentence tracks exactly one classifier bucket.
func FormatNarrative(c Classification, cur *MetricsRecord) string {
	var parts []string

	switch c.Status {
	case StatusOnTrack:
		parts = append(parts, fmt.Sprintf("Schedule performance is on or ahead of plan (SPI(t) %.2f).", cur.PerformanceIndex))
	case StatusLagging:
		parts = append(parts, fmt.Sprintf("Schedule performance is slightly behind plan (SPI(t) %.2f).", cur.PerformanceIndex))
	case StatusBehind:
		parts = append(parts, fmt.Sprintf("Schedule performance is significantly behind plan (SPI(t) %.2f).", cur.PerformanceIndex))
	}

	if m := cur.Milestone; m != nil {
		switch c.Outlook {
		case OutlookOnTime:
			parts = append(parts, fmt.Sprintf("The milestone is forecast on time (F-SV(t) %s).", formatSigned(m.ForecastVariance)))
		case OutlookMinorSlip:
			parts = append(parts, fmt.Sprintf("The milestone is forecast to slip by under one period (F-SV(t) %s).", formatSigned(m.ForecastVariance)))
		case OutlookMajorSlip:
			parts = append(parts, fmt.Sprintf("The milestone is forecast to slip by more than one period (F-SV(t) %s).", formatSigned(m.ForecastVariance)))
		}

		switch c.Effort {
		case EffortSustainable:
			parts = append(parts, fmt.Sprintf("Required efficiency to hold the milestone date is sustainable (TSPI %.2f).", m.ToCompleteIndex))
		case EffortStretch:
			parts = append(parts, fmt.Sprintf("Holding the milestone date demands a stretch in efficiency (TSPI %.2f).", m.ToCompleteIndex))
		case EffortUnrealistic:
			if math.IsInf(m.ToCompleteIndex, 1) {
				parts = append(parts, "No remaining time to the milestone; the date cannot be met by performance alone.")
			} else {
				parts = append(parts, fmt.Sprintf("Required efficiency to hold the milestone date is unrealistic (TSPI %.2f).", m.ToCompleteIndex))
			}
		}
	}

	switch c.Trend {
	case TrendImproving:
		parts = append(parts, "Performance is improving against the previous period.")
	case TrendDeclining:
		parts = append(parts, "Performance is declining against the previous period.")
	case TrendStable:
		parts = append(parts, "Performance is holding steady.")
	}

	return strings.Join(parts, " ")
}

func formatSigned(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%+.2f", v)
}
