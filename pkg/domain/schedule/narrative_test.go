package schedule

import (
	"math"
	"strings"
	"testing"
)

func record(spi float64) *MetricsRecord {
	return &MetricsRecord{PerformanceIndex: spi}
}

func TestClassifyStatusThresholds(t *testing.T) {
	tests := []struct {
		spi  float64
		want ScheduleStatus
	}{
		{1.2, StatusOnTrack},
		{1.0, StatusOnTrack},
		{0.99, StatusLagging},
		{0.9, StatusLagging},
		{0.89, StatusBehind},
		{0.0, StatusBehind},
	}
	for _, tt := range tests {
		if got := Classify(record(tt.spi), nil).Status; got != tt.want {
			t.Errorf("SPI %v: status = %s, want %s", tt.spi, got, tt.want)
		}
	}
}

func TestClassifyOutlookThresholds(t *testing.T) {
	tests := []struct {
		fsv  float64
		want ForecastOutlook
	}{
		{0.5, OutlookOnTime},
		{0, OutlookOnTime},
		{-0.5, OutlookMinorSlip},
		{-1, OutlookMinorSlip},
		{-1.01, OutlookMajorSlip},
		{math.Inf(-1), OutlookMajorSlip},
	}
	for _, tt := range tests {
		rec := record(1)
		rec.Milestone = &MilestoneForecast{ForecastVariance: tt.fsv, ToCompleteIndex: 1}
		if got := Classify(rec, nil).Outlook; got != tt.want {
			t.Errorf("F-SV %v: outlook = %s, want %s", tt.fsv, got, tt.want)
		}
	}
}

func TestClassifyEffortThresholds(t *testing.T) {
	tests := []struct {
		tspi float64
		want RequiredEffort
	}{
		{0.8, EffortSustainable},
		{1.0, EffortSustainable},
		{1.1, EffortStretch},
		{1.2, EffortStretch},
		{1.21, EffortUnrealistic},
		{math.Inf(1), EffortUnrealistic},
	}
	for _, tt := range tests {
		rec := record(1)
		rec.Milestone = &MilestoneForecast{ToCompleteIndex: tt.tspi}
		if got := Classify(rec, nil).Effort; got != tt.want {
			t.Errorf("TSPI %v: effort = %s, want %s", tt.tspi, got, tt.want)
		}
	}
}

func TestClassifyWithoutMilestone(t *testing.T) {
	c := Classify(record(1), nil)
	if c.Outlook != OutlookUnknown || c.Effort != EffortUnknown {
		t.Errorf("no-milestone classification = %s/%s, want unknown/unknown", c.Outlook, c.Effort)
	}
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name      string
		cur, prev float64
		want      Trend
	}{
		{"improving", 1.1, 1.0, TrendImproving},
		{"declining", 0.9, 1.0, TrendDeclining},
		{"exactly equal is stable", 1.0, 1.0, TrendStable},
		{"tiny change still counts", 1.0 + 1e-12, 1.0, TrendImproving},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(record(tt.cur), record(tt.prev)).Trend; got != tt.want {
				t.Errorf("trend = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyTrendWithoutHistory(t *testing.T) {
	if got := Classify(record(1.3), nil).Trend; got != TrendStable {
		t.Errorf("first-evaluation trend = %s, want stable", got)
	}
}

func TestFormatNarrativeTracksClassification(t *testing.T) {
	rec := record(0.85)
	rec.Milestone = &MilestoneForecast{
		EstimateAtCompletion: 11.76,
		ForecastVariance:     -1.76,
		ToCompleteIndex:      1.31,
	}
	text := FormatNarrative(Classify(rec, record(0.9)), rec)

	for _, want := range []string{
		"significantly behind plan (SPI(t) 0.85)",
		"slip by more than one period (F-SV(t) -1.76)",
		"unrealistic (TSPI 1.31)",
		"declining against the previous period",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("narrative missing %q:\n%s", want, text)
		}
	}
}

func TestFormatNarrativeMilestoneDueNow(t *testing.T) {
	rec := record(1.0)
	rec.Milestone = &MilestoneForecast{
		EstimateAtCompletion: 3,
		ForecastVariance:     0,
		ToCompleteIndex:      math.Inf(1),
	}
	text := FormatNarrative(Classify(rec, nil), rec)
	if !strings.Contains(text, "cannot be met by performance alone") {
		t.Errorf("narrative missing due-now wording:\n%s", text)
	}
}
