package cli

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/estrack/estrack/pkg/domain/schedule"
)

func TestFormatIndex(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want string
	}{
		{"finite", 1.125, "1.12"},
		{"rounded", 2.654, "2.65"},
		{"zero", 0, "0.00"},
		{"positive infinity", math.Inf(1), "∞"},
		{"negative infinity", math.Inf(-1), "-∞"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatIndex(tt.v); got != tt.want {
				t.Errorf("formatIndex(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestRenderMetricsTextSections(t *testing.T) {
	rec := &schedule.MetricsRecord{
		EarnedSchedule:   2.65,
		ScheduleVariance: -0.35,
		PerformanceIndex: 0.88,
		Milestone: &schedule.MilestoneForecast{
			EstimateAtCompletion: math.Inf(1),
			ForecastVariance:     math.Inf(-1),
			ToCompleteIndex:      math.Inf(1),
		},
	}

	var buf bytes.Buffer
	renderMetricsText(&buf, rec, 3)
	out := buf.String()

	for _, want := range []string{"Earned Schedule:    2.65", "Milestone Forecast", "TSPI:               ∞"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Re-plan Forecast") {
		t.Error("replan section rendered without replan data")
	}
}

func TestRenderCurve(t *testing.T) {
	pv := []float64{10, 25, 45, 70, 100}
	ev := []float64{8, 20, 32, 38}

	out := renderCurve(pv, ev, 6)
	if out == "" {
		t.Fatal("expected a chart")
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 6 rows plus axis", len(lines))
	}
	if !strings.Contains(out, "-") || !strings.Contains(out, "*") {
		t.Errorf("chart missing series marks:\n%s", out)
	}
}

func TestRenderCurveEarnedSeriesLongerThanPlanned(t *testing.T) {
	// EV points past the planned width are dropped, not plotted.
	out := renderCurve([]float64{10, 20}, []float64{5, 10, 15}, 6)
	if out == "" {
		t.Fatal("expected a chart")
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 2 {
			t.Errorf("line wider than planned series: %q", line)
		}
	}
}

func TestRenderCurveNegativeValues(t *testing.T) {
	// A decaying series can dip below zero; those points pin to the bottom row.
	out := renderCurve([]float64{100, 10, -80}, []float64{5, 5, 0.5}, 8)
	if out == "" {
		t.Fatal("expected a chart")
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 8 rows plus axis", len(lines))
	}
	bottom := lines[len(lines)-2]
	if !strings.ContainsAny(bottom, "-*#") {
		t.Errorf("negative points not pinned to bottom row:\n%s", out)
	}
}

func TestRenderCurveDegenerate(t *testing.T) {
	if out := renderCurve(nil, nil, 6); out != "" {
		t.Errorf("empty series rendered %q", out)
	}
	if out := renderCurve([]float64{0, 0}, nil, 6); out != "" {
		t.Errorf("flat zero series rendered %q", out)
	}
}
