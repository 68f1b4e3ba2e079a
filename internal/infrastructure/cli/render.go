package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/estrack/estrack/pkg/domain/schedule"
)

// formatIndex renders a ratio to two decimals, with an infinity glyph for
// the sentinel values the metric engine emits.
func formatIndex(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	if math.IsInf(v, -1) {
		return "-∞"
	}
	return fmt.Sprintf("%.2f", v)
}

func renderMetricsText(w io.Writer, rec *schedule.MetricsRecord, actualTime int) {
	fmt.Fprintln(w, "Earned Schedule Metrics")
	fmt.Fprintln(w, "-----------------------")
	fmt.Fprintf(w, "Actual Time:        %d\n", actualTime)
	fmt.Fprintf(w, "Earned Schedule:    %s\n", formatIndex(rec.EarnedSchedule))
	fmt.Fprintf(w, "SV(t):              %+.2f\n", rec.ScheduleVariance)
	fmt.Fprintf(w, "SPI(t):             %s\n", formatIndex(rec.PerformanceIndex))

	if m := rec.Milestone; m != nil {
		fmt.Fprintln(w, "\nMilestone Forecast")
		fmt.Fprintln(w, "------------------")
		fmt.Fprintf(w, "IEAC(t):            %s\n", formatIndex(m.EstimateAtCompletion))
		fmt.Fprintf(w, "Forecast Variance:  %s\n", formatIndex(m.ForecastVariance))
		fmt.Fprintf(w, "TSPI:               %s\n", formatIndex(m.ToCompleteIndex))
	}

	if r := rec.Replan; r != nil {
		fmt.Fprintln(w, "\nRe-plan Forecast")
		fmt.Fprintln(w, "----------------")
		fmt.Fprintf(w, "Pre-replan:         %.2f periods\n", r.PreDuration)
		fmt.Fprintf(w, "Remaining:          %.2f periods\n", r.RemainingDuration)
		fmt.Fprintf(w, "Post-replan SPI:    %s\n", formatIndex(r.PerformanceIndex))
		fmt.Fprintf(w, "IEAC(t):            %s\n", formatIndex(r.EstimateAtCompletion))
	}
}

func renderJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderCurve draws a small ASCII chart of the cumulative PV and EV series.
// PV points render as '-', EV as '*', coincident points as '#'.
func renderCurve(pv, ev []float64, height int) string {
	if len(pv) == 0 || height < 2 {
		return ""
	}
	max := 0.0
	for _, v := range pv {
		if v > max {
			max = v
		}
	}
	for _, v := range ev {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return ""
	}

	width := len(pv)
	grid := make([][]byte, height)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", width))
	}
	plot := func(series []float64, mark byte) {
		for x, v := range series {
			if x >= width {
				break
			}
			y := int(v / max * float64(height-1))
			if y < 0 {
				y = 0
			}
			if y > height-1 {
				y = height - 1
			}
			row := height - 1 - y
			if grid[row][x] != ' ' && grid[row][x] != mark {
				grid[row][x] = '#'
			} else {
				grid[row][x] = mark
			}
		}
	}
	plot(pv, '-')
	plot(ev, '*')

	var b strings.Builder
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat("=", width))
	return b.String()
}
