package simulation

import (
	"fmt"
	"math"
)

// Scenario selects how simulated earned value tracks planned value growth.
type Scenario string

const (
	// ScenarioRecovery lifts the performance index by 0.05 per step,
	// capped at 1.0.
	ScenarioRecovery Scenario = "recovery"
	// ScenarioSlippage lowers the performance index by 0.03 per step,
	// floored at 0.7.
	ScenarioSlippage Scenario = "slippage"
	// ScenarioMaintain holds the current performance index.
	ScenarioMaintain Scenario = "maintain"
)

// ParseScenario validates a scenario tag from user input.
func ParseScenario(s string) (Scenario, error) {
	switch Scenario(s) {
	case ScenarioRecovery, ScenarioSlippage, ScenarioMaintain:
		return Scenario(s), nil
	}
	return "", fmt.Errorf("unknown scenario %q (expected recovery, slippage or maintain)", s)
}

// targetIndex returns the performance index a step aims for, from the
// previous evaluation's SPI(t).
func (s Scenario) targetIndex(previousSPI float64) float64 {
	switch s {
	case ScenarioRecovery:
		return math.Min(1.0, previousSPI+0.05)
	case ScenarioSlippage:
		return math.Max(0.7, previousSPI-0.03)
	default:
		return previousSPI
	}
}
