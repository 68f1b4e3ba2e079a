package schedule

import (
	"encoding/json"
	"math"
)

// The +/-Inf sentinels are legal metric values but not legal JSON numbers.
// Forecast fields marshal them as null so step logs survive encoding/json;
// null unmarshals back to the sentinel the formulas would have produced.

type milestoneForecastJSON struct {
	EstimateAtCompletion *float64 `json:"estimate_at_completion"`
	ForecastVariance     *float64 `json:"forecast_variance"`
	ToCompleteIndex      *float64 `json:"to_complete_index"`
}

func (m MilestoneForecast) MarshalJSON() ([]byte, error) {
	return json.Marshal(milestoneForecastJSON{
		EstimateAtCompletion: finiteOrNil(m.EstimateAtCompletion),
		ForecastVariance:     finiteOrNil(m.ForecastVariance),
		ToCompleteIndex:      finiteOrNil(m.ToCompleteIndex),
	})
}

func (m *MilestoneForecast) UnmarshalJSON(data []byte) error {
	var raw milestoneForecastJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.EstimateAtCompletion = valueOrInf(raw.EstimateAtCompletion, 1)
	m.ForecastVariance = valueOrInf(raw.ForecastVariance, -1)
	m.ToCompleteIndex = valueOrInf(raw.ToCompleteIndex, 1)
	return nil
}

type replanForecastJSON struct {
	PreDuration          float64  `json:"pre_duration"`
	RemainingDuration    float64  `json:"remaining_duration"`
	PerformanceIndex     float64  `json:"performance_index"`
	EstimateAtCompletion *float64 `json:"estimate_at_completion"`
}

func (r ReplanForecast) MarshalJSON() ([]byte, error) {
	return json.Marshal(replanForecastJSON{
		PreDuration:          r.PreDuration,
		RemainingDuration:    r.RemainingDuration,
		PerformanceIndex:     r.PerformanceIndex,
		EstimateAtCompletion: finiteOrNil(r.EstimateAtCompletion),
	})
}

func (r *ReplanForecast) UnmarshalJSON(data []byte) error {
	var raw replanForecastJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.PreDuration = raw.PreDuration
	r.RemainingDuration = raw.RemainingDuration
	r.PerformanceIndex = raw.PerformanceIndex
	r.EstimateAtCompletion = valueOrInf(raw.EstimateAtCompletion, 1)
	return nil
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func valueOrInf(v *float64, sign int) float64 {
	if v == nil {
		return math.Inf(sign)
	}
	return *v
}
