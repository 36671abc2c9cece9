package batch

import (
	"math"

	"github.com/linkpulse/linkpulse/internal/model"
)

// Summarize reduces a result set to per-status counts, the error list and
// the mean response time (rounded to the nearest millisecond). The average
// of an empty result set is defined as 0.
func Summarize(results []model.ProbeResult) model.BatchSummary {
	summary := model.BatchSummary{
		Total:          len(results),
		CountsByStatus: make(map[model.Status]int),
	}
	if len(results) == 0 {
		return summary
	}

	var totalMs int64
	for _, res := range results {
		summary.CountsByStatus[res.Status]++
		totalMs += res.ResponseTimeMs
		if res.ErrorDetail != "" {
			summary.ErrorList = append(summary.ErrorList, model.BatchError{
				URL:         res.URL,
				ErrorDetail: res.ErrorDetail,
			})
		}
	}
	summary.AverageResponseTimeMs = int64(math.Round(float64(totalMs) / float64(len(results))))
	return summary
}
