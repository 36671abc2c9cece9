package batch_test

import (
	"testing"

	"github.com/linkpulse/linkpulse/internal/batch"
	"github.com/linkpulse/linkpulse/internal/model"
)

func TestSummarize(t *testing.T) {
	t.Parallel()
	results := []model.ProbeResult{
		{URL: "https://a.example/", Status: model.StatusHealthy, ResponseTimeMs: 100},
		{URL: "https://b.example/", Status: model.StatusHealthy, ResponseTimeMs: 200},
		{URL: "https://c.example/", Status: model.StatusBroken, ResponseTimeMs: 50, ErrorDetail: "dial refused"},
		{URL: "https://d.example/", Status: model.StatusRedirect, ResponseTimeMs: 53},
	}

	s := batch.Summarize(results)
	if s.Total != 4 {
		t.Fatalf("total = %d", s.Total)
	}
	sum := 0
	for _, n := range s.CountsByStatus {
		sum += n
	}
	if sum != s.Total {
		t.Fatalf("counts sum to %d, total %d", sum, s.Total)
	}
	if s.CountsByStatus[model.StatusHealthy] != 2 || s.CountsByStatus[model.StatusBroken] != 1 {
		t.Fatalf("counts = %v", s.CountsByStatus)
	}
	// (100+200+50+53)/4 = 100.75, rounds to 101
	if s.AverageResponseTimeMs != 101 {
		t.Fatalf("average = %d, want 101", s.AverageResponseTimeMs)
	}
	if len(s.ErrorList) != 1 || s.ErrorList[0].URL != "https://c.example/" {
		t.Fatalf("errorList = %v", s.ErrorList)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()
	s := batch.Summarize(nil)
	if s.Total != 0 || s.AverageResponseTimeMs != 0 {
		t.Fatalf("got %+v", s)
	}
	if len(s.CountsByStatus) != 0 {
		t.Fatalf("counts = %v", s.CountsByStatus)
	}
}
