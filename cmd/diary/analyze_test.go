package main

import (
	"testing"
	"time"
)

func TestAnalysisPeriod(t *testing.T) {
	start, end := analysisPeriod(90)
	now := time.Now()

	if end.Year() != now.Year() || end.Month() != now.Month() || end.Day() != now.Day() {
		t.Errorf("end %v is not the current local day", end)
	}
	if end.Location() != now.Location() {
		t.Errorf("end location %v, want local %v", end.Location(), now.Location())
	}

	h, m, s := end.Clock()
	if h != 0 || m != 0 || s != 0 || end.Nanosecond() != 0 {
		t.Errorf("end %v is not local midnight", end)
	}

	if !start.Equal(end.AddDate(0, 0, -90)) {
		t.Errorf("start %v is not 90 days before end %v", start, end)
	}
	if h, m, s := start.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("start %v is not local midnight", start)
	}
}
