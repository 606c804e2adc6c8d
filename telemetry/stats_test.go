package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeMedianP90(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	p50, p90 := ComputeMedianP90(values)
	if math.Abs(p50-5.5) > 0.001 {
		t.Errorf("p50 = %v, want 5.5", p50)
	}
	if math.Abs(p90-9.1) > 0.001 {
		t.Errorf("p90 = %v, want 9.1", p90)
	}
	if values[0] != 10 {
		t.Error("input slice was reordered")
	}
}

func TestWindowStatsHealthy(t *testing.T) {
	if !(WindowStats{}).Healthy() {
		t.Error("empty stats should be healthy")
	}
	if (WindowStats{LeakedFrames: 1}).Healthy() {
		t.Error("leaked frames should be unhealthy")
	}
	if (WindowStats{DuplicatedFrames: 1}).Healthy() {
		t.Error("duplicated frames should be unhealthy")
	}
}
