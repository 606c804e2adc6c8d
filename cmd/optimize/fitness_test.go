package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/glass/config"
	"github.com/pthm-cable/glass/spring"
)

func TestStepResponseCriticalHasNoOvershoot(t *testing.T) {
	r := StepResponse(spring.Critical(300), []float64{1.0 / 60}, 3)
	if !r.Settled {
		t.Fatal("critical spring did not settle")
	}
	if r.Overshoot > 1e-9 {
		t.Errorf("overshoot = %f, want 0", r.Overshoot)
	}
}

func TestStepResponseUnderdampedOvershoots(t *testing.T) {
	cfg := spring.Config{Stiffness: 300, Damping: 5, Mass: 1}
	r := StepResponse(cfg, []float64{1.0 / 240}, 5)
	if math.Abs(r.Overshoot-cfg.Overshoot()) > 0.02 {
		t.Errorf("overshoot = %f, analytic %f", r.Overshoot, cfg.Overshoot())
	}
}

func TestStepResponseLimit(t *testing.T) {
	r := StepResponse(spring.Config{Stiffness: 1, Damping: 0.1, Mass: 1}, []float64{1.0 / 60}, 0.5)
	if r.Settled || math.Abs(r.Settle-0.5) > 1.0/60 {
		t.Errorf("response = %+v, want unsettled at the limit", r)
	}
}

func TestGoalScore(t *testing.T) {
	g := Goal{Settle: 0.4, MaxOvershoot: 0.05}
	tests := []struct {
		name string
		r    Response
		want float64
	}{
		{"on target", Response{Settle: 0.4, Settled: true}, 0},
		{"slow", Response{Settle: 0.8, Settled: true}, 1},
		{"overshoot allowed", Response{Settle: 0.4, Overshoot: 0.05, Settled: true}, 0},
		{"unsettled", Response{Settle: 0.4}, unsettledPenalty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Score(tt.r); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestEvaluatePrefersCloserSettle(t *testing.T) {
	params := NewParamVector()
	fe := NewFitnessEvaluator(params, Profiles([]int64{42}), Goal{Settle: 0.35, MaxOvershoot: 0.05}, Goal{Settle: 0.35, MaxOvershoot: 0.05})

	stiff := fe.Evaluate([]float64{400, 40, 400, 40})
	sluggish := fe.Evaluate([]float64{50, 80, 50, 80})
	if stiff >= sluggish {
		t.Errorf("fitness stiff=%f sluggish=%f, want stiff lower", stiff, sluggish)
	}
	if tilt, _ := fe.LastResponses(); tilt.Settle <= 0 {
		t.Errorf("last responses not recorded: %+v", tilt)
	}
}

func TestParamVectorRoundTrip(t *testing.T) {
	params := NewParamVector()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	values := []float64{500, 30, 2000, 1}
	params.ApplyToConfig(cfg, values)

	got := params.ExtractFromConfig(cfg)
	want := []float64{500, 30, 1000, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s = %f, want %f", params.Specs[i].Name, got[i], want[i])
		}
	}

	norm := params.Normalize(params.DefaultVector())
	back := params.Denormalize(norm)
	for i, v := range params.DefaultVector() {
		if math.Abs(back[i]-v) > 1e-9 {
			t.Errorf("%s round trip = %f, want %f", params.Specs[i].Name, back[i], v)
		}
	}
}
