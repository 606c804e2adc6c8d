package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/glass/spring"
	"github.com/pthm-cable/glass/surface"
)

// settleEps is the rest tolerance, as a fraction of the step size.
const settleEps = 0.005

// Fitness penalty weights.
const (
	overshootWeight  = 40.0
	unsettledPenalty = 10.0
	spreadWeight     = 2.0
)

// Response summarizes a unit step response.
type Response struct {
	Settle    float64 // seconds until at rest, or the limit
	Overshoot float64 // peak excursion past the target
	Settled   bool
}

// StepResponse drives an axis from 0 toward 1 with frame intervals taken
// cyclically from dts, each capped at surface.MaxFrameDT like the surfaces do.
func StepResponse(cfg spring.Config, dts []float64, limit float64) Response {
	axis := spring.NewAxis(cfg, 0)
	axis.SetTarget(1)

	var r Response
	t := 0.0
	for i := 0; t < limit; i++ {
		dt := min(dts[i%len(dts)], surface.MaxFrameDT)
		axis.Tick(dt)
		t += dt
		r.Overshoot = max(r.Overshoot, axis.Value-1)
		if axis.Settled(settleEps) {
			r.Settle, r.Settled = t, true
			return r
		}
	}
	r.Settle = limit
	return r
}

// Profile is a named frame interval schedule.
type Profile struct {
	Name string
	DTs  []float64
}

// Profiles returns fixed refresh rates plus seeded jittery schedules with
// occasional long frames.
func Profiles(seeds []int64) []Profile {
	profiles := []Profile{
		{Name: "30hz", DTs: []float64{1.0 / 30}},
		{Name: "60hz", DTs: []float64{1.0 / 60}},
		{Name: "120hz", DTs: []float64{1.0 / 120}},
		{Name: "144hz", DTs: []float64{1.0 / 144}},
	}
	for _, seed := range seeds {
		rng := rand.New(rand.NewSource(seed))
		dts := make([]float64, 240)
		for i := range dts {
			dts[i] = 1.0/144 + rng.Float64()*(1.0/30-1.0/144)
			if rng.Float64() < 0.02 {
				dts[i] = 0.25 // stall, capped by StepResponse
			}
		}
		profiles = append(profiles, Profile{Name: "jitter", DTs: dts})
	}
	return profiles
}

// Goal is the desired step response of one spring.
type Goal struct {
	Settle       float64 // seconds
	MaxOvershoot float64 // fraction of the step
}

// Score returns the penalty for r against g (lower = better).
func (g Goal) Score(r Response) float64 {
	e := (r.Settle - g.Settle) / g.Settle
	score := e * e
	if over := r.Overshoot - g.MaxOvershoot; over > 0 {
		score += overshootWeight * over * over
	}
	if !r.Settled {
		score += unsettledPenalty
	}
	return score
}

// FitnessEvaluator scores spring parameters across frame profiles.
type FitnessEvaluator struct {
	params     *ParamVector
	profiles   []Profile
	tilt       Goal
	refraction Goal
	limit      float64 // simulated seconds per response

	mu   sync.Mutex
	last [2]Response // worst tilt and refraction responses of the last call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, profiles []Profile, tilt, refraction Goal) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		profiles:   profiles,
		tilt:       tilt,
		refraction: refraction,
		limit:      3,
	}
}

// LastResponses returns the slowest tilt and refraction responses from the
// most recent evaluation.
func (fe *FitnessEvaluator) LastResponses() (tilt, refraction Response) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last[0], fe.last[1]
}

// Evaluate computes fitness for raw parameter values (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	v := fe.params.Clamp(x)
	springs := [2]spring.Config{
		{Stiffness: v[0], Damping: v[1], Mass: 1},
		{Stiffness: v[2], Damping: v[3], Mass: 1},
	}
	goals := [2]Goal{fe.tilt, fe.refraction}

	// Profiles run in parallel; each writes only its own slot.
	results := make([][2]Response, len(fe.profiles))
	var wg sync.WaitGroup
	for i, p := range fe.profiles {
		wg.Add(1)
		go func(idx int, p Profile) {
			defer wg.Done()
			for s := range springs {
				results[idx][s] = StepResponse(springs[s], p.DTs, fe.limit)
			}
		}(i, p)
	}
	wg.Wait()

	var total float64
	var worst [2]Response
	for s := range springs {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, r := range results {
			total += goals[s].Score(r[s])
			lo, hi = math.Min(lo, r[s].Settle), math.Max(hi, r[s].Settle)
			if r[s].Settle >= worst[s].Settle {
				worst[s] = r[s]
			}
		}
		// Frame-rate independence: the same spring should settle alike everywhere.
		spread := (hi - lo) / goals[s].Settle
		total += spreadWeight * spread * spread
	}

	fe.mu.Lock()
	fe.last = worst
	fe.mu.Unlock()

	return total / float64(len(fe.profiles))
}
