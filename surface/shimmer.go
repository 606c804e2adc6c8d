package surface

import (
	"math"
	"time"
)

// Streak sweep keyframes, as fractions of the surface width.
const (
	StreakStart = -0.6
	StreakMid   = 0.6
	StreakEnd   = 1.6
)

// DefaultShimmerCycle is the length of one streak sweep.
const DefaultShimmerCycle = 5500 * time.Millisecond

// Streak is the specular highlight layer.
type Streak struct {
	Offset  float64 // horizontal offset as a fraction of the width
	Opacity float64 // peak highlight alpha, the clamped intensity
}

// ClampIntensity limits shimmer strength to [0,1].
func ClampIntensity(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// StreakOffset returns the streak position after elapsed time. Each half of
// the cycle eases in and out independently, like a keyframed animation.
func StreakOffset(elapsed, cycle time.Duration) float64 {
	if cycle <= 0 {
		return StreakStart
	}
	p := float64(elapsed%cycle) / float64(cycle)
	if p < 0.5 {
		return StreakStart + (StreakMid-StreakStart)*easeInOut(p/0.5)
	}
	return StreakMid + (StreakEnd-StreakMid)*easeInOut((p-0.5)/0.5)
}

// easeInOut evaluates cubic-bezier(0.42, 0, 0.58, 1) at progress u.
func easeInOut(u float64) float64 {
	if u <= 0 {
		return 0
	}
	if u >= 1 {
		return 1
	}
	const x1, x2 = 0.42, 0.58
	// Bisection on the monotonic x(t); 30 iterations is below float32 noise.
	lo, hi := 0.0, 1.0
	t := u
	for i := 0; i < 30; i++ {
		t = (lo + hi) / 2
		if bezier(t, x1, x2) < u {
			lo = t
		} else {
			hi = t
		}
	}
	return bezier(t, 0, 1)
}

// bezier evaluates a 1D cubic Bézier with endpoints 0 and 1.
func bezier(t, p1, p2 float64) float64 {
	mt := 1 - t
	return 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t
}
