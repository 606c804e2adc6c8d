package game

import (
	"time"

	"github.com/pthm-cable/glass/viewport"
)

// Autopilot is a scripted pointer tour used in headless runs and demos. It
// dwells on each waypoint for half a leg, then eases to the next one, and
// loops.
type Autopilot struct {
	points [][2]float64
	leg    time.Duration
}

// NewAutopilot tours the centre of each rect, then rest, which should lie
// outside every rect so each lap ends with a pointer leave.
func NewAutopilot(rects []viewport.Rect, rest [2]float64, leg time.Duration) *Autopilot {
	points := make([][2]float64, 0, len(rects)+1)
	for _, r := range rects {
		cx, cy := r.Center()
		points = append(points, [2]float64{cx, cy})
	}
	points = append(points, rest)
	if leg <= 0 {
		leg = 2 * time.Second
	}
	return &Autopilot{points: points, leg: leg}
}

// Lap returns the duration of one full tour.
func (a *Autopilot) Lap() time.Duration {
	return a.leg * time.Duration(len(a.points))
}

// Pointer returns the pointer position at time t.
func (a *Autopilot) Pointer(t time.Duration) (x, y float64) {
	if t < 0 {
		t = 0
	}
	t %= a.Lap()
	i := int(t / a.leg)
	u := float64(t%a.leg) / float64(a.leg)

	from := a.points[i]
	if u < 0.5 {
		return from[0], from[1]
	}
	to := a.points[(i+1)%len(a.points)]
	s := smoothstep((u - 0.5) * 2)
	return from[0] + (to[0]-from[0])*s, from[1] + (to[1]-from[1])*s
}

func smoothstep(u float64) float64 {
	return u * u * (3 - 2*u)
}
