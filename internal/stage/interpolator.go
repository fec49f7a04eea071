package stage

import (
	"math"
	"sort"

	"github.com/ivlev/segplay/internal/scene"
)

// Keyframe is an object's local position and opacity at a moment on the
// stage clock.
type Keyframe struct {
	Time     float64
	Position scene.Position
	Opacity  float64
}

// ObjectState is an interpolated object state.
type ObjectState struct {
	Position scene.Position `yaml:"position"`
	Opacity  float64        `yaml:"opacity"`
}

// InterpolateKeyframes returns the state at time t, easing between the two
// keyframes around it. Keyframes must be sorted by time.
func InterpolateKeyframes(keyframes []Keyframe, t float64) ObjectState {
	n := len(keyframes)
	if n == 0 {
		return ObjectState{}
	}
	if t <= keyframes[0].Time {
		return stateOf(keyframes[0])
	}
	if t >= keyframes[n-1].Time {
		return stateOf(keyframes[n-1])
	}

	// First keyframe strictly after t; 1 <= next < n here.
	next := sort.Search(n, func(i int) bool { return keyframes[i].Time > t })
	from, to := keyframes[next-1], keyframes[next]

	span := to.Time - from.Time
	if span <= 0 {
		return stateOf(to)
	}
	k := easeInOutCubic((t - from.Time) / span)

	return ObjectState{
		Position: blend(from.Position, to.Position, k),
		Opacity:  from.Opacity + (to.Opacity-from.Opacity)*k,
	}
}

func stateOf(kf Keyframe) ObjectState {
	return ObjectState{Position: kf.Position, Opacity: kf.Opacity}
}

func blend(a, b scene.Position, k float64) scene.Position {
	return scene.Position{
		X: a.X + (b.X-a.X)*k,
		Y: a.Y + (b.Y-a.Y)*k,
		Z: a.Z + (b.Z-a.Z)*k,
	}
}

func easeInOutCubic(x float64) float64 {
	if x < 0.5 {
		return 4 * x * x * x
	}
	return 1 - math.Pow(2-2*x, 3)/2
}

// Sample is the interpolated state of a call's subject halfway through the
// call and when it ends.
type Sample struct {
	Seq     int         `yaml:"seq"`
	Subject string      `yaml:"subject"`
	Mid     ObjectState `yaml:"mid"`
	End     ObjectState `yaml:"end"`
}

// Timeline samples the subject of every timed call made against a stage
// object, in call order.
func (s *Stage) Timeline() []Sample {
	var out []Sample
	for _, c := range s.calls {
		obj, ok := s.objects[c.Subject]
		if !ok || c.Duration <= 0 {
			continue
		}
		out = append(out, Sample{
			Seq:     c.Seq,
			Subject: c.Subject,
			Mid:     InterpolateKeyframes(obj.keyframes, c.Time+c.Duration/2),
			End:     InterpolateKeyframes(obj.keyframes, c.Time+c.Duration),
		})
	}
	return out
}
