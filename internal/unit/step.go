package unit

import (
	"errors"
	"fmt"

	"github.com/ivlev/segplay/internal/scene"
)

var ErrUnknownOp = errors.New("unknown step op")

// Op names a single instruction in a segment.
type Op string

const (
	OpRootPosition Op = "root-position" // root relative to its vehicle
	OpMoveToRoot   Op = "move-to-root"  // actor moves onto the root anchor
	OpWandPosition Op = "wand-position" // wand relative to its vehicle (the actor)
	OpPointAt      Op = "point-at"      // actor joint points at the wand
	OpRoll         Op = "roll"
	OpMove         Op = "move"
	OpOpacity      Op = "opacity"
	OpDelay        Op = "delay"
)

// Step is one instruction of a segment. Duration is in seconds.
type Step struct {
	Op        Op              `yaml:"op"`
	Joint     string          `yaml:"joint,omitempty"`
	Position  *scene.Position `yaml:"position,omitempty"`
	Direction scene.Direction `yaml:"direction,omitempty"`
	Amount    float64         `yaml:"amount,omitempty"`
	Opacity   float64         `yaml:"opacity,omitempty"`
	Duration  float64         `yaml:"duration"`
}

// NeedsProps reports whether the step works on the unit's wand or root.
func (s Step) NeedsProps() bool {
	switch s.Op {
	case OpRootPosition, OpMoveToRoot, OpWandPosition, OpPointAt, OpDelay:
		return true
	}
	return false
}

// Validate checks that the step carries the arguments its op needs.
func (s Step) Validate() error {
	if s.Duration < 0 {
		return fmt.Errorf("%s: negative duration %f", s.Op, s.Duration)
	}

	switch s.Op {
	case OpRootPosition, OpWandPosition:
		if s.Position == nil {
			return fmt.Errorf("%s: missing position", s.Op)
		}
	case OpPointAt:
		if s.Joint == "" {
			return fmt.Errorf("%s: missing joint", s.Op)
		}
	case OpRoll:
		if s.Joint == "" {
			return fmt.Errorf("%s: missing joint", s.Op)
		}
		if s.Direction != scene.Left && s.Direction != scene.Right {
			return fmt.Errorf("%s: direction must be left or right, got %q", s.Op, s.Direction)
		}
	case OpMove:
		if !s.Direction.Valid() {
			return fmt.Errorf("%s: invalid direction %q", s.Op, s.Direction)
		}
	case OpOpacity:
		if s.Opacity < 0 || s.Opacity > 1 {
			return fmt.Errorf("%s: opacity %f out of [0,1]", s.Op, s.Opacity)
		}
	case OpMoveToRoot, OpDelay:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
	}
	return nil
}

// apply runs the step. seg must not be detached when the step needs props.
func (s Step) apply(seg *Segment, actor scene.Actor) error {
	switch s.Op {
	case OpRootPosition:
		return seg.Root.SetPosition(*s.Position, s.Duration)
	case OpMoveToRoot:
		return actor.MoveTo(seg.Root, s.Duration)
	case OpWandPosition:
		return seg.Wand.SetPosition(*s.Position, s.Duration)
	case OpPointAt:
		return actor.PointAt(s.Joint, seg.Wand, s.Duration)
	case OpRoll:
		return actor.Roll(s.Joint, s.Amount, s.Direction, s.Duration)
	case OpMove:
		return actor.Move(s.Direction, s.Amount, s.Duration)
	case OpOpacity:
		return actor.SetOpacity(s.Opacity, s.Duration)
	case OpDelay:
		return seg.Wand.Delay(s.Duration)
	}
	return fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
}
