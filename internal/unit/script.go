package unit

import (
	"errors"
	"fmt"

	"github.com/ivlev/segplay/internal/scene"
)

// Script is a segment that replays a fixed list of steps.
type Script struct {
	*Segment
	steps []Step
}

// NewScript validates steps and then attaches the segment's props to sc.
// An invalid step fails construction before the scene is touched.
func NewScript(index int, sc scene.Scene, steps []Step) (*Script, error) {
	checked, err := checkSteps(index, steps)
	if err != nil {
		return nil, err
	}

	seg, err := NewSegment(index, sc)
	if err != nil {
		return nil, err
	}

	return &Script{Segment: seg, steps: checked}, nil
}

// NewDetachedScript builds a script without a scene. It has no wand or root,
// so steps that need them are skipped during playback.
func NewDetachedScript(index int, steps []Step) (*Script, error) {
	checked, err := checkSteps(index, steps)
	if err != nil {
		return nil, err
	}
	return &Script{Segment: &Segment{Index: index}, steps: checked}, nil
}

func checkSteps(index int, steps []Step) ([]Step, error) {
	checked := make([]Step, len(steps))
	for i, st := range steps {
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("segment %d step %d: %w", index, i, err)
		}
		checked[i] = st
		if st.Position != nil {
			pos := *st.Position
			checked[i].Position = &pos
		}
	}
	return checked, nil
}

// Steps returns a copy of the script's steps.
func (s *Script) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Skipped returns how many steps a detached script leaves out on each pass.
func (s *Script) Skipped() int {
	if !s.Detached() {
		return 0
	}
	n := 0
	for _, st := range s.steps {
		if st.NeedsProps() {
			n++
		}
	}
	return n
}

// Play attaches the wand to actor and runs every step in order. The first
// failing call stops the pass.
func (s *Script) Play(actor scene.Actor) error {
	if actor == nil {
		return errors.New("nil actor")
	}
	if err := s.Attach(actor); err != nil {
		return err
	}

	detached := s.Detached()
	for i, st := range s.steps {
		if detached && st.NeedsProps() {
			continue
		}
		if err := st.apply(s.Segment, actor); err != nil {
			return fmt.Errorf("segment %d step %d (%s): %w", s.Index, i, st.Op, err)
		}
	}
	return nil
}
