package unit

import (
	"fmt"

	"github.com/ivlev/segplay/internal/scene"
)

// Unit is a single playable animation segment.
type Unit interface {
	Play(actor scene.Actor) error
}

const (
	WandName = "wand"
	RootName = "root"
)

// PropName is the scene name of a segment's prop, e.g. "wand-3".
func PropName(base string, index int) string {
	return fmt.Sprintf("%s-%d", base, index)
}

// Segment holds the props a unit animates with: the wand the actor's joints
// are pointed at and the root anchor the actor is moved to.
type Segment struct {
	Index int
	Wand  scene.Prop
	Root  scene.Prop
}

// NewSegment attaches a wand and a root anchor to sc. Both start invisible.
func NewSegment(index int, sc scene.Scene) (*Segment, error) {
	if sc == nil {
		return nil, fmt.Errorf("segment %d: nil scene", index)
	}

	wand, err := sc.AddProp(PropName(WandName, index))
	if err != nil {
		return nil, fmt.Errorf("segment %d: add %s: %w", index, WandName, err)
	}

	root, err := sc.AddProp(PropName(RootName, index))
	if err != nil {
		return nil, fmt.Errorf("segment %d: add %s: %w", index, RootName, err)
	}

	return &Segment{Index: index, Wand: wand, Root: root}, nil
}

// Detached reports whether the segment was built without a scene.
func (s *Segment) Detached() bool {
	return s.Wand == nil || s.Root == nil
}

// Attach makes actor the vehicle of the wand.
func (s *Segment) Attach(actor scene.Actor) error {
	if s.Wand == nil {
		return nil
	}
	if err := actor.Attach(s.Wand); err != nil {
		return fmt.Errorf("segment %d: attach %s: %w", s.Index, WandName, err)
	}
	return nil
}
