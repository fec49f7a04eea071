package unit

import (
	"errors"
	"testing"

	"github.com/ivlev/segplay/internal/scene"
	"github.com/ivlev/segplay/internal/stage"
)

func walkSteps() []Step {
	return []Step{
		{Op: OpRootPosition, Position: &scene.Position{Y: 0.25}, Duration: 0},
		{Op: OpMoveToRoot, Duration: 0},
		{Op: OpWandPosition, Position: &scene.Position{X: 0.1, Y: 1.2, Z: 0.3}, Duration: 0},
		{Op: OpPointAt, Joint: scene.JointLeftShoulder, Duration: 0},
		{Op: OpRoll, Joint: scene.JointLeftShoulder, Amount: 0.5, Direction: scene.Left, Duration: 0},
		{Op: OpMove, Direction: scene.Forward, Amount: 1, Duration: 1},
		{Op: OpOpacity, Opacity: 0.5, Duration: 0.5},
		{Op: OpDelay, Duration: 0.0166},
	}
}

func TestNewScriptIsInvisible(t *testing.T) {
	st := stage.New("scene")
	s, err := NewScript(4, st, walkSteps())
	if err != nil {
		t.Fatalf("NewScript failed: %v", err)
	}
	if s.Detached() {
		t.Fatal("Script built on a scene should not be detached")
	}

	for _, name := range []string{"wand-4", "root-4"} {
		opacity, ok := st.Opacity(name)
		if !ok {
			t.Fatalf("%s not on stage", name)
		}
		if opacity != 0 {
			t.Errorf("%s should be invisible, got %.2f", name, opacity)
		}
		vehicle, _ := st.Vehicle(name)
		if vehicle != "scene" {
			t.Errorf("%s should ride on the scene, got %q", name, vehicle)
		}
	}
	if st.Clock() != 0 {
		t.Errorf("Construction should take no time, clock is %.3f", st.Clock())
	}
}

func TestScriptPlay(t *testing.T) {
	st := stage.New("scene")
	s, err := NewScript(0, st, walkSteps())
	if err != nil {
		t.Fatalf("NewScript failed: %v", err)
	}
	actor, err := st.NewActor("biped")
	if err != nil {
		t.Fatalf("NewActor failed: %v", err)
	}

	if err := s.Play(actor); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	if vehicle, _ := st.Vehicle("wand-0"); vehicle != "biped" {
		t.Errorf("Wand should ride on the actor, got %q", vehicle)
	}

	pos, _ := st.WorldPosition("biped")
	if pos.Y != 0.25 || pos.Z != 1 {
		t.Errorf("Unexpected actor position %v", pos)
	}

	aim, ok := actor.Aim(scene.JointLeftShoulder)
	if !ok {
		t.Fatal("Shoulder was never pointed")
	}
	// The wand rides on the actor, which stood on the root at (0, 0.25, 0).
	if aim.X != 0.1 || aim.Y != 1.45 || aim.Z != 0.3 {
		t.Errorf("Unexpected aim point %v", aim)
	}
	if actor.RollOf(scene.JointLeftShoulder) != 0.5 {
		t.Errorf("Expected roll 0.5, got %f", actor.RollOf(scene.JointLeftShoulder))
	}
	if opacity, _ := st.Opacity("biped"); opacity != 0.5 {
		t.Errorf("Expected actor opacity 0.5, got %f", opacity)
	}
}

func TestScriptRejectsBadSteps(t *testing.T) {
	tests := []struct {
		name string
		step Step
	}{
		{"unknown op", Step{Op: "teleport"}},
		{"missing position", Step{Op: OpWandPosition}},
		{"missing joint", Step{Op: OpPointAt}},
		{"roll up", Step{Op: OpRoll, Joint: scene.JointNeck, Direction: scene.Up}},
		{"bad direction", Step{Op: OpMove, Direction: "sideways"}},
		{"opacity too high", Step{Op: OpOpacity, Opacity: 2}},
		{"negative duration", Step{Op: OpDelay, Duration: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := stage.New("scene")
			if _, err := NewScript(0, st, []Step{tt.step}); err == nil {
				t.Error("Expected error, got nil")
			}
			if len(st.Calls()) != 0 {
				t.Errorf("Failed construction touched the scene: %v", st.Calls())
			}
		})
	}

	_, err := NewDetachedScript(0, []Step{{Op: "teleport"}})
	if !errors.Is(err, ErrUnknownOp) {
		t.Errorf("Expected ErrUnknownOp, got %v", err)
	}
}

func TestDetachedScriptSkipsPropSteps(t *testing.T) {
	s, err := NewDetachedScript(2, walkSteps())
	if err != nil {
		t.Fatalf("NewDetachedScript failed: %v", err)
	}
	if !s.Detached() {
		t.Fatal("Expected detached script")
	}
	if s.Skipped() != 5 {
		t.Errorf("Expected 5 skipped steps, got %d", s.Skipped())
	}

	st := stage.New("scene")
	actor, err := st.NewActor("biped")
	if err != nil {
		t.Fatalf("NewActor failed: %v", err)
	}
	if err := s.Play(actor); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	var ops []string
	for _, c := range st.Calls() {
		ops = append(ops, c.Op)
	}
	want := []string{"roll", "move", "set-opacity"}
	if len(ops) != len(want) {
		t.Fatalf("Expected ops %v, got %v", want, ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("Op %d: expected %s, got %s", i, want[i], ops[i])
		}
	}
}

func TestScriptPlayPropagatesErrors(t *testing.T) {
	st := stage.New("scene")
	s, err := NewScript(0, st, walkSteps())
	if err != nil {
		t.Fatalf("NewScript failed: %v", err)
	}
	actor, _ := st.NewActor("biped")

	st.FailOn("move", 1)
	err = s.Play(actor)
	if !errors.Is(err, stage.ErrInjected) {
		t.Fatalf("Expected injected error, got %v", err)
	}
	for _, c := range st.Calls() {
		if c.Op == "set-opacity" && c.Subject == "biped" {
			t.Error("Steps after the failing one should not run")
		}
	}
}

func TestStepsAreCopied(t *testing.T) {
	steps := walkSteps()
	s, err := NewDetachedScript(0, steps)
	if err != nil {
		t.Fatalf("NewDetachedScript failed: %v", err)
	}
	steps[0].Position.Y = 99
	steps[1].Op = OpDelay

	got := s.Steps()
	if got[0].Position.Y != 0.25 || got[1].Op != OpMoveToRoot {
		t.Errorf("Script shares state with its input: %+v", got[:2])
	}
}
