package scene

import "fmt"

// Object is anything that can serve as a vehicle or a target in the scene.
type Object interface {
	Name() string
}

// Prop is a helper object owned by a single animation unit (the "wand" it
// points joints at, or the "root" anchor the actor is moved to).
// Durations are in seconds.
type Prop interface {
	Object
	SetPosition(pos Position, duration float64) error
	SetOpacity(opacity float64, duration float64) error
	Delay(duration float64) error
}

// Scene is the 3D environment props are attached to before playback.
type Scene interface {
	Object
	// AddProp attaches a new prop named name to the scene. The prop starts
	// at zero opacity with a zero-duration transition, so adding it has no
	// visible effect.
	AddProp(name string) (Prop, error)
}

// Actor is the character a playback pass is applied to.
type Actor interface {
	Object
	// Attach makes the actor the vehicle of p.
	Attach(p Prop) error
	Move(dir Direction, amount float64, duration float64) error
	MoveTo(target Object, duration float64) error
	PointAt(joint string, target Object, duration float64) error
	Roll(joint string, amount float64, dir Direction, duration float64) error
	SetOpacity(opacity float64, duration float64) error
}

// Position is a point relative to an object's vehicle.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", p.X, p.Y, p.Z)
}

type Direction string

const (
	Up       Direction = "up"
	Down     Direction = "down"
	Left     Direction = "left"
	Right    Direction = "right"
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right, Forward, Backward:
		return true
	}
	return false
}

// Joint names understood by biped actors.
const (
	JointSpineBase     = "SpineBase"
	JointNeck          = "Neck"
	JointPelvis        = "Pelvis"
	JointLeftShoulder  = "LeftShoulder"
	JointRightShoulder = "RightShoulder"
	JointLeftElbow     = "LeftElbow"
	JointRightElbow    = "RightElbow"
	JointLeftHip       = "LeftHip"
	JointRightHip      = "RightHip"
	JointLeftKnee      = "LeftKnee"
	JointRightKnee     = "RightKnee"
	JointLeftAnkle     = "LeftAnkle"
	JointRightAnkle    = "RightAnkle"
)
