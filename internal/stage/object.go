package stage

import (
	"fmt"

	"github.com/ivlev/segplay/internal/scene"
)

type object struct {
	name      string
	vehicle   string
	position  scene.Position
	opacity   float64
	joints    map[string]scene.Position // aim point per joint
	rolls     map[string]float64        // accumulated roll per joint, in turns
	keyframes []Keyframe
}

func (o *object) hold(t float64) {
	last := o.keyframes[len(o.keyframes)-1]
	if last.Time < t {
		o.keyframes = append(o.keyframes, Keyframe{Time: t, Position: o.position, Opacity: o.opacity})
	}
}

func (o *object) settle(t float64) {
	kf := Keyframe{Time: t, Position: o.position, Opacity: o.opacity}
	if last := &o.keyframes[len(o.keyframes)-1]; last.Time == t {
		*last = kf
		return
	}
	o.keyframes = append(o.keyframes, kf)
}

// Prop is a stage-owned helper object.
type Prop struct {
	stage *Stage
	obj   *object
}

var _ scene.Prop = (*Prop)(nil)

func (p *Prop) Name() string { return p.obj.name }

func (p *Prop) SetPosition(pos scene.Position, duration float64) error {
	if err := p.stage.begin("set-position"); err != nil {
		return err
	}
	p.stage.apply(p.obj.name, "set-position", pos.String(), duration, p.obj, func() {
		p.obj.position = pos
	})
	return nil
}

func (p *Prop) SetOpacity(opacity float64, duration float64) error {
	if err := p.stage.begin("set-opacity"); err != nil {
		return err
	}
	p.stage.apply(p.obj.name, "set-opacity", fmt.Sprintf("%.2f", opacity), duration, p.obj, func() {
		p.obj.opacity = opacity
	})
	return nil
}

func (p *Prop) Delay(duration float64) error {
	if err := p.stage.begin("delay"); err != nil {
		return err
	}
	p.stage.apply(p.obj.name, "delay", "", duration, nil, nil)
	return nil
}

// Actor is a stage-owned biped.
type Actor struct {
	stage *Stage
	obj   *object
}

var _ scene.Actor = (*Actor)(nil)

func (a *Actor) Name() string { return a.obj.name }

func (a *Actor) Attach(p scene.Prop) error {
	if err := a.stage.begin("attach"); err != nil {
		return err
	}
	target, err := a.stage.lookup(p)
	if err != nil {
		return err
	}
	a.stage.apply(a.obj.name, "attach", target.name, 0, nil, func() {
		target.vehicle = a.obj.name
	})
	return nil
}

func (a *Actor) Move(dir scene.Direction, amount float64, duration float64) error {
	if err := a.stage.begin("move"); err != nil {
		return err
	}
	dx, dy, dz, err := axis(dir)
	if err != nil {
		return err
	}
	a.stage.apply(a.obj.name, "move", fmt.Sprintf("%s %.4f", dir, amount), duration, a.obj, func() {
		a.obj.position.X += dx * amount
		a.obj.position.Y += dy * amount
		a.obj.position.Z += dz * amount
	})
	return nil
}

func (a *Actor) MoveTo(target scene.Object, duration float64) error {
	if err := a.stage.begin("move-to"); err != nil {
		return err
	}
	t, err := a.stage.lookup(target)
	if err != nil {
		return err
	}
	dest := a.stage.world(t)
	a.stage.apply(a.obj.name, "move-to", t.name, duration, a.obj, func() {
		a.obj.position = dest
	})
	return nil
}

func (a *Actor) PointAt(joint string, target scene.Object, duration float64) error {
	if err := a.stage.begin("point-at"); err != nil {
		return err
	}
	t, err := a.stage.lookup(target)
	if err != nil {
		return err
	}
	aim := a.stage.world(t)
	a.stage.apply(a.obj.name, "point-at", joint+" "+t.name, duration, nil, func() {
		a.obj.joints[joint] = aim
	})
	return nil
}

func (a *Actor) Roll(joint string, amount float64, dir scene.Direction, duration float64) error {
	if err := a.stage.begin("roll"); err != nil {
		return err
	}
	sign := 1.0
	switch dir {
	case scene.Left:
	case scene.Right:
		sign = -1
	default:
		return fmt.Errorf("roll: invalid direction %q", dir)
	}
	a.stage.apply(a.obj.name, "roll", fmt.Sprintf("%s %.4f %s", joint, amount, dir), duration, nil, func() {
		a.obj.rolls[joint] += sign * amount
	})
	return nil
}

func (a *Actor) SetOpacity(opacity float64, duration float64) error {
	if err := a.stage.begin("set-opacity"); err != nil {
		return err
	}
	a.stage.apply(a.obj.name, "set-opacity", fmt.Sprintf("%.2f", opacity), duration, a.obj, func() {
		a.obj.opacity = opacity
	})
	return nil
}

// Aim returns the point the given joint was last pointed at.
func (a *Actor) Aim(joint string) (scene.Position, bool) {
	pos, ok := a.obj.joints[joint]
	return pos, ok
}

// RollOf returns the accumulated roll of a joint in turns (left positive).
func (a *Actor) RollOf(joint string) float64 {
	return a.obj.rolls[joint]
}

func (s *Stage) lookup(o scene.Object) (*object, error) {
	if o == nil {
		return nil, fmt.Errorf("nil object")
	}
	obj, ok := s.objects[o.Name()]
	if !ok {
		return nil, fmt.Errorf("object %q is not on stage %q", o.Name(), s.name)
	}
	return obj, nil
}

func axis(dir scene.Direction) (dx, dy, dz float64, err error) {
	switch dir {
	case scene.Up:
		return 0, 1, 0, nil
	case scene.Down:
		return 0, -1, 0, nil
	case scene.Left:
		return -1, 0, 0, nil
	case scene.Right:
		return 1, 0, 0, nil
	case scene.Forward:
		return 0, 0, 1, nil
	case scene.Backward:
		return 0, 0, -1, nil
	}
	return 0, 0, 0, fmt.Errorf("invalid direction %q", dir)
}
