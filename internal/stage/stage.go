package stage

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/segplay/internal/scene"
)

var ErrInjected = errors.New("injected failure")

// Call is one recorded collaborator call. Time is the virtual clock at the
// moment the call started.
type Call struct {
	Seq      int     `yaml:"seq"`
	Time     float64 `yaml:"time"`
	Subject  string  `yaml:"subject"`
	Op       string  `yaml:"op"`
	Detail   string  `yaml:"detail,omitempty"`
	Duration float64 `yaml:"duration"`
}

func (c Call) String() string {
	return fmt.Sprintf("#%d t=%.3f %s.%s(%s) %.3fs", c.Seq, c.Time, c.Subject, c.Op, c.Detail, c.Duration)
}

// Stage is an in-memory scene that records every call made against it and
// against the actors and props it owns. It is not safe for concurrent use.
type Stage struct {
	name    string
	clock   float64
	calls   []Call
	objects map[string]*object
	faults  map[string]int
	counts  map[string]int
}

var _ scene.Scene = (*Stage)(nil)

func New(name string) *Stage {
	return &Stage{
		name:    name,
		objects: make(map[string]*object),
		faults:  make(map[string]int),
		counts:  make(map[string]int),
	}
}

func (s *Stage) Name() string { return s.name }

// AddProp attaches an invisible prop to the stage. Names are made unique by
// suffixing a counter when taken.
func (s *Stage) AddProp(name string) (scene.Prop, error) {
	if name == "" {
		return nil, errors.New("empty prop name")
	}
	if err := s.begin("add-prop"); err != nil {
		return nil, err
	}

	unique := name
	for n := 2; s.objects[unique] != nil; n++ {
		unique = fmt.Sprintf("%s#%d", name, n)
	}

	obj := s.newObject(unique, s.name, 0)
	s.record(s.name, "add-prop", unique+" opacity=0", 0)
	return &Prop{stage: s, obj: obj}, nil
}

// NewActor places a visible actor at the stage origin.
func (s *Stage) NewActor(name string) (*Actor, error) {
	if name == "" {
		return nil, errors.New("empty actor name")
	}
	if s.objects[name] != nil {
		return nil, fmt.Errorf("object %q already on stage", name)
	}
	obj := s.newObject(name, s.name, 1)
	obj.joints = make(map[string]scene.Position)
	obj.rolls = make(map[string]float64)
	return &Actor{stage: s, obj: obj}, nil
}

// FailOn makes the n-th (1-based) future call of op fail with ErrInjected.
func (s *Stage) FailOn(op string, n int) {
	s.faults[op] = s.counts[op] + n
}

// Clock returns the virtual time consumed by all recorded calls.
func (s *Stage) Clock() float64 { return s.clock }

// Calls returns a copy of the call log.
func (s *Stage) Calls() []Call {
	return append([]Call(nil), s.calls...)
}

// CallsMentioning returns the calls whose subject or detail contains name.
func (s *Stage) CallsMentioning(name string) []Call {
	var out []Call
	for _, c := range s.calls {
		if c.Subject == name || strings.Contains(c.Detail, name) {
			out = append(out, c)
		}
	}
	return out
}

// Opacity returns the current opacity of the named object.
func (s *Stage) Opacity(name string) (float64, bool) {
	obj, ok := s.objects[name]
	if !ok {
		return 0, false
	}
	return obj.opacity, true
}

// Vehicle returns the name of the object the named object rides on.
func (s *Stage) Vehicle(name string) (string, bool) {
	obj, ok := s.objects[name]
	if !ok {
		return "", false
	}
	return obj.vehicle, true
}

// WorldPosition resolves the named object's position through its vehicles.
func (s *Stage) WorldPosition(name string) (scene.Position, bool) {
	obj, ok := s.objects[name]
	if !ok {
		return scene.Position{}, false
	}
	return s.world(obj), true
}

// StateAt interpolates the named object's position and opacity at time t.
func (s *Stage) StateAt(name string, t float64) (ObjectState, bool) {
	obj, ok := s.objects[name]
	if !ok {
		return ObjectState{}, false
	}
	return InterpolateKeyframes(obj.keyframes, t), true
}

// Reset clears the call log and rewinds the clock. Objects keep their state.
func (s *Stage) Reset() {
	s.calls = nil
	s.clock = 0
	for _, obj := range s.objects {
		obj.keyframes = []Keyframe{{Time: 0, Position: obj.position, Opacity: obj.opacity}}
	}
}

// Trace is the YAML form of a stage's call log.
type Trace struct {
	Stage    string   `yaml:"stage"`
	Clock    float64  `yaml:"clock"`
	Calls    []Call   `yaml:"calls"`
	Timeline []Sample `yaml:"timeline,omitempty"`
}

// WriteTrace writes the call log and its timeline to path as YAML.
func (s *Stage) WriteTrace(path string) error {
	data, err := yaml.Marshal(Trace{Stage: s.name, Clock: s.clock, Calls: s.calls, Timeline: s.Timeline()})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTrace loads a trace written by WriteTrace.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Trace
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ReadTrace returns the calls of a trace written by WriteTrace.
func ReadTrace(path string) ([]Call, error) {
	t, err := LoadTrace(path)
	if err != nil {
		return nil, err
	}
	return t.Calls, nil
}

func (s *Stage) begin(op string) error {
	s.counts[op]++
	if limit, ok := s.faults[op]; ok && s.counts[op] == limit {
		delete(s.faults, op)
		return fmt.Errorf("%s: %w", op, ErrInjected)
	}
	return nil
}

// apply mutates obj (which may be nil) and records the call. The object's
// state before the call is held until the call starts, and the new state is
// reached when the call's duration has elapsed.
func (s *Stage) apply(subject, op, detail string, duration float64, obj *object, mutate func()) {
	if obj != nil {
		obj.hold(s.clock)
	}
	if mutate != nil {
		mutate()
	}
	s.record(subject, op, detail, duration)
	if obj != nil {
		obj.settle(s.clock)
	}
}

func (s *Stage) record(subject, op, detail string, duration float64) {
	s.calls = append(s.calls, Call{
		Seq:      len(s.calls) + 1,
		Time:     s.clock,
		Subject:  subject,
		Op:       op,
		Detail:   detail,
		Duration: duration,
	})
	s.clock += duration
}

func (s *Stage) newObject(name, vehicle string, opacity float64) *object {
	obj := &object{name: name, vehicle: vehicle, opacity: opacity}
	obj.keyframes = []Keyframe{{Time: s.clock, Opacity: opacity}}
	s.objects[name] = obj
	return obj
}

func (s *Stage) world(obj *object) scene.Position {
	pos := obj.position
	seen := map[string]bool{obj.name: true}
	for v := s.objects[obj.vehicle]; v != nil && !seen[v.name]; v = s.objects[v.vehicle] {
		seen[v.name] = true
		pos.X += v.position.X
		pos.Y += v.position.Y
		pos.Z += v.position.Z
	}
	return pos
}
