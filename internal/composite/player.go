package composite

import (
	"errors"
	"fmt"
	"log"
	"reflect"

	"github.com/ivlev/segplay/internal/registry"
	"github.com/ivlev/segplay/internal/scene"
	"github.com/ivlev/segplay/internal/unit"
)

type State int

const (
	Unbuilt State = iota
	Building
	Ready
	Playing
)

func (s State) String() string {
	switch s {
	case Unbuilt:
		return "unbuilt"
	case Building:
		return "building"
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type entry struct {
	index int
	name  string
	unit  unit.Unit
}

// Player owns an ordered set of units resolved by name and relays one Play
// call to all of them. It is not safe for concurrent use.
type Player struct {
	prefix  string
	total   int
	entries []entry
	report  Report
	state   State
	logger  *log.Logger
}

var _ unit.Unit = (*Player)(nil)

// Option configures a Player.
type Option func(*Player)

// WithLogger sends build warnings to logger instead of the standard logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New resolves and builds the units named prefix+0 .. prefix+(total-1).
// Indices that fail to resolve or build are skipped and recorded in the
// report; they never fail the player. Only invalid arguments return an error.
func New(reg *registry.Registry, sc scene.Scene, prefix string, total int, opts ...Option) (*Player, error) {
	if reg == nil {
		return nil, errors.New("nil registry")
	}
	if total < 0 {
		return nil, fmt.Errorf("negative segment count %d", total)
	}
	if total > registry.MaxSegments {
		return nil, fmt.Errorf("segment count %d exceeds the limit of %d", total, registry.MaxSegments)
	}
	if prefix == "" {
		prefix = registry.DefaultPrefix
	}

	p := &Player{
		prefix: prefix,
		total:  total,
		report: Report{Requested: total},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.build(reg, sc)
	return p, nil
}

func (p *Player) build(reg *registry.Registry, sc scene.Scene) {
	p.state = Building
	p.entries = make([]entry, 0, min(p.total, reg.Len()))

	for i := 0; i < p.total; i++ {
		name := registry.NameFor(p.prefix, i)
		out := Outcome{Index: i, Name: name}

		f, err := reg.Resolve(name)
		if err != nil {
			out.Err = &ResolutionError{Index: i, Name: name, Err: err}
			p.logger.Printf("[!] %v", out.Err)
			p.report.Outcomes = append(p.report.Outcomes, out)
			continue
		}

		u, degraded, err := construct(f, sc)
		out.Degraded = degraded
		if err != nil {
			out.Err = &ConstructionError{Index: i, Name: name, Err: err}
			p.logger.Printf("[!] %v", out.Err)
			p.report.Outcomes = append(p.report.Outcomes, out)
			continue
		}
		if degraded {
			p.logger.Printf("[!] segment %d (%s) built without a scene", i, name)
		}

		p.entries = append(p.entries, entry{index: i, name: name, unit: u})
		p.report.Outcomes = append(p.report.Outcomes, out)
	}

	p.state = Ready
}

// construct prefers the scene-aware constructor and falls back to the bare
// one when there is no scene or no scene-aware constructor. Panics inside a
// constructor are turned into errors.
func construct(f registry.Factory, sc scene.Scene) (u unit.Unit, degraded bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			u = nil
			err = fmt.Errorf("constructor panic: %v", r)
		}
	}()

	switch {
	case f.New != nil && sc != nil:
		u, err = f.New(sc)
	case f.NewBare != nil:
		degraded = true
		u, err = f.NewBare()
	default:
		return nil, false, ErrNoConstructor
	}

	if err != nil {
		return nil, degraded, err
	}
	if isNil(u) {
		return nil, degraded, ErrNilUnit
	}
	return u, degraded, nil
}

// isNil catches typed nil pointers behind an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Play runs every built unit against actor in ascending index order. The
// first failure stops the pass and is returned as a *PlaybackError.
func (p *Player) Play(actor scene.Actor) error {
	if p.state != Ready {
		return fmt.Errorf("%w: %s", ErrNotReady, p.state)
	}
	if isNil(actor) {
		return ErrNilActor
	}

	p.state = Playing
	defer func() { p.state = Ready }()

	for _, e := range p.entries {
		if err := e.unit.Play(actor); err != nil {
			return &PlaybackError{Index: e.index, Name: e.name, Err: err}
		}
	}
	return nil
}

func (p *Player) Prefix() string { return p.prefix }

// Total returns the requested segment count.
func (p *Player) Total() int { return p.total }

// Len returns the number of units that were built.
func (p *Player) Len() int { return len(p.entries) }

func (p *Player) State() State { return p.state }

// Indices returns the requested indices of the built units in play order.
func (p *Player) Indices() []int {
	out := make([]int, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.index
	}
	return out
}

// Names returns the registered names of the built units in play order.
func (p *Player) Names() []string {
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.name
	}
	return out
}

// Report returns a copy of the construction report.
func (p *Player) Report() Report {
	r := p.report
	r.Outcomes = append([]Outcome(nil), p.report.Outcomes...)
	return r
}
