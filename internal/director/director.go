package director

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/segplay/internal/registry"
	"github.com/ivlev/segplay/internal/scene"
	"github.com/ivlev/segplay/internal/unit"
)

// Animation is what Discover found in a directory. Definitions and Problems
// are keyed by segment index; an index appears in at most one of them.
type Animation struct {
	Dir         string
	Manifest    Manifest
	Definitions map[int]*Definition
	Problems    map[int]error
}

// Indices returns the indices of the parsed definitions in ascending order.
func (a *Animation) Indices() []int {
	out := make([]int, 0, len(a.Definitions))
	for i := range a.Definitions {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

type discoverOptions struct {
	prefix string
	logger *log.Logger
}

// Option configures Discover.
type Option func(*discoverOptions)

// WithPrefix sets the file prefix used when dir has no manifest or the
// manifest names none.
func WithPrefix(prefix string) Option {
	return func(o *discoverOptions) { o.prefix = prefix }
}

// WithLogger sends discovery warnings to logger instead of the standard logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *discoverOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Discover reads the manifest in dir and every segment definition named by
// the manifest's prefix. Definitions are parsed by up to workers goroutines.
// A definition that cannot be read is recorded in Problems and does not fail
// discovery. Without a manifest the total is the highest index found plus one;
// files at or beyond registry.MaxSegments are ignored.
func Discover(dir string, workers int, opts ...Option) (*Animation, error) {
	o := discoverOptions{prefix: registry.DefaultPrefix, logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.prefix == "" {
		o.prefix = registry.DefaultPrefix
	}

	m, err := ReadManifest(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		m = &Manifest{Version: CurrentVersion, Name: filepath.Base(dir), Total: -1}
	case err != nil:
		return nil, err
	}
	if m.Prefix == "" {
		m.Prefix = o.prefix
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read animation directory: %w", err)
	}

	var indices []int
	paths := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		i, ok := ParseDefinitionFile(m.Prefix, entry.Name())
		if !ok {
			continue
		}
		if m.Total >= 0 && i >= m.Total {
			o.logger.Printf("[!] %s: index %d is outside the manifest total %d, ignored", entry.Name(), i, m.Total)
			continue
		}
		if i >= registry.MaxSegments {
			o.logger.Printf("[!] %s: index %d exceeds the segment limit %d, ignored", entry.Name(), i, registry.MaxSegments)
			continue
		}
		indices = append(indices, i)
		paths[i] = filepath.Join(dir, entry.Name())
	}
	sort.Ints(indices)

	defs := make([]*Definition, len(indices))
	errs := make([]error, len(indices))

	if workers < 1 {
		workers = 1
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for slot, i := range indices {
		g.Go(func() error {
			def, err := ReadDefinition(paths[i])
			switch {
			case err != nil:
				errs[slot] = err
			case def.Index != i:
				errs[slot] = fmt.Errorf("%s: index %d does not match file name", filepath.Base(paths[i]), def.Index)
			default:
				defs[slot] = def
			}
			return nil
		})
	}
	_ = g.Wait()

	anim := &Animation{
		Dir:         dir,
		Manifest:    *m,
		Definitions: make(map[int]*Definition, len(indices)),
		Problems:    make(map[int]error),
	}
	for slot, i := range indices {
		if errs[slot] != nil {
			anim.Problems[i] = errs[slot]
			o.logger.Printf("[!] segment %d: %v", i, errs[slot])
			continue
		}
		anim.Definitions[i] = defs[slot]
	}

	if anim.Manifest.Total < 0 {
		anim.Manifest.Total = 0
		if n := len(indices); n > 0 {
			anim.Manifest.Total = indices[n-1] + 1
		}
	}

	return anim, nil
}

// Factory returns the registry factory for one definition. New builds the
// segment on a scene; NewBare builds it detached.
func Factory(prefix string, def *Definition) registry.Factory {
	index := def.Index
	steps := append([]unit.Step(nil), def.Steps...)
	return registry.Factory{
		Name: registry.NameFor(prefix, index),
		New: func(sc scene.Scene) (unit.Unit, error) {
			return unit.NewScript(index, sc, steps)
		},
		NewBare: func() (unit.Unit, error) {
			return unit.NewDetachedScript(index, steps)
		},
	}
}

// Register adds a factory for every parsed definition of anim to reg.
func Register(reg *registry.Registry, anim *Animation) error {
	var errs []error
	for _, i := range anim.Indices() {
		if err := reg.Register(Factory(anim.Manifest.Prefix, anim.Definitions[i])); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
