package composite

import (
	"errors"
	"fmt"
	"strings"
)

// Outcome is the result of resolving and building one index.
type Outcome struct {
	Index    int
	Name     string
	Degraded bool // built without a scene
	Err      error
}

func (o Outcome) OK() bool { return o.Err == nil }

// Report collects one Outcome per requested index, in index order.
type Report struct {
	Requested int
	Outcomes  []Outcome
}

// Built returns the number of units that were constructed.
func (r Report) Built() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Missing returns the indices that failed to resolve or build.
func (r Report) Missing() []int {
	var out []int
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o.Index)
		}
	}
	return out
}

// Degraded returns the indices built through the no-scene constructor.
func (r Report) Degraded() []int {
	var out []int
	for _, o := range r.Outcomes {
		if o.OK() && o.Degraded {
			out = append(out, o.Index)
		}
	}
	return out
}

// Err joins every resolution and construction failure, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d segments built", r.Built(), r.Requested)
	if d := r.Degraded(); len(d) > 0 {
		fmt.Fprintf(&b, ", degraded %v", d)
	}
	if m := r.Missing(); len(m) > 0 {
		fmt.Fprintf(&b, ", missing %v", m)
	}
	return b.String()
}
