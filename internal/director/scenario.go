package director

import "github.com/ivlev/segplay/internal/unit"

const (
	ManifestFile   = "manifest.yaml"
	CurrentVersion = "1.0"
)

// Manifest describes a generated animation: the naming prefix of its
// segments and how many of them the generator emitted.
type Manifest struct {
	Version string `yaml:"version"`
	Name    string `yaml:"name"`
	Prefix  string `yaml:"prefix"`
	Total   int    `yaml:"total"`
}

// Definition is the motion data of one segment.
type Definition struct {
	Index int         `yaml:"index"`
	Steps []unit.Step `yaml:"steps"`
}

// Duration returns the sum of the step durations in seconds.
func (d Definition) Duration() float64 {
	total := 0.0
	for _, st := range d.Steps {
		total += st.Duration
	}
	return total
}
