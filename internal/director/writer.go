package director

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/segplay/internal/registry"
)

// WriteManifest writes m to dir/manifest.yaml
func WriteManifest(m *Manifest, dir string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, ManifestFile), data, 0644)
}

// ReadManifest reads dir/manifest.yaml
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", ManifestFile, err)
	}
	if m.Total < 0 {
		return nil, fmt.Errorf("%s: negative total %d", ManifestFile, m.Total)
	}
	if m.Total > registry.MaxSegments {
		return nil, fmt.Errorf("%s: total %d exceeds the limit of %d", ManifestFile, m.Total, registry.MaxSegments)
	}

	return &m, nil
}

// WriteDefinition writes a segment definition to path
func WriteDefinition(def *Definition, path string) error {
	data, err := yaml.Marshal(def)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadDefinition reads a segment definition from path
func ReadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, err
	}

	return &def, nil
}
