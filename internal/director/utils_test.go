package director

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseDefinitionFile(t *testing.T) {
	tests := []struct {
		name      string
		wantIndex int
		wantOK    bool
	}{
		{"segment0.yaml", 0, true},
		{"segment42.yaml", 42, true},
		{"segment.yaml", 0, false},
		{"segment07.yaml", 0, false},
		{"segment-1.yaml", 0, false},
		{"segment1.yml", 0, false},
		{"clip1.yaml", 0, false},
		{"manifest.yaml", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := ParseDefinitionFile("segment", tt.name)
			if ok != tt.wantOK || i != tt.wantIndex {
				t.Errorf("ParseDefinitionFile(%q) = %d, %v; want %d, %v", tt.name, i, ok, tt.wantIndex, tt.wantOK)
			}
		})
	}

	if name := DefinitionFile("segment", 9); name != "segment9.yaml" {
		t.Errorf("Unexpected definition file name %s", name)
	}
}

func TestFindLatestAnimation(t *testing.T) {
	root := t.TempDir()

	names := []string{"animation_a", "animation_b", "animation_c"}
	for i, name := range names {
		dir := filepath.Join(root, name)
		os.MkdirAll(dir, 0755)
		if err := WriteManifest(&Manifest{Version: CurrentVersion, Name: name, Total: 1}, dir); err != nil {
			t.Fatalf("WriteManifest failed: %v", err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(filepath.Join(dir, ManifestFile), modTime, modTime)
	}
	// A newer folder without a manifest does not count.
	os.MkdirAll(filepath.Join(root, "scratch"), 0755)

	latest, err := FindLatestAnimation(root)
	if err != nil {
		t.Fatalf("FindLatestAnimation failed: %v", err)
	}
	if filepath.Base(latest) != "animation_c" {
		t.Errorf("Expected animation_c, got %s", latest)
	}
}

func TestFindLatestAnimationEmpty(t *testing.T) {
	if _, err := FindLatestAnimation(t.TempDir()); err == nil {
		t.Error("Expected error for a folder without animations")
	}
	if _, err := FindLatestAnimation(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for a missing folder")
	}
}
