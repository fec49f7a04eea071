package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefinitionFile returns the file name of the i-th segment, e.g. "segment3.yaml".
func DefinitionFile(prefix string, i int) string {
	return prefix + strconv.Itoa(i) + ".yaml"
}

// ParseDefinitionFile extracts the index from a file named by DefinitionFile.
func ParseDefinitionFile(prefix, name string) (int, bool) {
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".yaml") {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".yaml")
	if digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return i, true
}

// FindLatestAnimation finds the most recently modified directory under root
// that holds a manifest
func FindLatestAnimation(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("failed to read animations directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var found []candidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		info, err := os.Stat(filepath.Join(dir, ManifestFile))
		if err != nil {
			continue
		}
		found = append(found, candidate{path: dir, modTime: info.ModTime()})
	}

	if len(found) == 0 {
		return "", fmt.Errorf("no animations found in %s", root)
	}

	// Newest first
	sort.Slice(found, func(i, j int) bool {
		return found[i].modTime.After(found[j].modTime)
	})

	return found[0].path, nil
}
