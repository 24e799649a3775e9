// Package match pairs independently generated per-item assets by
// file stem. Files present in only one directory are silently
// skipped; reconciling orphans is a non-goal.
package match

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Stems returns stem → full path for every regular file in dir.
func Stems(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	stems := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		stems[stem] = filepath.Join(dir, name)
	}
	return stems, nil
}

// Common returns the sorted intersection of the two stem sets.
// Matching is exact and case-sensitive.
func Common(a, b map[string]string) []string {
	var out []string
	for stem := range a {
		if _, ok := b[stem]; ok {
			out = append(out, stem)
		}
	}
	sort.Strings(out)
	return out
}
