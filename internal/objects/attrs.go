package objects

import "sort"

// sortedKeys returns the map keys in sorted order so new fields are
// appended deterministically.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
