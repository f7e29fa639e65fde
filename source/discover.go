package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover expands glob patterns relative to root and returns matching
// vocabulary files. Patterns support ** for recursive matching.
// Directories are excluded and the result is sorted and deduplicated.
func Discover(root string, patterns []string) ([]string, error) {
	var found []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if !seen[match] {
				seen[match] = true
				found = append(found, match)
			}
		}
	}

	sort.Strings(found)
	return found, nil
}
