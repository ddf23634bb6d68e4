// Package docscan discovers the test evidence a report is built from:
// result files, documentation files and the coverage summary.
package docscan

import (
	"path/filepath"
	"strings"
)

// Filter returns true if the given relative path should be scanned,
// based on the include and exclude patterns.
//
// Logic:
//  1. If include patterns are set, the file must match at least one.
//  2. If the file matches any exclude pattern, it is excluded.
//  3. Otherwise, the file is included.
func Filter(rel string, include, exclude []string) bool {
	rel = filepath.ToSlash(rel)

	if len(include) > 0 {
		matched := false
		for _, pattern := range include {
			if matchGlob(pattern, rel) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	for _, pattern := range exclude {
		if matchGlob(pattern, rel) {
			return false
		}
	}

	return true
}

// matchGlob matches a path against a glob pattern. It supports
// filepath.Match syntax and directory patterns like "obj/**".
// Patterns without a separator also match the base name.
func matchGlob(pattern, rel string) bool {
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		return rel == prefix ||
			strings.HasPrefix(rel, prefix+"/") ||
			strings.Contains(rel, "/"+prefix+"/")
	}

	matched, err := filepath.Match(pattern, rel)
	if err != nil {
		return false
	}
	if matched {
		return true
	}

	if !strings.Contains(pattern, "/") {
		matched, err = filepath.Match(pattern, filepath.Base(rel))
		if err != nil {
			return false
		}
		return matched
	}

	return false
}
