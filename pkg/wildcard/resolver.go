// SPDX-License-Identifier: MPL-2.0

package wildcard

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Wildcard is the glob character recognized inside path segments.
const Wildcard = '*'

// ErrUnsupportedPath is the sentinel error wrapped by UnsupportedPathError.
var ErrUnsupportedPath = errors.New("unsupported wildcard path")

type (
	// UnsupportedPathError is returned for path shapes the resolver refuses
	// to guess about: network-style (UNC) paths and relative paths whose
	// first segment is a pattern (there is no anchored prefix to probe).
	UnsupportedPathError struct {
		Path   string
		Reason string
	}
)

// Error implements the error interface.
func (e *UnsupportedPathError) Error() string {
	return fmt.Sprintf("unsupported wildcard path %q: %s", e.Path, e.Reason)
}

// Unwrap returns ErrUnsupportedPath so callers can use errors.Is for programmatic detection.
func (e *UnsupportedPathError) Unwrap() error { return ErrUnsupportedPath }

// Resolve expands every pattern segment of path against the filesystem via
// probe and returns the resulting concrete path.
//
// Segments are evaluated left to right against an accumulated prefix that
// starts at the root or volume component of the input. A literal segment is
// appended as-is. A pattern segment is matched against the immediate child
// directories of the accumulated prefix; the lexicographically greatest
// matching name wins. A pattern with zero matches (including a prefix the
// probe cannot list) is appended as literal text and resolution continues,
// so Resolve always returns some path for supported inputs.
//
// A path without any '*' is returned unchanged without touching the
// filesystem.
func Resolve(path string, probe Prober) (string, error) {
	if !strings.ContainsRune(path, Wildcard) {
		return path, nil
	}
	if isNetworkPath(path) {
		return "", &UnsupportedPathError{Path: path, Reason: "network-style (UNC) paths are not supported"}
	}

	volume := filepath.VolumeName(path)
	rest := filepath.ToSlash(path[len(volume):])
	rooted := strings.HasPrefix(rest, "/")

	segments := splitSegments(rest)
	if !rooted && len(segments) > 0 && strings.ContainsRune(segments[0], Wildcard) {
		return "", &UnsupportedPathError{
			Path:   path,
			Reason: "pattern in the first segment of a relative path has no anchored prefix to probe",
		}
	}

	resolved := volume
	if rooted {
		resolved += "/"
	}
	for _, segment := range segments {
		if !strings.ContainsRune(segment, Wildcard) {
			resolved = appendSegment(resolved, segment)
			continue
		}
		resolved = appendSegment(resolved, selectGreatestMatch(resolved, segment, probe))
	}
	return filepath.FromSlash(resolved), nil
}

// selectGreatestMatch lists the child directories of prefix and returns the
// lexicographically greatest name matching pattern. When nothing matches, or
// the prefix cannot be listed, the pattern text itself is returned.
func selectGreatestMatch(prefix, pattern string, probe Prober) string {
	names, err := probe.ListDirs(filepath.FromSlash(prefix))
	if err != nil {
		return pattern
	}
	best := ""
	found := false
	for _, name := range names {
		if !matchSegment(pattern, name) {
			continue
		}
		if !found || name > best {
			best = name
			found = true
		}
	}
	if !found {
		return pattern
	}
	return best
}

// matchSegment reports whether name matches pattern, where '*' matches any
// run of characters (including the empty run) and every other character
// matches only itself. The whole name must be consumed.
func matchSegment(pattern, name string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == name
	}
	if !strings.HasPrefix(name, parts[0]) {
		return false
	}
	rest := name[len(parts[0]):]
	last := parts[len(parts)-1]
	if !strings.HasSuffix(rest, last) {
		return false
	}
	rest = rest[:len(rest)-len(last)]
	for _, mid := range parts[1 : len(parts)-1] {
		if mid == "" {
			continue
		}
		idx := strings.Index(rest, mid)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(mid):]
	}
	return true
}

// isNetworkPath reports whether path starts with a UNC-style double separator.
func isNetworkPath(path string) bool {
	return strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
}

// splitSegments splits a slash-normalized path into its non-empty segments.
func splitSegments(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// appendSegment joins segment onto prefix with exactly one separator.
func appendSegment(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	if strings.HasSuffix(prefix, "/") {
		return prefix + segment
	}
	return prefix + "/" + segment
}
