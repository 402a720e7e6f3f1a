// SPDX-License-Identifier: MPL-2.0

// Package wildcard resolves filesystem paths containing glob segments to
// concrete directories. A segment containing one or more '*' characters is
// treated as a single whole-segment pattern; among the child directories
// matching it, the lexicographically greatest name is selected. This is how
// versioned toolchain installations (e.g. "2019.*") are located without the
// caller knowing exact version strings.
//
// Resolution is read-only and total: a pattern segment with no matching
// child is appended as literal text and resolution continues, deferring
// failure detection to a subsequent existence check by the caller.
package wildcard
