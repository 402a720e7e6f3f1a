// SPDX-License-Identifier: MPL-2.0

// Package layout selects and invokes one rendering strategy per image based
// on the effective (layout, sort, solution-mode) configuration. The engine
// never renders text itself; it chooses the sort comparator, forwards paths
// and flags, and guarantees that every configuration either has a defined
// strategy or fails with a typed error.
package layout
