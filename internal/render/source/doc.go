// SPDX-License-Identifier: MPL-2.0

// Package source renders one image's reconstructed type model into C#-style
// declaration stubs under the layout strategies the dispatch engine selects:
// a single flat artifact, one artifact per namespace or assembly, one file
// per type, the assembly/namespace class tree, and solution mode, which adds
// buildable project and solution descriptors on top of the class tree.
package source
