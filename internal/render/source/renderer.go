// SPDX-License-Identifier: MPL-2.0

package source

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"typedump/internal/artifact"
	"typedump/internal/layout"
	"typedump/pkg/typemodel"
)

const (
	// sourceExt is the extension of every emitted source artifact.
	sourceExt = ".cs"
	// globalLabel stands in for the empty namespace or assembly in file and
	// directory names.
	globalLabel = "-"
)

// Renderer emits declaration stubs for one image's model. The model and the
// per-run render flags are fixed at construction; the dispatch engine
// supplies paths, comparators, and strategy flags per call.
type Renderer struct {
	model *typemodel.Model
	opts  layout.RenderOptions
}

var _ layout.SourceRenderer = (*Renderer)(nil)

// NewRenderer creates a renderer over one image's model.
func NewRenderer(model *typemodel.Model, opts layout.RenderOptions) *Renderer {
	return &Renderer{model: model, opts: opts}
}

// entries returns the model's entries with namespace exclusions applied,
// sorted by cmp when one is given. Sorting is stable, so entries with equal
// keys keep their metadata order.
func (r *Renderer) entries(cmp layout.Comparator) []typemodel.TypeEntry {
	kept := make([]typemodel.TypeEntry, 0, len(r.model.Entries))
	for _, entry := range r.model.Entries {
		if r.opts.Excludes(entry.Namespace) {
			continue
		}
		kept = append(kept, entry)
	}
	if cmp != nil {
		slices.SortStableFunc(kept, cmp)
	}
	return kept
}

// treeRoot derives the directory root of a grouped layout from the planned
// artifact path by dropping its final extension. A dotfile final segment has
// no extension, so the path is used as-is.
func treeRoot(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return path
	}
	return strings.TrimSuffix(path, ext)
}

// assemblyLabel substitutes the global label for entries without an assembly.
func assemblyLabel(assembly string) string {
	if assembly == "" {
		return globalLabel
	}
	return assembly
}

// namespaceLabel substitutes the global label for the empty namespace.
func namespaceLabel(namespace string) string {
	if namespace == "" {
		return globalLabel
	}
	return namespace
}

// safeNamespaceDir converts a namespace into a relative directory path whose
// segments are all safe file names.
func safeNamespaceDir(namespace string) string {
	segments := strings.Split(typemodel.NamespaceDir(namespace), "/")
	for i, segment := range segments {
		segments[i] = artifact.SafeFileName(segment)
	}
	return filepath.Join(segments...)
}

// nameAllocator disambiguates artifact paths when distinct types map to the
// same safe file name within one render.
type nameAllocator map[string]bool

// claim returns target if unclaimed, otherwise a variant with the type's
// metadata index inserted before the extension. Indices are unique per
// image, so the variant cannot collide.
func (a nameAllocator) claim(target string, index int) string {
	if !a[target] {
		a[target] = true
		return target
	}
	ext := filepath.Ext(target)
	alt := strings.TrimSuffix(target, ext) + "." + strconv.Itoa(index) + ext
	a[alt] = true
	return alt
}
