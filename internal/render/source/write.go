// SPDX-License-Identifier: MPL-2.0

package source

import (
	"path/filepath"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"typedump/internal/artifact"
	"typedump/internal/layout"
	"typedump/pkg/typemodel"
)

// entryGroup is one partition of the surviving entries under a grouped
// layout, keyed by namespace or assembly.
type entryGroup struct {
	key     string
	entries []typemodel.TypeEntry
}

// groupEntries partitions the surviving entries by key. Groups are ordered
// by key and entries within each group keep the comparator's order, so the
// write sequence is deterministic.
func (r *Renderer) groupEntries(cmp layout.Comparator, key func(typemodel.TypeEntry) string) []entryGroup {
	indexOf := make(map[string]int)
	var groups []entryGroup
	for _, entry := range r.entries(cmp) {
		k := key(entry)
		i, ok := indexOf[k]
		if !ok {
			i = len(groups)
			indexOf[k] = i
			groups = append(groups, entryGroup{key: k})
		}
		groups[i].entries = append(groups[i].entries, entry)
	}
	slices.SortFunc(groups, func(a, b entryGroup) int { return strings.Compare(a.key, b.key) })
	return groups
}

// WriteSingleFile renders every surviving type into one flat artifact at
// path, ordered by cmp.
func (r *Renderer) WriteSingleFile(path string, cmp layout.Comparator) error {
	var b strings.Builder
	b.WriteString(r.artifactHeader())
	for i, entry := range r.entries(cmp) {
		if i > 0 {
			b.WriteByte('\n')
		}
		r.writeEntry(&b, entry)
	}
	return artifact.WriteFile(path, []byte(b.String()))
}

// WriteByNamespace renders one artifact per namespace under the directory
// derived from path. Flattened, each namespace becomes a single file named
// after it; otherwise namespace dots become nested directories.
func (r *Renderer) WriteByNamespace(path string, cmp layout.Comparator, flatten bool) error {
	root := treeRoot(path)
	for _, group := range r.groupEntries(cmp, func(entry typemodel.TypeEntry) string { return entry.Namespace }) {
		var target string
		if flatten {
			target = filepath.Join(root, artifact.SafeFileName(namespaceLabel(group.key))+sourceExt)
		} else {
			target = filepath.Join(root, safeNamespaceDir(group.key)+sourceExt)
		}

		var b strings.Builder
		b.WriteString(r.artifactHeader())
		for i, entry := range group.entries {
			if i > 0 {
				b.WriteByte('\n')
			}
			r.writeEntry(&b, entry)
		}
		if err := artifact.WriteFile(target, []byte(b.String())); err != nil {
			return err
		}
	}
	return nil
}

// WriteByAssembly renders one artifact per defining assembly. Assembly-level
// attribute text is prepended to the assembly's artifact, or split into a
// sibling AssemblyInfo artifact when separateAttributes is set.
func (r *Renderer) WriteByAssembly(path string, cmp layout.Comparator, separateAttributes bool) error {
	root := treeRoot(path)
	for _, group := range r.groupEntries(cmp, func(entry typemodel.TypeEntry) string { return entry.Assembly }) {
		label := artifact.SafeFileName(assemblyLabel(group.key))
		attrs := r.model.AssemblyAttributes[group.key]

		var b strings.Builder
		b.WriteString(r.artifactHeader())
		if len(attrs) > 0 && !separateAttributes {
			b.Write(attributeLines(attrs))
			b.WriteByte('\n')
		}
		for i, entry := range group.entries {
			if i > 0 {
				b.WriteByte('\n')
			}
			r.writeEntry(&b, entry)
		}
		if err := artifact.WriteFile(filepath.Join(root, label+sourceExt), []byte(b.String())); err != nil {
			return err
		}

		if len(attrs) > 0 && separateAttributes {
			target := filepath.Join(root, label+".AssemblyInfo"+sourceExt)
			if err := artifact.WriteFile(target, attributeLines(attrs)); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteByClass renders one artifact per type, grouped into namespace
// directories, or into one flat directory when flatten is set.
func (r *Renderer) WriteByClass(path string, flatten bool) error {
	root := treeRoot(path)
	alloc := nameAllocator{}
	for _, entry := range r.entries(nil) {
		var target string
		if flatten {
			target = filepath.Join(root, artifact.SafeFileName(entry.FullName())+sourceExt)
		} else {
			target = filepath.Join(root, safeNamespaceDir(entry.Namespace), artifact.SafeFileName(entry.Name)+sourceExt)
		}
		if err := r.writeSingleEntry(alloc.claim(target, entry.Index), entry); err != nil {
			return err
		}
	}
	return nil
}

// WriteClassTree renders one artifact per type nested under assembly then
// namespace directories. Assembly-level attribute text has no combined
// artifact to fold into here; it is emitted as one AssemblyInfo artifact per
// assembly when separateAttributes is set and omitted otherwise.
func (r *Renderer) WriteClassTree(path string, separateAttributes bool) error {
	root := treeRoot(path)
	alloc := nameAllocator{}
	for _, entry := range r.entries(nil) {
		dir := filepath.Join(root,
			artifact.SafeFileName(assemblyLabel(entry.Assembly)),
			safeNamespaceDir(entry.Namespace))
		target := alloc.claim(filepath.Join(dir, artifact.SafeFileName(entry.Name)+sourceExt), entry.Index)
		if err := r.writeSingleEntry(target, entry); err != nil {
			return err
		}
	}
	if !separateAttributes {
		return nil
	}

	assemblies := maps.Keys(r.model.AssemblyAttributes)
	slices.Sort(assemblies)
	for _, asm := range assemblies {
		attrs := r.model.AssemblyAttributes[asm]
		if len(attrs) == 0 {
			continue
		}
		target := filepath.Join(root, artifact.SafeFileName(assemblyLabel(asm)), "AssemblyInfo"+sourceExt)
		if err := artifact.WriteFile(target, attributeLines(attrs)); err != nil {
			return err
		}
	}
	return nil
}

// writeSingleEntry writes one type's artifact for the file-per-type layouts.
func (r *Renderer) writeSingleEntry(target string, entry typemodel.TypeEntry) error {
	var b strings.Builder
	b.WriteString(r.artifactHeader())
	r.writeEntry(&b, entry)
	return artifact.WriteFile(target, []byte(b.String()))
}
