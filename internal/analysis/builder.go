// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"fmt"
	"path/filepath"
	"strings"

	"typedump/pkg/typemodel"
)

// Builder converts loaded images into the in-memory type model the renderers
// consume.
type Builder struct{}

// NewBuilder creates a model builder.
func NewBuilder() *Builder { return &Builder{} }

// BuildModel maps one image's type records onto a typemodel.Model. Records
// without an explicit kind default to class; records carrying an unknown
// kind fail the build.
func (b *Builder) BuildModel(img Image) (*typemodel.Model, error) {
	model := &typemodel.Model{
		Image:   img.Name,
		Entries: make([]typemodel.TypeEntry, 0, len(img.Types)),
	}
	if len(img.AssemblyAttributes) > 0 {
		// Keyed by assembly name, matching the entries' Assembly field, so
		// grouped layouts can pair attributes with their assembly.
		asm := strings.TrimSuffix(img.Name, filepath.Ext(img.Name))
		model.AssemblyAttributes = map[string][]string{
			asm: append([]string(nil), img.AssemblyAttributes...),
		}
	}

	for i, rec := range img.Types {
		if rec.Name == "" {
			return nil, fmt.Errorf("image %q: type record %d has an empty name", img.Name, i)
		}
		kind := typemodel.Kind(rec.Kind)
		if rec.Kind == "" {
			kind = typemodel.KindClass
		}
		if err := kind.Validate(); err != nil {
			return nil, fmt.Errorf("image %q: type record %d (%s): %w", img.Name, i, rec.Name, err)
		}

		entry := typemodel.TypeEntry{
			Index:      rec.Index,
			Name:       rec.Name,
			Namespace:  rec.Namespace,
			Assembly:   rec.Assembly,
			Kind:       kind,
			BaseType:   rec.BaseType,
			Attributes: append([]string(nil), rec.Attributes...),
		}
		for _, f := range rec.Fields {
			entry.Fields = append(entry.Fields, typemodel.FieldInfo{
				Name:     f.Name,
				Type:     f.Type,
				Offset:   f.Offset,
				IsStatic: f.IsStatic,
			})
		}
		for _, m := range rec.Methods {
			entry.Methods = append(entry.Methods, typemodel.MethodInfo{
				Name:       m.Name,
				Signature:  m.Signature,
				ReturnType: m.ReturnType,
				Pointer:    m.Pointer,
			})
		}
		model.Entries = append(model.Entries, entry)
	}
	return model, nil
}
