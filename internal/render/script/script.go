// SPDX-License-Identifier: MPL-2.0

// Package script emits one disassembler-integration artifact per image: a
// JSON address map pairing each compiled method body with its fully
// qualified name, for ingestion by disassembler labeling plugins.
package script

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"typedump/internal/artifact"
	"typedump/pkg/typemodel"
)

type (
	// Renderer writes the per-image script artifact.
	Renderer struct{}

	document struct {
		Image     string  `json:"image"`
		Generator string  `json:"generator"`
		Addresses []entry `json:"addresses"`
	}

	entry struct {
		Address   uint64 `json:"address"`
		Name      string `json:"name"`
		Signature string `json:"signature"`
		TypeIndex int    `json:"typeIndex"`
	}
)

// NewRenderer creates a script renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// WriteScript renders the model's method address map to path. Methods whose
// bodies were stripped from the binary (zero pointer) carry no address and
// are skipped. Output is ordered by address so repeated runs are
// byte-identical.
func (r *Renderer) WriteScript(model *typemodel.Model, path string) error {
	doc := document{Image: model.Image, Generator: "typedump", Addresses: []entry{}}
	for _, t := range model.Entries {
		for _, m := range t.Methods {
			if m.Pointer == 0 {
				continue
			}
			doc.Addresses = append(doc.Addresses, entry{
				Address:   m.Pointer,
				Name:      t.FullName() + "." + m.Name,
				Signature: strings.TrimSpace(m.ReturnType + " " + m.Name + m.Signature),
				TypeIndex: t.Index,
			})
		}
	}
	slices.SortFunc(doc.Addresses, func(a, b entry) int {
		if a.Address != b.Address {
			if a.Address < b.Address {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding script artifact: %w", err)
	}
	return artifact.WriteFile(path, append(data, '\n'))
}
