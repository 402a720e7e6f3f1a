// SPDX-License-Identifier: MPL-2.0

package typemodel

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// KindClass is a reference type declaration.
	KindClass Kind = "class"
	// KindStruct is a value type declaration.
	KindStruct Kind = "struct"
	// KindInterface is an interface declaration.
	KindInterface Kind = "interface"
	// KindEnum is an enumeration declaration.
	KindEnum Kind = "enum"
)

// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
var ErrInvalidKind = errors.New("invalid type kind")

type (
	// Kind classifies a type declaration in the reconstructed model.
	Kind string

	// InvalidKindError is returned when a Kind value is not recognized.
	// It wraps ErrInvalidKind for errors.Is() compatibility.
	InvalidKindError struct {
		Value Kind
	}

	// FieldInfo is one reconstructed field of a type.
	FieldInfo struct {
		// Name is the field identifier.
		Name string
		// Type is the rendered type name of the field.
		Type string
		// Offset is the instance offset recovered from metadata; renderers
		// omit it when metadata suppression is requested.
		Offset uint32
		// IsStatic marks fields without an instance offset.
		IsStatic bool
	}

	// MethodInfo is one reconstructed method of a type.
	MethodInfo struct {
		// Name is the method identifier.
		Name string
		// Signature is the rendered parameter list, without the name.
		Signature string
		// ReturnType is the rendered return type name.
		ReturnType string
		// Pointer is the virtual address of the compiled body; zero when the
		// body was stripped from the binary.
		Pointer uint64
	}

	// TypeEntry is one reconstructed type declaration. Index and Name are the
	// two sort keys the layout dispatch recognizes; Namespace drives both
	// exclusion filtering and namespace-grouped layouts.
	TypeEntry struct {
		// Index is the declaration index in metadata order, unique per image.
		Index int
		// Name is the simple type name, without namespace.
		Name string
		// Namespace is the declaring namespace; empty for the global namespace.
		Namespace string
		// Assembly is the defining assembly name (e.g. "Assembly-CSharp").
		Assembly string
		// Kind classifies the declaration.
		Kind Kind
		// BaseType is the rendered base type name; empty when none is emitted.
		BaseType string
		// Attributes holds attribute text without bracket syntax
		// (e.g. "Serializable"); renderers add the brackets.
		Attributes []string
		// Fields and Methods carry the member declarations in metadata order.
		Fields  []FieldInfo
		Methods []MethodInfo
	}

	// Model is the reconstructed type model of one image.
	Model struct {
		// Image is the name of the analyzed image this model was built from.
		Image string
		// Entries holds every reconstructed type in metadata order.
		Entries []TypeEntry
		// AssemblyAttributes maps assembly names to their assembly-level
		// attribute text, keyed to match the entries' Assembly field.
		AssemblyAttributes map[string][]string
	}
)

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid type kind %q (valid: class, struct, interface, enum)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }

// Validate returns nil if the Kind is one of the defined kinds,
// or a validation error if it is not.
func (k Kind) Validate() error {
	switch k {
	case KindClass, KindStruct, KindInterface, KindEnum:
		return nil
	default:
		return &InvalidKindError{Value: k}
	}
}

// FullName returns the namespace-qualified type name, or the simple name for
// types in the global namespace.
func (t TypeEntry) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// Namespaces returns the distinct namespaces of the model's entries in
// ascending ordinal order. The global namespace appears as "".
func (m *Model) Namespaces() []string {
	seen := make(map[string]bool, len(m.Entries))
	names := make([]string, 0, len(m.Entries))
	for _, entry := range m.Entries {
		if !seen[entry.Namespace] {
			seen[entry.Namespace] = true
			names = append(names, entry.Namespace)
		}
	}
	slices.Sort(names)
	return names
}

// Assemblies returns the distinct assembly names of the model's entries in
// ascending ordinal order.
func (m *Model) Assemblies() []string {
	seen := make(map[string]bool, len(m.Entries))
	names := make([]string, 0, len(m.Entries))
	for _, entry := range m.Entries {
		if !seen[entry.Assembly] {
			seen[entry.Assembly] = true
			names = append(names, entry.Assembly)
		}
	}
	slices.Sort(names)
	return names
}

// NamespaceDir converts a namespace to a relative directory path for
// namespace-grouped layouts. The global namespace maps to "-"; nested
// namespaces become nested directories.
func NamespaceDir(namespace string) string {
	if namespace == "" {
		return "-"
	}
	return strings.ReplaceAll(namespace, ".", "/")
}
