// SPDX-License-Identifier: MPL-2.0

package dumpopts

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"typedump/pkg/typemodel"
)

const (
	// SchemaSingle renders every type into one flat artifact.
	SchemaSingle Schema = "single"
	// SchemaNamespace renders one artifact (or directory) per namespace.
	SchemaNamespace Schema = "namespace"
	// SchemaAssembly renders one artifact (or directory) per source assembly.
	SchemaAssembly Schema = "assembly"
	// SchemaClass renders one artifact per type, grouped by namespace directory.
	SchemaClass Schema = "class"
	// SchemaTree renders one artifact per type nested under assembly then namespace.
	SchemaTree Schema = "tree"

	// OrderIndex orders types by their numeric declaration index.
	OrderIndex Order = "index"
	// OrderName orders types by ordinal name comparison.
	OrderName Order = "name"
)

var (
	// ErrInvalidSchema is returned when a Schema value is not one of the defined layouts.
	ErrInvalidSchema = errors.New("invalid layout schema")
	// ErrInvalidOrder is returned when an Order value is not one of the defined sort orders.
	ErrInvalidOrder = errors.New("invalid sort order")
)

type (
	// Schema selects the partitioning strategy for source artifacts.
	Schema string

	// Order selects the key used to order types within an artifact when the
	// layout does not already impose an order via the filesystem.
	Order string

	// InvalidSchemaError is returned when a Schema value is not recognized.
	// It wraps ErrInvalidSchema for errors.Is() compatibility.
	InvalidSchemaError struct {
		Value Schema
	}

	// InvalidOrderError is returned when an Order value is not recognized.
	// It wraps ErrInvalidOrder for errors.Is() compatibility.
	InvalidOrderError struct {
		Value Order
	}
)

// AllSchemas returns the defined layout schemas in canonical order.
// Useful for CLI help text and validation messages.
func AllSchemas() []Schema {
	return []Schema{SchemaSingle, SchemaNamespace, SchemaAssembly, SchemaClass, SchemaTree}
}

// AllOrders returns the defined sort orders in canonical order.
func AllOrders() []Order {
	return []Order{OrderIndex, OrderName}
}

// Error implements the error interface for InvalidSchemaError.
func (e *InvalidSchemaError) Error() string {
	return fmt.Sprintf("invalid layout schema %q (valid: single, namespace, assembly, class, tree)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidSchemaError) Unwrap() error { return ErrInvalidSchema }

// Error implements the error interface for InvalidOrderError.
func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid sort order %q (valid: index, name)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOrderError) Unwrap() error { return ErrInvalidOrder }

// String returns the string representation of the Schema.
func (s Schema) String() string { return string(s) }

// Validate returns nil if the Schema is one of the defined layouts,
// or a validation error if it is not.
// Note: the zero value ("") is NOT valid — a run always has a layout.
func (s Schema) Validate() error {
	switch s {
	case SchemaSingle, SchemaNamespace, SchemaAssembly, SchemaClass, SchemaTree:
		return nil
	default:
		return &InvalidSchemaError{Value: s}
	}
}

// UsesSort reports whether the layout consults the sort order at all.
// Class and Tree layouts derive their ordering from the directory listing
// itself, so an explicit sort key has no effect there.
func (s Schema) UsesSort() bool {
	switch s {
	case SchemaClass, SchemaTree:
		return false
	default:
		return true
	}
}

// String returns the string representation of the Order.
func (o Order) String() string { return string(o) }

// Validate returns nil if the Order is one of the defined sort orders,
// or a validation error if it is not.
// Note: the zero value ("") is NOT valid — a run always has a sort order.
func (o Order) Validate() error {
	switch o {
	case OrderIndex, OrderName:
		return nil
	default:
		return &InvalidOrderError{Value: o}
	}
}

// Comparator returns the ordering function over type entries for this sort
// order: ascending declaration index for OrderIndex, ascending ordinal name
// for OrderName. It returns nil for undefined orders; callers validate the
// Order before requesting a comparator.
func (o Order) Comparator() func(a, b typemodel.TypeEntry) int {
	switch o {
	case OrderIndex:
		return func(a, b typemodel.TypeEntry) int { return cmp.Compare(a.Index, b.Index) }
	case OrderName:
		return func(a, b typemodel.TypeEntry) int { return strings.Compare(a.Name, b.Name) }
	default:
		return nil
	}
}
