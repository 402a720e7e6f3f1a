// SPDX-License-Identifier: MPL-2.0

package dumpopts

import (
	"errors"
	"testing"

	"typedump/pkg/typemodel"
)

func TestSchemaValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		schema    Schema
		wantValid bool
	}{
		{name: "single", schema: SchemaSingle, wantValid: true},
		{name: "namespace", schema: SchemaNamespace, wantValid: true},
		{name: "assembly", schema: SchemaAssembly, wantValid: true},
		{name: "class", schema: SchemaClass, wantValid: true},
		{name: "tree", schema: SchemaTree, wantValid: true},
		{name: "empty is invalid", schema: Schema(""), wantValid: false},
		{name: "unknown is invalid", schema: Schema("flat"), wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.schema.Validate()
			if (err == nil) != tt.wantValid {
				t.Errorf("Schema(%q).Validate() error = %v, wantValid %v", tt.schema, err, tt.wantValid)
			}
			if !tt.wantValid {
				if !errors.Is(err, ErrInvalidSchema) {
					t.Errorf("error does not wrap ErrInvalidSchema: %v", err)
				}
				var schemaErr *InvalidSchemaError
				if !errors.As(err, &schemaErr) {
					t.Errorf("error is not an *InvalidSchemaError: %v", err)
				}
			}
		})
	}
}

func TestSchemaUsesSort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		schema Schema
		want   bool
	}{
		{SchemaSingle, true},
		{SchemaNamespace, true},
		{SchemaAssembly, true},
		{SchemaClass, false},
		{SchemaTree, false},
	}

	for _, tt := range tests {
		if got := tt.schema.UsesSort(); got != tt.want {
			t.Errorf("Schema(%q).UsesSort() = %v, want %v", tt.schema, got, tt.want)
		}
	}
}

func TestOrderValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		order     Order
		wantValid bool
	}{
		{name: "index", order: OrderIndex, wantValid: true},
		{name: "name", order: OrderName, wantValid: true},
		{name: "empty is invalid", order: Order(""), wantValid: false},
		{name: "unknown is invalid", order: Order("size"), wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.order.Validate()
			if (err == nil) != tt.wantValid {
				t.Errorf("Order(%q).Validate() error = %v, wantValid %v", tt.order, err, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(err, ErrInvalidOrder) {
				t.Errorf("error does not wrap ErrInvalidOrder: %v", err)
			}
		})
	}
}

func TestOrderComparator(t *testing.T) {
	t.Parallel()

	a := typemodel.TypeEntry{Index: 3, Name: "Alpha"}
	b := typemodel.TypeEntry{Index: 7, Name: "Beta"}

	t.Run("index ascending", func(t *testing.T) {
		t.Parallel()

		compare := OrderIndex.Comparator()
		if compare(a, b) >= 0 {
			t.Errorf("Comparator()(a, b) = %d, want negative for ascending index", compare(a, b))
		}
		if compare(b, a) <= 0 {
			t.Errorf("Comparator()(b, a) = %d, want positive for ascending index", compare(b, a))
		}
	})

	t.Run("name ordinal", func(t *testing.T) {
		t.Parallel()

		compare := OrderName.Comparator()
		// Ordinal comparison: "v2" sorts after "v10".
		v2 := typemodel.TypeEntry{Name: "v2"}
		v10 := typemodel.TypeEntry{Name: "v10"}
		if compare(v2, v10) <= 0 {
			t.Errorf("Comparator()(v2, v10) = %d, want positive ordinal comparison", compare(v2, v10))
		}
	})

	t.Run("undefined order has no comparator", func(t *testing.T) {
		t.Parallel()

		if Order("size").Comparator() != nil {
			t.Error("Comparator() != nil for undefined order")
		}
	})
}
