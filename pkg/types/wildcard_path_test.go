// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestWildcardPathValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      WildcardPath
		wantValid bool
	}{
		{name: "empty means not configured", path: WildcardPath(""), wantValid: true},
		{name: "literal path", path: WildcardPath("/opt/unity/2019.4.16f1"), wantValid: true},
		{name: "pattern path", path: WildcardPath("/opt/unity/20*"), wantValid: true},
		{name: "whitespace only is invalid", path: WildcardPath("   "), wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.path.Validate()
			if (err == nil) != tt.wantValid {
				t.Errorf("WildcardPath(%q).Validate() error = %v, wantValid %v", tt.path, err, tt.wantValid)
			}
			if !tt.wantValid && !errors.Is(err, ErrInvalidWildcardPath) {
				t.Errorf("error does not wrap ErrInvalidWildcardPath: %v", err)
			}
		})
	}
}

func TestWildcardPathHasPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path WildcardPath
		want bool
	}{
		{WildcardPath(""), false},
		{WildcardPath("/opt/unity/2019.4.16f1"), false},
		{WildcardPath("/opt/unity/20*"), true},
		{WildcardPath("/opt/*/editors/*"), true},
	}

	for _, tt := range tests {
		if got := tt.path.HasPattern(); got != tt.want {
			t.Errorf("WildcardPath(%q).HasPattern() = %v, want %v", tt.path, got, tt.want)
		}
	}
}
