// SPDX-License-Identifier: MPL-2.0

// Package fspath lifts the path/filepath operations typedump needs onto
// types.FilesystemPath. Callers combining a validated base path with
// literal file names stay in the typed world without per-site string
// conversions.
package fspath

import (
	"path/filepath"

	"typedump/pkg/types"
)

// JoinStr joins a typed base path with raw string segments, such as fixed
// artifact names ("dump.cs") or entries from os.ReadDir.
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	joined := filepath.Join(append([]string{string(base)}, elem...)...)
	return types.FilesystemPath(joined)
}

// Dir returns the directory portion of p, in the manner of filepath.Dir.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}
