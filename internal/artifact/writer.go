// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"typedump/pkg/platform"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// invalidNameChars are characters that cannot appear in file names on at
// least one supported platform. Metadata names (generic backticks, nested
// type separators) routinely contain them.
const invalidNameChars = `<>:"/\|?*`

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating artifact directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("writing artifact %q: %w", path, err)
	}
	return nil
}

// SafeFileName converts a metadata-derived name (namespace, assembly, or
// type name) into a name usable as a file or directory name: characters
// invalid on any supported platform become underscores, Windows reserved
// names get an underscore prefix, and an empty input becomes "_".
func SafeFileName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(invalidNameChars, r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	safe := b.String()
	if safe == "" {
		return "_"
	}
	if platform.IsWindowsReservedName(safe) {
		return "_" + safe
	}
	return safe
}
