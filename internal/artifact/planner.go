// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"path/filepath"
	"strconv"
)

// PlanPath returns the artifact path for the image at imageIndex, derived
// from the configured base path. Image 0 uses the base path unchanged; image
// k > 0 gets "-k" inserted before the final segment's extension when one is
// present, else appended to the path. For a fixed base path the result is
// distinct for every index, which is what keeps artifacts of consecutive
// images from overwriting each other.
//
// A final segment whose only dot is the leading one (a dotfile) counts as
// having no extension.
func PlanPath(basePath string, imageIndex int) string {
	if imageIndex <= 0 {
		return basePath
	}
	dir, file := filepath.Split(basePath)
	suffix := "-" + strconv.Itoa(imageIndex)
	ext := filepath.Ext(file)
	if ext == "" || ext == file {
		return basePath + suffix
	}
	stem := file[:len(file)-len(ext)]
	return dir + stem + suffix + ext
}
