// SPDX-License-Identifier: MPL-2.0

// Package platform holds the OS-specific facts needed when metadata names
// become files on disk: runtime.GOOS values for config path selection, and
// the Windows device-name table that artifact file names must avoid.
package platform

import "strings"

// GOOS values the config loader branches on. Anything else takes the
// Linux/XDG path.
const (
	Windows = "windows"
	Darwin  = "darwin"
)

// reserved is the set of names Windows refuses as files regardless of
// extension or case: the console, printer, aux, and null devices plus the
// nine serial and nine parallel ports.
var reserved = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// IsWindowsReservedName reports whether name would collide with a Windows
// device name. The check is case-insensitive and ignores everything after
// the first dot, since Windows refuses "nul.cs" as firmly as "NUL".
func IsWindowsReservedName(name string) bool {
	base, _, _ := strings.Cut(name, ".")
	_, ok := reserved[strings.ToUpper(base)]
	return ok
}
