// SPDX-License-Identifier: MPL-2.0

// Package cueutil turns CUE evaluation errors into readable diagnostics.
//
// CUE reports schema violations as error lists whose field paths are flat
// string slices. The helpers here flatten those lists into single errors
// with JSON-path prefixes (e.g. "dump.layout: expected string"), which is
// what the configuration loader surfaces to users.
package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// DefaultMaxFileSize caps how large a CUE file may be before parsing.
// Config files are small by nature; anything bigger is almost certainly
// the wrong file.
const DefaultMaxFileSize int64 = 5 * 1024 * 1024 // 5MB

// FormatError rewrites a CUE evaluation error as a single error whose
// message carries the file path and, per violation, the JSON path of the
// offending field:
//
//	typedump.cue: dump.layout: 3 errors in empty disjunction
//	typedump.cue: ui.verbose: expected bool, got string
//
// Non-CUE errors are wrapped with the file path only.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrs := errors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		lines = append(lines, describeError(e))
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// describeError renders one CUE error as "<json-path>: <message>".
// CUE sometimes repeats the path inside the message itself; the duplicate
// prefix is stripped so the path appears once.
func describeError(e errors.Error) string {
	path := formatPath(errors.Path(e))
	msg := e.Error()
	if path == "" {
		return msg
	}
	if rest, ok := strings.CutPrefix(msg, path); ok {
		msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	}
	return path + ": " + msg
}

// formatPath converts a CUE field path to JSON-path notation. CUE hands
// back flat slices where numeric elements are list indices, so
// ["excluded", "0"] becomes "excluded[0]".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isListIndex(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func isListIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize rejects data larger than maxSize before it reaches the CUE
// evaluator, which has no size guard of its own.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
