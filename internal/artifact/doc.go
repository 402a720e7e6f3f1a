// SPDX-License-Identifier: MPL-2.0

// Package artifact plans and writes output artifact paths. PlanPath
// disambiguates the configured base path across multiple images; the writer
// helpers create parent directories and sanitize metadata-derived names so
// they are usable as file names on every platform.
package artifact
