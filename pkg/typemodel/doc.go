// SPDX-License-Identifier: MPL-2.0

// Package typemodel defines the reconstructed type model of one analyzed
// image: the ordered type entries with their fields, methods, and attribute
// text, plus assembly-level attribute text. It is pure data; analysis builds
// it and renderers consume it.
package typemodel
