// SPDX-License-Identifier: MPL-2.0

// Package dumpopts defines the per-run dump options: the layout schema and
// sort order enums, namespace exclusion, and the solution-mode override that
// produces the effective option view the layout dispatch honors.
package dumpopts
