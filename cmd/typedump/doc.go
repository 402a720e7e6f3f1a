// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for typedump.
//
// This package implements the Cobra command hierarchy for the typedump CLI,
// including the root command, the dump pipeline entry point, toolchain
// path resolution, interactive config scaffolding, and configuration
// management.
package cmd
