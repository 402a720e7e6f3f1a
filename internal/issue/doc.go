// SPDX-License-Identifier: MPL-2.0

// Package issue turns dump failures into guidance the user can act on.
//
// It has two layers: ActionableError attaches operation, resource, and
// suggestions to an error as it travels up the stack, and the Issue
// registry maps known failure classes (missing binary, unreadable
// metadata, absent toolchain, ...) to Markdown explanations rendered in
// the terminal with links to further documentation.
package issue
