// SPDX-License-Identifier: MPL-2.0

// Package dump sequences one dump run end to end: input validation,
// toolchain resolution for solution mode, the single analysis pass, and
// per-image rendering in discovery order. Collaborators are injected behind
// small interfaces so runs can be driven with fakes in tests.
package dump
