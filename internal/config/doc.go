// SPDX-License-Identifier: MPL-2.0

// Package config loads typedump's configuration through Viper, with CUE as
// the on-disk format.
//
// Configuration is read from ~/.config/typedump/typedump.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/typedump/typedump.cue
// on macOS, %APPDATA%\typedump\typedump.cue on Windows), falling back to a
// typedump.cue in the current directory. The typed Config covers dump
// defaults (layout, sort order, namespace exclusions), toolchain root paths
// for solution mode, artifact output defaults, and UI settings. TYPEDUMP_*
// environment variables override file values, and a local .env file is
// preloaded when present.
//
// Every file is checked against the embedded #Config CUE schema before its
// values are merged, so a typo'd field or wrong type fails loading with the
// offending path in the message instead of being silently dropped.
package config
