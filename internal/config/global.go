// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride, when non-empty, wins over the per-OS config directory.
// Tests set it to point the loader at a temp dir: os.UserHomeDir() ignores
// a changed HOME on some platforms (macOS in CI, for one).
var configDirOverride string

// SetConfigDirOverride redirects config loading to dir until Reset is
// called. Intended for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears the config directory override. Call it from test cleanup.
func Reset() {
	configDirOverride = ""
}
