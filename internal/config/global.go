// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride, when non-empty, replaces the platform configuration
// directory. Tests set it through SetConfigDirOverride since pointing
// HOME at a temp dir is not enough: os.UserHomeDir ignores HOME on some
// platforms, macOS CI runners among them.
var configDirOverride string

// SetConfigDirOverride pins the configuration directory for the process.
// Pair with a deferred Reset; tests using it cannot run in parallel.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears the override, restoring platform directory resolution.
func Reset() {
	configDirOverride = ""
}
