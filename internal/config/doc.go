// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/texenv/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/texenv/config.cue on macOS, %APPDATA%\texenv\config.cue
// on Windows). The package provides type-safe configuration access and covers toolchain
// location, tool selection, compile flags, input search paths, and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
