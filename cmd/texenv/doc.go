// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for texenv.
//
// This package implements the Cobra command hierarchy for the texenv CLI,
// including the root command and subcommands for toolchain inspection
// (which, tools, doctor), tool invocation (run, compile), and configuration
// management.
package cmd
