// SPDX-License-Identifier: MPL-2.0

// Package issue turns known failure modes into guidance the user can act
// on. It has two complementary shapes: ActionableError, a structured error
// carrying the failed operation and suggested next steps, and a catalog of
// Markdown cards keyed by Id that commands render to the terminal when a
// failure matches a known situation, like a missing toolchain or an
// unparseable configuration file.
package issue
