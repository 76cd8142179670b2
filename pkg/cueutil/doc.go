// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the CUE evaluator behind one call: compile an
// embedded schema, unify user data with it, and decode the result into a
// Go value. Input is size-capped before evaluation and every user-facing
// failure is rewritten to carry the offending field path.
//
//	result, err := cueutil.ParseAndDecodeString[map[string]any](
//	    schema, data, "#Config",
//	    cueutil.WithFilename(path),
//	    cueutil.WithConcrete(false),
//	)
//
// The schema is trusted (it ships in the binary), so its compilation
// failures surface as internal errors rather than formatted diagnostics.
package cueutil
