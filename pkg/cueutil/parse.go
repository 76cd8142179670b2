// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseResult carries the outcome of a successful parse: the decoded Go
// value plus the unified CUE value for callers that want to inspect the
// document beyond what decoding surfaces.
type ParseResult[T any] struct {
	Value   *T
	Unified cue.Value
}

// ParseAndDecode compiles an embedded schema, compiles user data against
// it, and decodes the unified result into T.
//
// schemaPath selects the root definition inside the schema, like
// "#Config". User data failures go through FormatError so messages carry
// the offending field path.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	// Reject oversized input before handing it to the evaluator.
	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaRoot, err := compileSchema(ctx, schema, schemaPath)
	if err != nil {
		return nil, err
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	unified := schemaRoot.Unify(userValue)

	var validateOpts []cue.Option
	if options.concrete {
		validateOpts = append(validateOpts, cue.Concrete(true))
	}
	if err := unified.Validate(validateOpts...); err != nil {
		return nil, FormatError(err, filename)
	}

	var decoded T
	if err := unified.Decode(&decoded); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{
		Value:   &decoded,
		Unified: unified,
	}, nil
}

// compileSchema compiles the embedded schema and resolves the root
// definition inside it. The schema ships inside the binary, so either
// failure is a programming error and surfaces as one.
func compileSchema(ctx *cue.Context, schema []byte, schemaPath string) (cue.Value, error) {
	root := ctx.CompileBytes(schema)
	if root.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: embedded schema does not compile: %w", root.Err())
	}

	def := root.LookupPath(cue.ParsePath(schemaPath))
	if def.Err() != nil {
		return cue.Value{}, fmt.Errorf("internal error: no %s definition in schema: %w", schemaPath, def.Err())
	}
	return def, nil
}

// ParseAndDecodeString is ParseAndDecode for schemas embedded as string
// constants.
func ParseAndDecodeString[T any](schema string, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	return ParseAndDecode[T]([]byte(schema), data, schemaPath, opts...)
}
