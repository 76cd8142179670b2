// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps parsed input at 5MB. CUE evaluation can blow up
// memory on adversarial input, so the cap is enforced before compilation.
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

type (
	parseOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option adjusts how ParseAndDecode treats its input.
	Option func(*parseOptions)
)

func defaultOptions() parseOptions {
	return parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
	}
}

// WithMaxFileSize overrides the DefaultMaxFileSize input cap.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) { o.maxFileSize = size }
}

// WithConcrete controls whether validation demands concrete values.
// Defaults to true; pass false for documents whose schema leaves fields
// optional.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) { o.concrete = concrete }
}

// WithFilename names the input in error messages. Defaults to "<input>".
func WithFilename(name string) Option {
	return func(o *parseOptions) { o.filename = name }
}
