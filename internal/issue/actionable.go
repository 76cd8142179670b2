// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError couples a failure with the context a user needs to
	// act on it: the operation that failed, the resource it touched, and
	// concrete next steps. Commands format it for the terminal instead of
	// printing a bare error string.
	//
	// Construct through the ErrorContext builder:
	//
	//	return issue.NewErrorContext().
	//		WithOperation("load configuration").
	//		WithResource(path).
	//		WithSuggestion("Run 'texenv config init' to create a default file").
	//		Wrap(err).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase naming what failed, like
		// "compile document" or "load configuration".
		Operation string

		// Resource is the file, directory, or name involved, when one
		// exists.
		Resource string

		// Suggestions are rendered as a bulleted list under the message.
		Suggestions []string

		// Cause is the wrapped underlying error, reachable through
		// errors.Is and errors.As.
		Cause error
	}

	// ErrorContext accumulates ActionableError fields fluently. Partial
	// contexts are fine to build early and finish at the failure site.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		cause       error
	}
)

// NewErrorContext starts an empty builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error renders the one-line form:
//
//	failed to <operation>[: <resource>][: <cause>]
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the error for terminal display: the one-line message
// followed by the suggestion list. In verbose mode every error in the
// cause chain is numbered underneath, outermost first.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		depth := 1
		for err := e.Cause; err != nil; err = errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err)
			depth++
		}
	}

	return b.String()
}

// WithOperation sets the failed operation. The operation is mandatory;
// BuildError returns nil without one.
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

// WithResource names the file, directory, or entity involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends one suggestion. Call repeatedly; suggestions
// keep their insertion order.
func (c *ErrorContext) WithSuggestion(s string) *ErrorContext {
	c.suggestions = append(c.suggestions, s)
	return c
}

// Wrap records the underlying error as the cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// BuildError materializes the ActionableError, or nil when no operation
// was set. It returns the error interface so call sites can use it
// directly in a return statement.
func (c *ErrorContext) BuildError() error {
	if c.operation == "" {
		return nil
	}
	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Cause:       c.cause,
	}
}
