// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/texenv/texenv/internal/issue"
)

// ServiceError is the bridge between command logic and error presentation.
// The logic layer attaches what it knows, a pre-styled message and an
// issue catalog Id, and the command boundary decides how to show it.
// Construct through newServiceError; Err must never be nil.
type ServiceError struct {
	// Err is the underlying error and supplies Error() and the unwrap
	// chain.
	Err error
	// IssueID selects the catalog card to render, 0 for none.
	IssueID issue.Id
	// StyledMessage is printed verbatim before the card, "" for none.
	StyledMessage string
}

// newServiceError builds a ServiceError, panicking on a nil Err. The
// panic is deliberate: a nil Err here is a programming error, not a
// runtime condition.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

func (e *ServiceError) Error() string { return e.Err.Error() }

func (e *ServiceError) Unwrap() error { return e.Err }

// exitWithRendered is the common tail of every RunE handler: render the
// ServiceError payload if err carries one, then convert err into the
// process exit error. An ExitError anywhere in the chain passes through
// so a child's exit code survives; anything else exits 1.
func exitWithRendered(stderr io.Writer, err error) error {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		renderServiceError(stderr, svcErr)
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: 1, Err: err}
}

// renderServiceError prints the styled message, then the catalog card.
// A card that fails to render is logged and skipped; the user still has
// the message and the exit code.
func renderServiceError(stderr io.Writer, svcErr *ServiceError) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if card := issue.Get(svcErr.IssueID); card != nil {
		rendered, renderErr := card.Render("dark")
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}
