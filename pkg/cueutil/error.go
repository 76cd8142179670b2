// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// FormatError rewrites a CUE evaluation error into the form
//
//	<file>: <field-path>: <message>
//
// with one line per underlying error when several fields fail at once.
// Field paths use index notation, so a bad second list element reads
// "tex_inputs[1]". Non-CUE errors pass through with just the file prefix.
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	var lines []string
	for _, e := range cueErrors {
		lines = append(lines, formatOne(e))
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// formatOne renders a single CUE error as "<path>: <message>", stripping
// the path from the message when CUE already embedded it there.
func formatOne(e errors.Error) string {
	path := formatPath(errors.Path(e))
	msg := e.Error()

	if path == "" {
		return msg
	}
	if rest, found := strings.CutPrefix(msg, path); found {
		msg = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	}
	return path + ": " + msg
}

// formatPath joins CUE's flat error path into dotted notation, rendering
// purely numeric elements as list indices: ["search", "tex_inputs", "0"]
// becomes "search.tex_inputs[0]".
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isDigits(part):
			b.WriteString("[" + part + "]")
		case i > 0:
			b.WriteString("." + part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// CheckFileSize rejects data longer than maxSize bytes. It is called by
// ParseAndDecode and exported for callers that size-check before reading
// a whole file.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
