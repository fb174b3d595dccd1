// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"strings"
	"unicode"
)

const (
	// KeyOutput is the result key holding captured output.
	KeyOutput = "output"
	// KeyResultCode is the result key holding the exit status.
	KeyResultCode = "resultCode"
)

// Result is the outcome of one Execute call.
type Result struct {
	Lines      []string // Captured output lines, line mode only.
	Raw        string   // Captured output, raw mode only.
	IsRaw      bool     // Whether the output was captured in raw mode.
	ResultCode int      // Exit status of the shell.
}

// Output returns the captured output: a string in raw mode, otherwise a []string.
func (r *Result) Output() any {
	if r.IsRaw {
		return r.Raw
	}

	return r.Lines
}

// Map returns the result as the two keys merged into a queue entry.
func (r *Result) Map() map[string]any {
	return map[string]any{
		KeyOutput:     r.Output(),
		KeyResultCode: r.ResultCode,
	}
}

// splitLines splits captured output into lines with trailing whitespace removed.
// A final newline does not produce an empty trailing line.
func splitLines(s string) []string {
	lines := []string{}
	if s == "" {
		return lines
	}

	s = strings.TrimSuffix(s, "\n")
	for l := range strings.SplitSeq(s, "\n") {
		lines = append(lines, strings.TrimRightFunc(l, unicode.IsSpace))
	}

	return lines
}
