// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner executes a single shell command line and captures its output.
//
// A Runner is configured through chained setters (or Configure, for declarative
// input) and then executed once. The command string is trimmed and optionally
// escaped as a whole; arguments are always quoted individually. Standard error
// is merged into standard output. Output is returned either as a slice of lines
// or, in raw mode, as one string. A non-zero exit status is reported in the
// Result and is never an error.
//
// Execution is synchronous. There is no timeout and no cancellation: a command
// that never exits blocks Execute.
package runner
