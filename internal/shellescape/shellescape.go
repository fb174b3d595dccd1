// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shellescape

import (
	"strings"
)

// Func turns a raw string into a shell-safe string.
type Func func(string) string

// Policy groups the two escaping points used when building a command line.
type Policy struct {
	// Command escapes a whole command string, neutralising shell metacharacters.
	Command Func
	// Argument quotes a single argument so it is passed literally.
	Argument Func
}

// Posix is the default policy for sh compatible shells.
var Posix = Policy{
	Command:  Command,
	Argument: Argument,
}

// metaChars are preceded by a backslash by Command.
const metaChars = "#&;`|*?~<>^()[]{}$\\\n"

// Command escapes the shell metacharacters in s by prefixing each with a backslash.
// Single and double quotes are only escaped when they are unpaired.
func Command(s string) string {
	sb := strings.Builder{}
	sb.Grow(len(s) * 2) //nolint:mnd

	pending := rune(0)

	for i, r := range s {
		switch {
		case r == '\'' || r == '"':
			switch {
			case pending == 0 && strings.ContainsRune(s[i+1:], r):
				pending = r
			case pending == r:
				pending = 0
			default:
				sb.WriteRune('\\')
			}
		case strings.ContainsRune(metaChars, r):
			sb.WriteRune('\\')
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// Argument wraps s in single quotes. Embedded single quotes are closed, escaped and reopened.
func Argument(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Arguments applies the policy's argument escaping to every element of args.
// The returned slice is always newly allocated.
func (p Policy) Arguments(args []string) []string {
	escape := p.Argument
	if escape == nil {
		escape = Argument
	}

	res := make([]string, len(args))
	for i, a := range args {
		res[i] = escape(a)
	}

	return res
}
