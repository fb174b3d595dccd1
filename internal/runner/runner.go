// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/cmdqueue/internal/output"
	"github.com/matt-FFFFFF/cmdqueue/internal/shellescape"
)

var (
	// ErrInvalidArgument is returned when a command or argument list has the wrong type.
	ErrInvalidArgument = errors.New("command must be a string")
	// ErrEmptyCommand is returned when the command is blank after trimming.
	ErrEmptyCommand = errors.New("command not set")
)

// Runner holds the state needed to execute one command.
// A Runner is not safe for concurrent use.
type Runner struct {
	command       string
	arguments     []string
	waitForOutput bool
	rawOutput     bool
	saveOutput    bool
	output        output.Output
	escape        shellescape.Policy
	shell         Shell
}

// Option configures a Runner at construction time.
type Option func(*Runner)

// WithOutput sets the Output collaborator used when saving output.
func WithOutput(o output.Output) Option {
	return func(r *Runner) {
		r.output = o
	}
}

// WithEscapePolicy sets the escaping rules for commands and arguments.
func WithEscapePolicy(p shellescape.Policy) Option {
	return func(r *Runner) {
		r.escape = p
	}
}

// WithShell sets the interpreter that runs the command line.
func WithShell(s Shell) Option {
	return func(r *Runner) {
		r.shell = s
	}
}

// New returns a Runner that waits for output, captures lines and uses a
// FileOutput in the default directory unless options say otherwise.
func New(opts ...Option) *Runner {
	r := &Runner{
		waitForOutput: true,
		escape:        shellescape.Posix,
		shell:         DefaultShell(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.output == nil {
		r.output = output.NewFile()
	}

	return r
}

// SetCommand trims command and stores it, escaping it as a whole when escapeCommand is true.
func (r *Runner) SetCommand(command string, escapeCommand bool) (*Runner, error) {
	prepared := strings.TrimSpace(command)
	if prepared == "" {
		return r, ErrEmptyCommand
	}

	if escapeCommand && r.escape.Command != nil {
		prepared = r.escape.Command(prepared)
	}

	r.command = prepared

	return r, nil
}

// SetCommandValue is SetCommand for untyped input such as decoded configuration.
// A non-string value returns ErrInvalidArgument.
func (r *Runner) SetCommandValue(command any, escapeCommand bool) (*Runner, error) {
	s, ok := command.(string)
	if !ok {
		return r, fmt.Errorf("%w: %T passed", ErrInvalidArgument, command)
	}

	return r.SetCommand(s, escapeCommand)
}

// SetArgument replaces the argument list. Every argument is escaped individually.
func (r *Runner) SetArgument(arguments []string) *Runner {
	r.arguments = r.escape.Arguments(arguments)
	return r
}

// SetWaitForOutput controls whether output is captured (true, the default)
// or discarded so that daemon-like commands can be started.
func (r *Runner) SetWaitForOutput(wait bool) *Runner {
	r.waitForOutput = wait
	return r
}

// SetRawOutput selects raw capture (one string) instead of line capture.
func (r *Runner) SetRawOutput(raw bool) *Runner {
	r.rawOutput = raw
	return r
}

// SetCommandOutput replaces the Output collaborator.
func (r *Runner) SetCommandOutput(o output.Output) *Runner {
	if o != nil {
		r.output = o
	}

	return r
}

// CommandOutput returns the Output collaborator.
func (r *Runner) CommandOutput() output.Output {
	return r.output
}

// SetSaveOutputName names the file captured output is saved to and turns saving on.
//
// Unlike the other setters it returns the Output collaborator rather than the
// Runner, so that further output configuration can be chained from it.
func (r *Runner) SetSaveOutputName(name string) output.Output {
	r.output.SetOutputName(name)
	r.saveOutput = true

	return r.output
}

// SetOutputPath forwards the directory to the Output collaborator.
func (r *Runner) SetOutputPath(path string) (*Runner, error) {
	if _, err := r.output.SetOutputPath(path); err != nil {
		return r, err
	}

	return r, nil
}

// Command returns the prepared command.
func (r *Runner) Command() string {
	return r.command
}

// Arguments returns a copy of the escaped arguments.
func (r *Runner) Arguments() []string {
	return slices.Clone(r.arguments)
}

// WaitForOutput reports whether output is captured.
func (r *Runner) WaitForOutput() bool {
	return r.waitForOutput
}

// RawOutput reports whether raw capture is selected.
func (r *Runner) RawOutput() bool {
	return r.rawOutput
}

// SaveOutput reports whether output is saved after execution.
func (r *Runner) SaveOutput() bool {
	return r.saveOutput
}

// CommandLine returns the line handed to the shell:
// the command, the stderr redirect, the discard redirect when not waiting
// for output, and the space separated arguments.
func (r *Runner) CommandLine() string {
	sb := strings.Builder{}
	sb.WriteString(r.command)
	sb.WriteString(errorRedirect)

	if !r.waitForOutput {
		sb.WriteString(r.shell.Discard)
	}

	sb.WriteString(" ")
	sb.WriteString(strings.Join(r.arguments, " "))

	return sb.String()
}
