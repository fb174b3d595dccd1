// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/matt-FFFFFF/cmdqueue/internal/ctxlog"
)

// detachedWaitDelay bounds how long Execute waits for output pipes held open by
// children that outlive the shell when output is not waited for.
const detachedWaitDelay = 250 * time.Millisecond

var (
	// ErrCouldNotStartProcess is returned when the shell could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrSaveOutput is returned when captured output could not be saved.
	ErrSaveOutput = errors.New("could not save output")
)

// Execute runs the command line and returns its output and exit status.
// The context only carries the logger; the process is not cancelled when it is done.
func (r *Runner) Execute(ctx context.Context) (*Result, error) {
	if r.command == "" {
		return nil, ErrEmptyCommand
	}

	logger := ctxlog.Logger(ctx).With("runnableType", "Runner")
	line := r.CommandLine()

	logger.Debug("command info",
		"shell", r.shell.Path,
		"commandLine", line,
		"rawOutput", r.rawOutput,
		"waitForOutput", r.waitForOutput,
	)

	var buf bytes.Buffer

	cmd := exec.Command(r.shell.Path, r.shell.Switch, line) //nolint:gosec,noctx
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if !r.waitForOutput {
		cmd.WaitDelay = detachedWaitDelay
	}

	err := cmd.Run()

	var exitErr *exec.ExitError

	res := &Result{IsRaw: r.rawOutput}

	switch {
	case err == nil:
		res.ResultCode = cmd.ProcessState.ExitCode()
	case errors.As(err, &exitErr):
		res.ResultCode = exitErr.ExitCode()
	case errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil:
		logger.Debug("output pipes left open by a detached child")
		res.ResultCode = cmd.ProcessState.ExitCode()
	default:
		return nil, errors.Join(ErrCouldNotStartProcess, err)
	}

	if r.rawOutput {
		res.Raw = buf.String()
	} else {
		res.Lines = splitLines(buf.String())
	}

	logger.Debug("process finished", "resultCode", res.ResultCode, "bytes", buf.Len())

	if r.saveOutput {
		logger.Debug("saving output")

		if err := r.output.Save(res.Output()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSaveOutput, err)
		}
	}

	return res, nil
}
