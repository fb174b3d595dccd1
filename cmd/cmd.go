// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/cmdqueue/cmd/exec"
	"github.com/matt-FFFFFF/cmdqueue/cmd/output"
	"github.com/matt-FFFFFF/cmdqueue/cmd/run"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		exec.ExecCmd,
		output.OutputCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "cmdqueue",
	Description: `cmdqueue runs shell commands one after another and collects their output.
Each command can be escaped, have its output captured as lines or raw text,
be started without waiting for output, and have its output saved to a file.
Queues of commands are defined in YAML, JSON or HCL files.`,
	Usage:     "cmdqueue run -f queue.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
