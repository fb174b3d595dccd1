// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package exec provides the command that runs a single shell command.
package exec

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/cmdqueue/cmd/cmdflags"
	"github.com/matt-FFFFFF/cmdqueue/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdqueue/internal/output"
	"github.com/matt-FFFFFF/cmdqueue/internal/runner"
	"github.com/urfave/cli/v3"
)

const (
	rawFlag    = "raw"
	noWaitFlag = "no-wait"
	escapeFlag = "escape"
	saveFlag   = "save"
	cliExitStr = ""
)

// ExecCmd is the command that runs a single shell command.
var ExecCmd = NewCommand()

// NewCommand returns a new exec command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "Run a single shell command",
		ArgsUsage: "-- COMMAND [ARGUMENTS...]",
		Description: `Run a single shell command and print its output.
The command is handed to the shell as written unless --escape is given.
Every argument is quoted individually.
The process exits with the command's exit status.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        rawFlag,
				Usage:       "Print the output exactly as produced instead of line by line",
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.BoolFlag{
				Name:        noWaitFlag,
				Aliases:     []string{"detach"},
				Usage:       "Discard output so that long running commands can be started in the background",
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.BoolFlag{
				Name:        escapeFlag,
				Aliases:     []string{"e"},
				Usage:       "Escape shell metacharacters in the command",
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.StringFlag{
				Name:     saveFlag,
				Aliases:  []string{"s"},
				Usage:    "Save the output under this name. An empty name generates one",
				OnlyOnce: true,
			},
			cmdflags.OutputPathFlag(),
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	args := cmd.Args().Slice()
	if len(args) == 0 {
		logger.Error("Please specify the command to run.")
		return cli.Exit(cliExitStr, 1)
	}

	r := runner.New()

	if p := cmd.String(cmdflags.OutputPath); p != "" {
		if _, err := r.SetOutputPath(p); err != nil {
			logger.Error(err.Error())
			return cli.Exit(cliExitStr, 1)
		}
	}

	if _, err := r.SetCommand(args[0], cmd.Bool(escapeFlag)); err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	r.SetArgument(args[1:]).
		SetWaitForOutput(!cmd.Bool(noWaitFlag)).
		SetRawOutput(cmd.Bool(rawFlag))

	if cmd.IsSet(saveFlag) {
		r.SetSaveOutputName(cmd.String(saveFlag))
	}

	res, err := r.Execute(ctx)
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	w := cmd.Root().Writer

	if res.IsRaw {
		fmt.Fprint(w, res.Raw) //nolint:errcheck
	} else {
		for _, l := range res.Lines {
			fmt.Fprintln(w, l) //nolint:errcheck
		}
	}

	if fo, ok := r.CommandOutput().(*output.FileOutput); ok && r.SaveOutput() {
		logger.Info("output saved", "path", fo.Path(), "name", fo.Name())
	}

	if res.ResultCode != 0 {
		logger.Debug("command exited with non-zero status", "resultCode", res.ResultCode)
		return cli.Exit(cliExitStr, res.ResultCode)
	}

	return nil
}
