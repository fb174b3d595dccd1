// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package output provides the commands that read and remove saved command output.
package output

import (
	"context"
	"fmt"

	"github.com/matt-FFFFFF/cmdqueue/cmd/cmdflags"
	"github.com/matt-FFFFFF/cmdqueue/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdqueue/internal/output"
	"github.com/urfave/cli/v3"
)

const (
	nameArg    = "name"
	cliExitStr = ""
)

// OutputCmd groups the saved output commands.
var OutputCmd = NewCommand()

// NewCommand returns a new output command with its get and delete subcommands.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "output",
		Usage: "Read or remove saved command output",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Print saved output",
				Arguments: nameArgs(),
				Flags:     []cli.Flag{cmdflags.OutputPathFlag()},
				Action:    getAction,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Remove saved output",
				Arguments: nameArgs(),
				Flags:     []cli.Flag{cmdflags.OutputPathFlag()},
				Action:    deleteAction,
			},
		},
	}
}

func nameArgs() []cli.Argument {
	return []cli.Argument{
		&cli.StringArg{
			Name:      nameArg,
			UsageText: "NAME",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	}
}

func newOutput(cmd *cli.Command) (*output.FileOutput, error) {
	o := output.NewFile()

	if p := cmd.String(cmdflags.OutputPath); p != "" {
		if _, err := o.SetOutputPath(p); err != nil {
			return nil, err
		}
	}

	return o, nil
}

func getAction(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	name := cmd.StringArg(nameArg)
	if name == "" {
		logger.Error("Please specify the name of the saved output.")
		return cli.Exit(cliExitStr, 1)
	}

	o, err := newOutput(cmd)
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	content, err := o.Get(name)
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	fmt.Fprintln(cmd.Root().Writer, content) //nolint:errcheck

	return nil
}

func deleteAction(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)

	name := cmd.StringArg(nameArg)
	if name == "" {
		logger.Error("Please specify the name of the saved output.")
		return cli.Exit(cliExitStr, 1)
	}

	o, err := newOutput(cmd)
	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	if err := o.Delete(name); err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	logger.Info("output deleted", "path", o.Path(), "name", name)

	return nil
}
