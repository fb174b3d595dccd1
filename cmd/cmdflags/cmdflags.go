// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdflags provides flags shared by several commands.
package cmdflags

import "github.com/urfave/cli/v3"

const (
	// OutputPath is the name of the output directory flag.
	OutputPath = "output-path"
	// OutputPathEnvVar sets the output directory when the flag is not given.
	OutputPathEnvVar = "CMDQUEUE_OUTPUT_PATH"
)

// OutputPathFlag returns a new flag selecting the output directory.
// Each command needs its own instance.
func OutputPathFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:      OutputPath,
		Aliases:   []string{"o"},
		Usage:     "Directory that saved output is written to and read from",
		Sources:   cli.EnvVars(OutputPathEnvVar),
		TakesFile: true,
		OnlyOnce:  true,
	}
}
