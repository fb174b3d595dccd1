// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run provides the command that executes queues defined in files.
package run

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/cmdqueue/internal/color"
	"github.com/matt-FFFFFF/cmdqueue/internal/config"
	"github.com/matt-FFFFFF/cmdqueue/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdqueue/internal/queue"
	"github.com/matt-FFFFFF/cmdqueue/internal/runner"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag                    = "file"
	outFlag                     = "out"
	jsonFlag                    = "json"
	configTimeoutFlag           = "config-timeout"
	configTimeoutSecondsDefault = 30
	cliExitStr                  = ""
	jsonIndent                  = 2
	outputIndent                = "    "
)

var (
	// ErrWriteResults is returned when the results cannot be written.
	ErrWriteResults = errors.New("failed to write results")
)

// RunCmd is the command that runs the queues defined in one or more files.
var RunCmd = NewCommand()

// NewCommand returns a new run command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the command queues defined in YAML, JSON or HCL files",
		Description: `Run the command queues defined in the specified files, in order,
and print the output and result code of every command.
Files with the .hcl extension are read as HCL, anything else as YAML or JSON.

Config file URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.

The process exits with status 1 if any command exits with a non-zero status.
`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    fileFlag,
				Aliases: []string{"f"},
				Usage: "Specify the URL of the queue file to run. " +
					"Supports Hashicorp's go-getter syntax for fetching files from various sources. " +
					"Specify multiple times to run multiple files.",
			},
			&cli.StringFlag{
				Name:      outFlag,
				Usage:     "Also write the results as JSON to this file",
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.BoolFlag{
				Name:        jsonFlag,
				Usage:       "Print the results as JSON",
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.IntFlag{
				Name:    configTimeoutFlag,
				Aliases: []string{"timeout"},
				Usage: "Set the maximum time in seconds to wait for fetching and decoding each queue file. " +
					"Defaults to 30 seconds.",
				Value: configTimeoutSecondsDefault,
			},
		},
		Action: actionFunc,
	}
}

// Result is the outcome of running the queue from one file.
type Result struct {
	Source   string        `json:"source"`
	Name     string        `json:"name,omitempty"`
	Commands []queue.Entry `json:"commands"`
}

// failed reports whether any command exited with a non-zero status.
func (r Result) failed() bool {
	for _, e := range r.Commands {
		if code, ok := e[runner.KeyResultCode].(int); ok && code != 0 {
			return true
		}
	}

	return false
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running run command")

	urls := cmd.StringSlice(fileFlag)
	if len(urls) == 0 {
		logger.Error("Please specify at least one URL for the queue file using the --file or -f flag.")
		return cli.Exit(cliExitStr, 1)
	}

	timeout := time.Duration(cmd.Int(configTimeoutFlag)) * time.Second
	results := make([]Result, 0, len(urls))

	for i, u := range urls {
		if u == "" {
			logger.Error(fmt.Sprintf("The URL at index %d is empty. Please provide a valid URL.", i))
			return cli.Exit(cliExitStr, 1)
		}

		res, err := runFile(ctx, u, timeout)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to run queue from %s: %s", u, err.Error()))
			return cli.Exit(cliExitStr, 1)
		}

		results = append(results, res)
	}

	if outFileName := cmd.String(outFlag); outFileName != "" {
		if err := writeJSONFile(outFileName, results); err != nil {
			logger.Error(err.Error())
			return cli.Exit(cliExitStr, 1)
		}

		logger.Info(fmt.Sprintf("Results written to %s", outFileName))
	}

	w := cmd.Root().Writer

	var err error

	switch cmd.Bool(jsonFlag) {
	case true:
		err = writeJSON(w, results)
	default:
		err = writeText(w, results)
	}

	if err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	for _, r := range results {
		if r.failed() {
			logger.Error("Some commands failed. See above for details.")
			return cli.Exit(cliExitStr, 1)
		}
	}

	return nil
}

func runFile(ctx context.Context, url string, timeout time.Duration) (Result, error) {
	configCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	def, err := config.Fetch(configCtx, url)
	if err != nil {
		return Result{}, err
	}

	q, err := def.Queue()
	if err != nil {
		return Result{}, err
	}

	entries, _, err := q.Execute(ctx)
	if err != nil {
		return Result{}, err
	}

	return Result{Source: url, Name: def.Name, Commands: entries}, nil
}

func writeText(w io.Writer, results []Result) error {
	sb := strings.Builder{}

	for _, r := range results {
		title := r.Name
		if title == "" {
			title = r.Source
		}

		sb.WriteString(color.Colorize(title, color.Bold))
		sb.WriteString("\n")

		for i, e := range r.Commands {
			code, _ := e[runner.KeyResultCode].(int)

			status := color.Colorize("ok", color.FgGreen)
			if code != 0 {
				status = color.Colorize(fmt.Sprintf("exit %d", code), color.FgRed)
			}

			fmt.Fprintf(&sb, "[%d] %s: %s\n", i, label(e), status)

			switch out := e[runner.KeyOutput].(type) {
			case string:
				for l := range strings.Lines(out) {
					sb.WriteString(outputIndent)
					sb.WriteString(l)
				}

				if out != "" && !strings.HasSuffix(out, "\n") {
					sb.WriteString("\n")
				}
			case []string:
				for _, l := range out {
					sb.WriteString(outputIndent)
					sb.WriteString(l)
					sb.WriteString("\n")
				}
			}
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	return nil
}

func label(e queue.Entry) string {
	if name, ok := e[config.KeyName].(string); ok && name != "" {
		return name
	}

	return fmt.Sprint(e[queue.KeyCommand])
}

// writeJSON renders results with colorjson, which only handles plain JSON
// values, so the results are round-tripped through encoding/json first.
func writeJSON(w io.Writer, results []Result) error {
	b, err := json.Marshal(results)
	if err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	var plain []any
	if err := json.Unmarshal(b, &plain); err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	f := colorjson.NewFormatter()
	f.Indent = jsonIndent
	f.DisabledColor = !color.Enabled()

	out, err := f.Marshal(plain)
	if err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	if _, err := fmt.Fprintln(w, string(out)); err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	return nil
}

func writeJSONFile(name string, results []Result) error {
	b, err := json.MarshalIndent(results, "", strings.Repeat(" ", jsonIndent))
	if err != nil {
		return errors.Join(ErrWriteResults, err)
	}

	if err := os.WriteFile(name, b, 0o644); err != nil { //nolint:gosec
		return errors.Join(ErrWriteResults, err)
	}

	return nil
}
