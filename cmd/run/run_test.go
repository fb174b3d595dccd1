// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matt-FFFFFF/cmdqueue/internal/color"
	"github.com/matt-FFFFFF/cmdqueue/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdqueue/internal/queue"
	"github.com/matt-FFFFFF/cmdqueue/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runRun(t *testing.T, args ...string) (string, error) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("skipping POSIX shell test on windows")
	}

	prev := color.Enabled()
	color.SetEnabled(false)
	t.Cleanup(func() { color.SetEnabled(prev) })

	var out bytes.Buffer

	root := &cli.Command{
		Name:           "cmdqueue",
		Writer:         &out,
		ErrWriter:      io.Discard,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands:       []*cli.Command{NewCommand()},
	}

	err := root.Run(ctxlog.NewDiscard(context.Background()), append([]string{"cmdqueue", "run"}, args...))

	return out.String(), err
}

func assertExit(t *testing.T, err error, code int) {
	t.Helper()

	var ec cli.ExitCoder

	require.True(t, errors.As(err, &ec), "expected an exit coder, got %v", err)
	assert.Equal(t, code, ec.ExitCode())
}

func TestRun_Text(t *testing.T) {
	out, err := runRun(t, "-f", "./testdata/ok.yaml")
	require.NoError(t, err)

	want := `greetings
[0] hello: ok
    hello
[1] printf '%s\n': ok
    one two
    three
[2] raw: ok
    a
    b
`
	assert.Equal(t, want, out)
}

func TestRun_JSON(t *testing.T) {
	out, err := runRun(t, "--json", "-f", "./testdata/ok.yaml")
	require.NoError(t, err)

	var got []Result
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "greetings", got[0].Name)
	assert.Equal(t, "./testdata/ok.yaml", got[0].Source)
	require.Len(t, got[0].Commands, 3)
	assert.Equal(t, []any{"hello"}, got[0].Commands[0][runner.KeyOutput])
	assert.Equal(t, "a\nb", got[0].Commands[2][runner.KeyOutput])
	assert.InDelta(t, 0, got[0].Commands[2][runner.KeyResultCode], 0)
}

func TestRun_OutFile(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "results.json")

	_, err := runRun(t, "--out", outFile, "-f", "./testdata/ok.yaml", "-f", "./testdata/fail.hcl")
	assertExit(t, err, 1)

	b, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var got []Result
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "failing", got[1].Name)
	assert.InDelta(t, 2, got[1].Commands[1][runner.KeyResultCode], 0)
}

func TestRun_Failures(t *testing.T) {
	out, err := runRun(t, "-f", "./testdata/fail.hcl")
	assertExit(t, err, 1)
	assert.Contains(t, out, "[1] broken: exit 2\n    oops\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "no file", args: nil},
		{name: "empty url", args: []string{"-f", ""}},
		{name: "missing file", args: []string{"-f", "./testdata/missing.yaml"}},
		{name: "invalid queue", args: []string{"-f", "./testdata/invalid.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runRun(t, tt.args...)
			assertExit(t, err, 1)
		})
	}
}

func TestResult_Failed(t *testing.T) {
	r := Result{Commands: []queue.Entry{
		{runner.KeyResultCode: 0},
		{runner.KeyResultCode: 0},
	}}
	assert.False(t, r.failed())

	r.Commands = append(r.Commands, queue.Entry{runner.KeyResultCode: 127})
	assert.True(t, r.failed())
}

func TestWriteText_RawWithoutNewline(t *testing.T) {
	prev := color.Enabled()
	color.SetEnabled(false)
	t.Cleanup(func() { color.SetEnabled(prev) })

	var buf bytes.Buffer
	require.NoError(t, writeText(&buf, []Result{{
		Source: "src",
		Commands: []queue.Entry{
			{queue.KeyCommand: "c", runner.KeyOutput: "x", runner.KeyResultCode: 0},
			{queue.KeyCommand: "d", runner.KeyOutput: "", runner.KeyResultCode: 1},
		},
	}}))

	assert.Equal(t, "src\n[0] c: ok\n    x\n[1] d: exit 1\n", buf.String())
}
