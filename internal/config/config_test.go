// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"testing"

	"github.com/matt-FFFFFF/cmdqueue/internal/queue"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromYAML(t *testing.T) {
	yamlData := `
name: "Build"
description: "Build the project"
commands:
  - command: "go build ./..."
    escape: false
  - command: "ls"
    arguments: ["-l", "-a"]
    options:
      saveOutputName: "listing"
      waitForOutput: true
`

	def, err := FromYAML([]byte(yamlData))
	require.NoError(t, err)
	assert.Equal(t, "Build", def.Name)
	assert.Equal(t, "Build the project", def.Description)
	require.Len(t, def.Commands, 2)

	second, ok := def.Commands[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ls", second[queue.KeyCommand])
	assert.Equal(t, []any{"-l", "-a"}, second[queue.KeyArguments])
	assert.Equal(t, map[string]any{"saveOutputName": "listing", "waitForOutput": true}, second[queue.KeyOptions])
}

func TestFromYAML_JSON(t *testing.T) {
	jsonData := `{"name": "j", "commands": [{"command": "pwd", "arguments": [], "escape": true}]}`

	def, err := FromYAML([]byte(jsonData))
	require.NoError(t, err)
	require.Len(t, def.Commands, 1)
	assert.Equal(t, "pwd", def.Commands[0].(map[string]any)[queue.KeyCommand])
	assert.Equal(t, true, def.Commands[0].(map[string]any)[queue.KeyEscape])
}

func TestFromYAML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "invalid", data: "commands: [", wantErr: ErrInvalidYaml},
		{name: "no commands", data: "name: empty", wantErr: ErrNoCommands},
		{name: "empty list", data: "commands: []", wantErr: ErrNoCommands},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := FromYAML([]byte(tt.data))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, def)
		})
	}
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	ctx := context.Background()
	hclData := []byte(`command "a" { command = "pwd" }`)

	def, err := Load(ctx, "queue.hcl", hclData)
	require.NoError(t, err)
	assert.Len(t, def.Commands, 1)

	def, err = Load(ctx, "git::https://example.com/repo.git//queues/queue.HCL?ref=v1", hclData)
	require.NoError(t, err)
	assert.Len(t, def.Commands, 1)

	_, err = Load(ctx, "queue.yaml", hclData)
	require.ErrorIs(t, err, ErrInvalidYaml)
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/queues/q.yaml", []byte("commands:\n  - command: pwd\n"), 0o644))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	defer stubs.Reset()

	def, err := LoadFile(context.Background(), "/queues/q.yaml")
	require.NoError(t, err)
	assert.Len(t, def.Commands, 1)

	_, err = LoadFile(context.Background(), "/queues/missing.yaml")
	require.ErrorIs(t, err, ErrReadFile)
}

func TestDefinition_Queue(t *testing.T) {
	def, err := FromYAML([]byte("commands:\n  - command: pwd\n  - command: ls\n"))
	require.NoError(t, err)

	q, err := def.Queue()
	require.NoError(t, err)
	assert.Equal(t, 2, q.Len())

	def, err = FromYAML([]byte("commands:\n  - arguments: []\n"))
	require.NoError(t, err)

	_, err = def.Queue()
	require.ErrorIs(t, err, queue.ErrMissingCommand)

	_, err = (&Definition{}).Queue()
	require.ErrorIs(t, err, ErrNoCommands)
}
