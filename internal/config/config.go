// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/matt-FFFFFF/cmdqueue/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdqueue/internal/queue"
	"github.com/spf13/afero"
)

const hclExt = ".hcl"

var (
	// ErrInvalidYaml is returned when a YAML or JSON definition cannot be decoded.
	ErrInvalidYaml = errors.New("invalid YAML")
	// ErrNoCommands is returned when a definition has no commands.
	ErrNoCommands = errors.New("no commands specified")
	// ErrReadFile is returned when a definition file cannot be read.
	ErrReadFile = errors.New("failed to read file")
)

// Definition represents the root configuration structure.
type Definition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Commands    []any  `yaml:"commands"`
}

// FromYAML decodes a YAML or JSON definition.
func FromYAML(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYaml, err)
	}

	if len(def.Commands) == 0 {
		return nil, ErrNoCommands
	}

	return &def, nil
}

// Load decodes data as HCL when name has the .hcl extension, otherwise as YAML or JSON.
// Any query string in name, such as a go-getter ref, is ignored.
func Load(ctx context.Context, name string, data []byte) (*Definition, error) {
	if isHCL(name) {
		return decodeHCL(ctx, data, name)
	}

	return decodeYAML(ctx, data)
}

func decodeHCL(ctx context.Context, data []byte, name string) (*Definition, error) {
	ctxlog.Debug(ctx, "decoding HCL definition", "name", name)
	return FromHCL(data, name)
}

func decodeYAML(ctx context.Context, data []byte) (*Definition, error) {
	ctxlog.Debug(ctx, "decoding YAML definition")
	return FromYAML(data)
}

// LoadFile reads filename from the filesystem returned by FsFactory and decodes it.
func LoadFile(ctx context.Context, filename string) (*Definition, error) {
	data, err := afero.ReadFile(FsFactory(), filename)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}

	return Load(ctx, filename, data)
}

// Queue returns a queue holding the definition's commands.
func (d *Definition) Queue(opts ...queue.Option) (*queue.Queue, error) {
	if len(d.Commands) == 0 {
		return nil, ErrNoCommands
	}

	return queue.New(d.Commands, opts...)
}

func isHCL(name string) bool {
	name, _, _ = strings.Cut(name, goGetterRefSeparator)
	return strings.EqualFold(path.Ext(name), hclExt)
}
