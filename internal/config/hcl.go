// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/matt-FFFFFF/cmdqueue/internal/queue"
	"github.com/zclconf/go-cty/cty"
)

// KeyName is the entry key holding an HCL command block label.
const KeyName = "name"

var (
	// ErrInvalidHcl is returned when an HCL definition cannot be parsed or decoded.
	ErrInvalidHcl = errors.New("invalid HCL")
	// ErrDuplicateCommand is returned when two command blocks share a label.
	ErrDuplicateCommand = errors.New("duplicate command block")
)

// Environ supplies the variables exposed to HCL expressions as env.<NAME>.
var Environ = os.Environ

type hclDefinition struct {
	Name        string          `hcl:"name,optional"`
	Description string          `hcl:"description,optional"`
	Commands    []*commandBlock `hcl:"command,block"`
}

type commandBlock struct {
	Label     string         `hcl:"label,label"`
	Command   string         `hcl:"command"`
	Arguments []string       `hcl:"arguments,optional"`
	Escape    *bool          `hcl:"escape,optional"`
	Options   *hcl.Attribute `hcl:"options,optional"`
}

// FromHCL decodes an HCL definition:
//
//	name = "build"
//
//	command "list" {
//	  command   = "ls -la"
//	  arguments = [env.HOME]
//	  options = {
//	    rawOutput = true
//	  }
//	}
//
// Blocks become entries in file order, with the label stored under KeyName.
func FromHCL(data []byte, filename string) (*Definition, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHcl, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environValue(Environ()),
		},
	}

	var raw hclDefinition
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHcl, diags)
	}

	if len(raw.Commands) == 0 {
		return nil, ErrNoCommands
	}

	def := &Definition{
		Name:        raw.Name,
		Description: raw.Description,
		Commands:    make([]any, 0, len(raw.Commands)),
	}

	var result *multierror.Error

	seen := make(map[string]struct{}, len(raw.Commands))

	for _, b := range raw.Commands {
		if _, ok := seen[b.Label]; ok {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrDuplicateCommand, b.Label))
			continue
		}

		seen[b.Label] = struct{}{}

		entry, err := b.entry(evalCtx)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("command %q: %w", b.Label, err))
			continue
		}

		def.Commands = append(def.Commands, entry)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Join(ErrInvalidHcl, err)
	}

	return def, nil
}

func (b *commandBlock) entry(evalCtx *hcl.EvalContext) (map[string]any, error) {
	entry := map[string]any{
		KeyName:          b.Label,
		queue.KeyCommand: b.Command,
	}

	if b.Arguments != nil {
		entry[queue.KeyArguments] = b.Arguments
	}

	if b.Escape != nil {
		entry[queue.KeyEscape] = *b.Escape
	}

	if b.Options != nil {
		v, diags := b.Options.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, diags
		}

		opts, err := ctyToGo(v)
		if err != nil {
			return nil, err
		}

		entry[queue.KeyOptions] = opts
	}

	return entry, nil
}

func environValue(environ []string) cty.Value {
	vars := make(map[string]cty.Value, len(environ))

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	if len(vars) == 0 {
		return cty.MapValEmpty(cty.String)
	}

	return cty.MapVal(vars)
}

// ctyToGo converts v into the plain values produced by the YAML decoder, so
// that options are validated the same way whatever the source format.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}

	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("%w: value is not known", ErrInvalidHcl)
	}

	ty := v.Type()

	switch {
	case ty.Equals(cty.String):
		return v.AsString(), nil
	case ty.Equals(cty.Bool):
		return v.True(), nil
	case ty.Equals(cty.Number):
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return int(i), nil
		}

		f, _ := bf.Float64()

		return f, nil
	case ty.IsObjectType() || ty.IsMapType():
		m := make(map[string]any, v.LengthInt())

		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()

			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}

			m[k.AsString()] = gv
		}

		return m, nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		s := make([]any, 0, v.LengthInt())

		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()

			gv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}

			s = append(s, gv)
		}

		return s, nil
	default:
		return nil, fmt.Errorf("%w: unsupported value type %s", ErrInvalidHcl, ty.FriendlyName())
	}
}
