// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package queue

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/cmdqueue/internal/runner"
	"github.com/mitchellh/mapstructure"
)

var (
	// ErrInvalidOptions is returned when an entry's options value is not a mapping.
	ErrInvalidOptions = errors.New("command options must be a mapping with string keys")
	// ErrUnknownOption is returned when options contain a name with no matching setting.
	ErrUnknownOption = errors.New("unknown command option")
	// ErrInvalidOptionValue is returned when an option value has the wrong type.
	ErrInvalidOptionValue = errors.New("invalid command option value")
)

// entryFields is the typed view of an Entry used to configure a runner.
type entryFields struct {
	Command   any      `mapstructure:"command"`
	Arguments []string `mapstructure:"arguments"`
	Escape    bool     `mapstructure:"escape"`
}

func decodeEntry(entry Entry) (entryFields, error) {
	var s entryFields

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &s,
		TagName: "mapstructure",
	})
	if err != nil {
		return s, err
	}

	view := map[string]any{KeyCommand: entry[KeyCommand]}

	for _, k := range []string{KeyArguments, KeyEscape} {
		if v, ok := entry[k]; ok && v != nil {
			view[k] = v
		}
	}

	if err := dec.Decode(view); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	return s, nil
}

// decodeOptions turns an options mapping into a runner.Config.
// Option names are matched exactly, as they appear in runner.Config tags.
func decodeOptions(raw any) (runner.Config, error) {
	var cfg runner.Config

	opts, ok := asMap(raw)
	if !ok {
		return cfg, fmt.Errorf("%w: %T passed", ErrInvalidOptions, raw)
	}

	if nulls := nullKeys(opts); len(nulls) > 0 {
		return cfg, fmt.Errorf("%w: %s must not be null", ErrInvalidOptionValue, strings.Join(nulls, ", "))
	}

	var md mapstructure.Metadata

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:    &cfg,
		Metadata:  &md,
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return cfg, err
	}

	if err := dec.Decode(map[string]any(opts)); err != nil {
		return runner.Config{}, fmt.Errorf("%w: %w", ErrInvalidOptionValue, err)
	}

	if len(md.Unused) > 0 {
		slices.Sort(md.Unused)
		return runner.Config{}, fmt.Errorf("%w: %s", ErrUnknownOption, strings.Join(md.Unused, ", "))
	}

	return cfg, nil
}

func nullKeys(m map[string]any) []string {
	var keys []string

	for k, v := range m {
		if v == nil {
			keys = append(keys, k)
		}
	}

	slices.Sort(keys)

	return keys
}
