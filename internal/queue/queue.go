// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package queue

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/cmdqueue/internal/ctxlog"
	"github.com/matt-FFFFFF/cmdqueue/internal/runner"
)

// Keys recognised in an entry.
const (
	KeyCommand   = "command"
	KeyArguments = "arguments"
	KeyEscape    = "escape"
	KeyOptions   = "options"
)

var (
	// ErrEmptyQueue is returned when an empty command list is set.
	ErrEmptyQueue = errors.New("command list for queue is empty")
	// ErrInvalidEntry is returned when an entry is not a mapping or has malformed fields.
	ErrInvalidEntry = errors.New("command list should consist of mappings with string keys")
	// ErrMissingCommand is returned when an entry has no command key.
	ErrMissingCommand = errors.New("can't find 'command' param")
)

// Entry describes one command. After execution it also holds the
// "output" and "resultCode" keys.
type Entry map[string]any

// NewRunnerFunc creates the runner for one entry.
type NewRunnerFunc func() *runner.Runner

// Queue holds an ordered list of entries and executes them sequentially.
// A Queue is not safe for concurrent use.
type Queue struct {
	entries   []Entry
	current   *runner.Runner
	newRunner NewRunnerFunc
}

// Option configures a Queue.
type Option func(*Queue)

// WithRunnerFactory sets how a runner is created for each entry.
func WithRunnerFactory(fn NewRunnerFunc) Option {
	return func(q *Queue) {
		if fn != nil {
			q.newRunner = fn
		}
	}
}

// New returns a Queue. When commandList is non-empty it is validated and set.
func New(commandList []any, opts ...Option) (*Queue, error) {
	q := &Queue{
		newRunner: func() *runner.Runner { return runner.New() },
	}

	for _, opt := range opts {
		opt(q)
	}

	if len(commandList) > 0 {
		if err := q.SetCommandQueue(commandList); err != nil {
			return nil, err
		}
	}

	return q, nil
}

// SetCommandQueue validates commandList and replaces the stored entries.
// Every element must be a map containing the command key. All offending
// elements are reported; on error nothing is stored.
// Entries are shallow copies, so execution does not modify the caller's maps.
func (q *Queue) SetCommandQueue(commandList []any) error {
	if len(commandList) == 0 {
		return ErrEmptyQueue
	}

	entries, err := validate(commandList)
	if err != nil {
		return err
	}

	q.entries = entries

	return nil
}

func validate(commandList []any) ([]Entry, error) {
	var result *multierror.Error

	entries := make([]Entry, 0, len(commandList))

	for i, item := range commandList {
		m, ok := asMap(item)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("entry %d: %w, %T passed", i, ErrInvalidEntry, item))
			continue
		}

		if _, ok := m[KeyCommand]; !ok {
			result = multierror.Append(result, fmt.Errorf("entry %d: %w", i, ErrMissingCommand))
			continue
		}

		entries = append(entries, Entry(maps.Clone(m)))
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return entries, nil
}

// asMap accepts any map keyed by strings, such as map[string]string.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Entry:
		return m, true
	case map[string]any:
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	m := make(map[string]any, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}

	return m, true
}

// CommandQueue returns the stored entries, including results merged by Execute.
func (q *Queue) CommandQueue() []Entry {
	return q.entries
}

// Current returns the runner of the entry being executed, or of the last
// executed entry. It is nil before the first Execute.
func (q *Queue) Current() *runner.Runner {
	return q.current
}

// Len returns the number of stored entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Execute runs every entry in order and returns the entries with merged results.
// ok is false, with a nil error, when the queue is empty.
//
// On error the entries already executed keep their results in the stored list,
// which remains available from CommandQueue.
func (q *Queue) Execute(ctx context.Context) (entries []Entry, ok bool, err error) {
	if len(q.entries) == 0 {
		return nil, false, nil
	}

	logger := ctxlog.Logger(ctx).With("runnableType", "Queue")

	for i, entry := range slices.All(q.entries) {
		logger.Debug("executing entry", "index", i, "command", entry[KeyCommand])

		q.current = q.newRunner()

		res, err := q.run(ctx, q.current, entry)
		if err != nil {
			return nil, false, fmt.Errorf("entry %d: %w", i, err)
		}

		maps.Copy(entry, res.Map())

		logger.Debug("entry finished", "index", i, "resultCode", res.ResultCode)
	}

	return q.entries, true, nil
}

func (q *Queue) run(ctx context.Context, r *runner.Runner, entry Entry) (*runner.Result, error) {
	fields, err := decodeEntry(entry)
	if err != nil {
		return nil, err
	}

	if raw, ok := entry[KeyOptions]; ok {
		cfg, err := decodeOptions(raw)
		if err != nil {
			return nil, err
		}

		if err := r.Configure(cfg); err != nil {
			return nil, err
		}
	}

	if _, err := r.SetCommandValue(fields.Command, fields.Escape); err != nil {
		return nil, err
	}

	if fields.Arguments != nil {
		r.SetArgument(fields.Arguments)
	}

	return r.Execute(ctx)
}
