// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	// generatedNamePrefix prefixes names generated for blank output names.
	generatedNamePrefix = "command_output"
	defaultDirName      = "commandRunnerOutput"
	fileMode            = 0o644
	dirMode             = 0o755
)

var (
	// ErrInvalidContent is returned when content to save is neither a string nor a list of strings.
	ErrInvalidContent = errors.New("output for save must be a string or a list of strings")
	// ErrNotFound is returned when the named output file does not exist.
	ErrNotFound = errors.New("specified output path does not exist")
	// ErrInvalidPath is returned when the output directory does not exist.
	ErrInvalidPath = errors.New("specified output directory does not exist")
	// ErrWrite is returned when the output file cannot be written.
	ErrWrite = errors.New("failed to write output")
	// ErrOutsidePath is returned when a name resolves outside the output directory.
	ErrOutsidePath = errors.New("output name resolves outside the output directory")
)

// Output saves, reads and deletes captured command output by name.
type Output interface {
	// Save writes content to the file named by the last SetOutputName call.
	Save(content any) error
	// Get returns the content of the named file.
	Get(name string) (string, error)
	// Delete removes the named file.
	Delete(name string) error
	// SetOutputPath sets the directory all names are resolved against.
	SetOutputPath(path string) (string, error)
	// SetOutputName sets the name used by Save and returns the resolved name.
	SetOutputName(name string) string
}

var _ Output = (*FileOutput)(nil)

// DefaultPath returns the directory used when no output path is set.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), defaultDirName)
}

// FileOutput is an Output that stores each output as a file in one directory.
type FileOutput struct {
	fs   afero.Fs
	path string
	name string
}

// NewFile returns a FileOutput on the filesystem from FsFactory, rooted at DefaultPath.
func NewFile() *FileOutput {
	return &FileOutput{
		fs:   FsFactory(),
		path: DefaultPath(),
	}
}

// Path returns the current output directory.
func (o *FileOutput) Path() string {
	return o.path
}

// Name returns the current output name.
func (o *FileOutput) Name() string {
	return o.name
}

// SetOutputPath sets the output directory. The directory must already exist.
func (o *FileOutput) SetOutputPath(path string) (string, error) {
	ok, err := afero.DirExists(o.fs, path)
	if err != nil || !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}

	o.path = path

	return o.path, nil
}

// SetOutputName sets the name used by Save.
// A blank name is replaced with a generated unique name.
func (o *FileOutput) SetOutputName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = GenerateName()
	}

	o.name = name

	return o.name
}

// Save writes content, trimmed of surrounding whitespace, to the current output name.
// Lists are joined with newlines. The output directory is created if it is missing.
func (o *FileOutput) Save(content any) error {
	data, err := Prepare(content)
	if err != nil {
		return err
	}

	if o.name == "" {
		o.name = GenerateName()
	}

	if err := o.fs.MkdirAll(o.path, dirMode); err != nil {
		return errors.Join(ErrWrite, err)
	}

	p, err := o.fullPath(o.name)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(o.fs, p, []byte(data), fileMode); err != nil {
		return errors.Join(ErrWrite, err)
	}

	return nil
}

// Get returns the content of the named output file.
func (o *FileOutput) Get(name string) (string, error) {
	p, err := o.existing(name)
	if err != nil {
		return "", err
	}

	b, err := afero.ReadFile(o.fs, p)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", p, err)
	}

	return string(b), nil
}

// Delete removes the named output file.
func (o *FileOutput) Delete(name string) error {
	p, err := o.existing(name)
	if err != nil {
		return err
	}

	if err := o.fs.Remove(p); err != nil {
		return fmt.Errorf("removing %s: %w", p, err)
	}

	return nil
}

func (o *FileOutput) existing(name string) (string, error) {
	p, err := o.fullPath(name)
	if err != nil {
		return "", err
	}

	ok, err := afero.Exists(o.fs, p)
	if err != nil || !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, p)
	}

	return p, nil
}

func (o *FileOutput) fullPath(name string) (string, error) {
	p := filepath.Join(o.path, name)

	rel, err := filepath.Rel(o.path, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsidePath, name)
	}

	return p, nil
}

// Prepare converts content into the text that Save writes.
// Accepted types are string, []string and []any holding only strings.
func Prepare(content any) (string, error) {
	var s string

	switch v := content.(type) {
	case string:
		s = v
	case []string:
		s = strings.Join(v, "\n")
	case []any:
		lines := make([]string, len(v))

		for i, l := range v {
			ls, ok := l.(string)
			if !ok {
				return "", fmt.Errorf("%w: element %d is %T", ErrInvalidContent, i, l)
			}

			lines[i] = ls
		}

		s = strings.Join(lines, "\n")
	default:
		return "", fmt.Errorf("%w: %T passed", ErrInvalidContent, content)
	}

	return strings.TrimSpace(s), nil
}

// GenerateName returns a new unique output name.
func GenerateName() string {
	return generatedNamePrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
