// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
)

// ErrGetConfigFile is returned when a definition cannot be fetched.
var ErrGetConfigFile = errors.New("failed to get config file")

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
)

// source is a queue definition location split into the go-getter source of
// the directory that holds it and the definition's file name.
type source struct {
	dir  string
	file string
	hcl  bool
}

// Fetch retrieves the definition at url using Hashicorp's go-getter and decodes it.
// The format is chosen from the file name, ignoring any ref query.
func Fetch(ctx context.Context, url string) (*Definition, error) {
	src, err := resolveSource(url)
	if err != nil {
		return nil, err
	}

	data, err := src.get(ctx)
	if err != nil {
		return nil, err
	}

	return src.decode(ctx, data)
}

// GetURL retrieves the content from the specified URL using Hashicorp's go-getter.
// The download goes to a temporary directory which is removed afterwards.
func GetURL(ctx context.Context, url string) ([]byte, error) {
	src, err := resolveSource(url)
	if err != nil {
		return nil, err
	}

	return src.get(ctx)
}

// resolveSource works out where the definition file lives.
// Local paths are split on the last path element. Remote sources must name
// the file after a "//" subdirectory separator, because go-getter only fetches
// remote directories. https://github.com/hashicorp/go-getter/issues/98
func resolveSource(url string) (source, error) {
	if url == "" {
		return source{}, fmt.Errorf("%w: no source given", ErrGetConfigFile)
	}

	wd, err := os.Getwd()
	if err != nil {
		return source{}, errors.Join(ErrGetConfigFile, err)
	}

	req := &getter.Request{Src: url, Pwd: wd}

	local, err := getter.Detect(req, &getter.FileGetter{})
	if err != nil {
		return source{}, errors.Join(ErrGetConfigFile, err)
	}

	if local {
		return newSource(filepath.Dir(url), filepath.Base(url)), nil
	}

	src, ok := splitRemote(url)
	if !ok {
		return source{}, fmt.Errorf("%w: invalid URL format: %s", ErrGetConfigFile, url)
	}

	return src, nil
}

// splitRemote moves the file name out of the subdirectory part of a remote
// getter URL, keeping any ref query on the directory source.
func splitRemote(url string) (source, bool) {
	rest, ref, hasRef := strings.Cut(url, goGetterRefSeparator)

	i := strings.LastIndex(rest, goGetterPathSeparator)
	if i < 0 || !strings.Contains(rest[:i], goGetterPathSeparator) {
		return source{}, false
	}

	dir, sub := rest[:i], rest[i+len(goGetterPathSeparator):]

	file := path.Base(sub)
	if file == "." || file == ".." || file == "/" || strings.HasSuffix(sub, "/") {
		return source{}, false
	}

	if subDir := path.Dir(sub); subDir != "." {
		dir += goGetterPathSeparator + subDir
	}

	if hasRef && ref != "" {
		dir += goGetterRefSeparator + ref
	}

	return newSource(dir, file), true
}

func newSource(dir, file string) source {
	return source{
		dir:  dir,
		file: file,
		hcl:  isHCL(file),
	}
}

// get downloads the source directory into a temporary directory and reads
// the definition file from it.
func (s source) get(ctx context.Context) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "cmdqueue-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	res, err := client.Get(ctx, &getter.Request{
		Src:     s.dir,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	})
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	b, err := os.ReadFile(filepath.Join(res.Dst, s.file))
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	return b, nil
}

func (s source) decode(ctx context.Context, data []byte) (*Definition, error) {
	if s.hcl {
		return decodeHCL(ctx, data, s.file)
	}

	return decodeYAML(ctx, data)
}
