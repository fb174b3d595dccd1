// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDir = "/root"

func newMemOutput(t *testing.T, files map[string]string) (*FileOutput, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testDir, dirMode))

	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(testDir, name), []byte(content), fileMode))
	}

	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	t.Cleanup(stubs.Reset)

	o := NewFile()
	_, err := o.SetOutputPath(testDir)
	require.NoError(t, err)

	return o, fs
}

func TestNewFile_Defaults(t *testing.T) {
	o := NewFile()
	assert.Equal(t, filepath.Join(os.TempDir(), defaultDirName), o.Path())
	assert.Empty(t, o.Name())
}

func TestSetOutputName(t *testing.T) {
	o := NewFile()

	t.Run("explicit name", func(t *testing.T) {
		assert.Equal(t, "fileName", o.SetOutputName("fileName"))
		assert.Equal(t, "fileName", o.Name())
	})

	t.Run("trimmed", func(t *testing.T) {
		assert.Equal(t, "fileName", o.SetOutputName("  fileName \n"))
	})

	t.Run("blank generates unique name", func(t *testing.T) {
		first := o.SetOutputName("  ")
		second := o.SetOutputName("")

		assert.True(t, strings.HasPrefix(first, generatedNamePrefix))
		assert.True(t, strings.HasPrefix(second, generatedNamePrefix))
		assert.NotEqual(t, first, second)
	})
}

func TestSetOutputPath(t *testing.T) {
	o, fs := newMemOutput(t, nil)

	t.Run("missing directory", func(t *testing.T) {
		_, err := o.SetOutputPath("path")
		require.ErrorIs(t, err, ErrInvalidPath)
		assert.Equal(t, testDir, o.Path(), "path must be unchanged after failure")
	})

	t.Run("file is not a directory", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "/afile", []byte("x"), fileMode))

		_, err := o.SetOutputPath("/afile")
		require.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("existing directory", func(t *testing.T) {
		require.NoError(t, fs.MkdirAll("/other", dirMode))

		p, err := o.SetOutputPath("/other")
		require.NoError(t, err)
		assert.Equal(t, "/other", p)
	})
}

func TestSave(t *testing.T) {
	o, fs := newMemOutput(t, map[string]string{"test.txt": ""})
	o.SetOutputName("test.txt")

	read := func() string {
		b, err := afero.ReadFile(fs, filepath.Join(testDir, "test.txt"))
		require.NoError(t, err)

		return string(b)
	}

	require.NoError(t, o.Save("test output"))
	assert.Equal(t, "test output", read())

	require.NoError(t, o.Save([]string{"test", "output"}))
	assert.Equal(t, "test\noutput", read())

	require.NoError(t, o.Save([]any{"a", "b"}))
	assert.Equal(t, "a\nb", read())

	require.NoError(t, o.Save("  padded\n\n"))
	assert.Equal(t, "padded", read(), "content is trimmed and fully overwrites")
}

func TestSave_InvalidContent(t *testing.T) {
	o, fs := newMemOutput(t, nil)
	o.SetOutputName("test")

	for _, c := range []any{12345, nil, map[string]string{}, []any{"a", 1}, true} {
		err := o.Save(c)
		require.ErrorIs(t, err, ErrInvalidContent, "content %#v", c)
	}

	ok, err := afero.Exists(fs, filepath.Join(testDir, "test"))
	require.NoError(t, err)
	assert.False(t, ok, "nothing must be written on invalid content")
}

func TestSave_CreatesDirectoryAndName(t *testing.T) {
	fs := afero.NewMemMapFs()
	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return fs
	})
	defer stubs.Reset()

	o := NewFile()
	require.NoError(t, o.Save("hello"))
	require.NotEmpty(t, o.Name())

	got, err := o.Get(o.Name())
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestSave_WriteError(t *testing.T) {
	stubs := gostub.Stub(&FsFactory, func() afero.Fs {
		return afero.NewReadOnlyFs(afero.NewMemMapFs())
	})
	defer stubs.Reset()

	o := NewFile()
	o.SetOutputName("x")
	require.ErrorIs(t, o.Save("data"), ErrWrite)
}

func TestGet(t *testing.T) {
	o, _ := newMemOutput(t, map[string]string{"test.txt": "test output"})

	got, err := o.Get("test.txt")
	require.NoError(t, err)
	assert.Equal(t, "test output", got)

	_, err = o.Get("invalidFile")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	o, fs := newMemOutput(t, map[string]string{"test.txt": "test output"})

	require.NoError(t, o.Delete("test.txt"))

	ok, err := afero.Exists(fs, filepath.Join(testDir, "test.txt"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.ErrorIs(t, o.Delete("test.txt"), ErrNotFound)
}

func TestNamesStayInOutputPath(t *testing.T) {
	o, fs := newMemOutput(t, map[string]string{"sub/inner.txt": "inner"})
	require.NoError(t, afero.WriteFile(fs, "/secret", []byte("secret"), fileMode))

	got, err := o.Get("sub/../sub/inner.txt")
	require.NoError(t, err)
	assert.Equal(t, "inner", got)

	for _, name := range []string{"../secret", "sub/../../secret", "", ".", ".."} {
		t.Run(name, func(t *testing.T) {
			_, err := o.Get(name)
			require.ErrorIs(t, err, ErrOutsidePath)
			require.ErrorIs(t, o.Delete(name), ErrOutsidePath)
		})
	}

	o.SetOutputName("../escaped.txt")
	require.ErrorIs(t, o.Save("data"), ErrOutsidePath)

	ok, err := afero.Exists(fs, "/escaped.txt")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = afero.Exists(fs, "/secret")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		name    string
		content any
		want    string
		wantErr error
	}{
		{name: "string", content: " a ", want: "a"},
		{name: "string slice", content: []string{"a", "b", ""}, want: "a\nb"},
		{name: "any slice", content: []any{"a", "b"}, want: "a\nb"},
		{name: "empty slice", content: []string{}, want: ""},
		{name: "integer", content: 12345, wantErr: ErrInvalidContent},
		{name: "mixed slice", content: []any{"a", 2}, wantErr: ErrInvalidContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Prepare(tt.content)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
