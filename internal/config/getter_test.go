// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetURL(t *testing.T) {
	testCases := []struct {
		name      string
		url       string
		wantErr   error
		wantBytes []byte
	}{
		{
			name:    "empty url returns error",
			url:     "",
			wantErr: ErrGetConfigFile,
		},
		{
			name:    "missing local file",
			url:     "./testdata/missing.yaml",
			wantErr: ErrGetConfigFile,
		},
		{
			name:      "local file",
			url:       "./testdata/queue.yaml",
			wantBytes: []byte("name: listing\n"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := GetURL(context.Background(), tc.url)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, b)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantBytes, b[:len(tc.wantBytes)])
		})
	}
}

func TestFetch(t *testing.T) {
	for _, url := range []string{"./testdata/queue.yaml", "./testdata/queue.hcl"} {
		t.Run(url, func(t *testing.T) {
			def, err := Fetch(context.Background(), url)
			require.NoError(t, err)
			assert.Equal(t, "listing", def.Name)
			require.Len(t, def.Commands, 2)

			q, err := def.Queue()
			require.NoError(t, err)
			assert.Equal(t, 2, q.Len())
		})
	}
}

func TestResolveSource(t *testing.T) {
	tests := []struct {
		url     string
		want    source
		wantErr bool
	}{
		{
			url:  "./testdata/queue.hcl",
			want: source{dir: "testdata", file: "queue.hcl", hcl: true},
		},
		{
			url:  "git::https://github.com/org/repo.git//queues/build.yaml",
			want: source{dir: "git::https://github.com/org/repo.git//queues", file: "build.yaml"},
		},
		{
			url:  "git::https://github.com/org/repo.git//build.HCL?ref=v1.0.0",
			want: source{dir: "git::https://github.com/org/repo.git?ref=v1.0.0", file: "build.HCL", hcl: true},
		},
		{
			url:  "git::https://github.com/org/repo.git//queues/build.hcl?ref=main",
			want: source{dir: "git::https://github.com/org/repo.git//queues?ref=main", file: "build.hcl", hcl: true},
		},
		{url: "", wantErr: true},
		{url: "https://example.com/build.yaml", wantErr: true},
		{url: "git::https://github.com/org/repo.git//", wantErr: true},
		{url: "git::https://github.com/org/repo.git//queues/", wantErr: true},
		{url: "git::https://github.com/org/repo.git//?ref=main", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := resolveSource(tt.url)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrGetConfigFile)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
