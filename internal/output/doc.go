// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package output persists captured command output to named files.
// The Output interface is what a runner talks to; FileOutput is the default
// implementation, writing into a single directory through an afero filesystem.
// Every save fully overwrites the target file. There is no locking.
package output
