// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shellescape makes strings safe to place on a POSIX shell command line.
// Escaping is exposed as a Policy of two plain functions so that callers can
// substitute rules for a different shell without touching execution code.
package shellescape
