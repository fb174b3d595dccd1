// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color decides whether ANSI colour output is enabled and applies it.
// NO_COLOR and FORCE_COLOR are honoured; otherwise colour follows whether
// stdout is a terminal, as reported by golang.org/x/term.
package color
