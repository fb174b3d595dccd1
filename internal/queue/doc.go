// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package queue runs an ordered list of commands, one at a time.
//
// Each entry is a map with a required "command" key and optional "arguments",
// "escape" and "options" keys. The options map is decoded into a runner.Config;
// unknown option names are an error. Every entry gets a fresh runner.Runner,
// and its "output" and "resultCode" are merged back into the entry.
//
// Execution stops at the first entry that cannot be configured or run. Entries
// before it keep their merged results; nothing is rolled back.
package queue
