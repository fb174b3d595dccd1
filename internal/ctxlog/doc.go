// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The level is shared by every logger in the package through LevelVar and is
// read at start-up from CMDQUEUE_LOG_LEVEL, or from <EXECUTABLE>_LOG_LEVEL when
// the binary has been renamed. Accepted values are DEBUG, INFO, WARN and ERROR;
// anything else means WARN.
//
// The default is a pretty console handler to format the log messages in a human-readable way.
package ctxlog
