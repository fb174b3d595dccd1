// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"fmt"
	"os"
	"runtime"
)

const (
	// GOOSWindows is the string constant for Windows OS from the runtime package.
	GOOSWindows          = "windows"
	commandSwitchWindows = "/C"         // Command switch for Windows cmd.exe
	commandSwitchUnix    = "-c"         // Command switch for Unix-like shells
	winSystem32          = "System32"   // System32 is the directory where cmd.exe is located on Windows.
	cmdExe               = "cmd.exe"    // cmdExe is the name of the command interpreter executable on Windows.
	binSh                = "/bin/sh"    // Default shell for Unix-like systems.
	winSystemRootEnv     = "SystemRoot" // Environment variable for Windows system root directory.
	discardUnix          = " >/dev/null"
	discardWindows       = " >NUL"
	errorRedirect        = " 2>&1"
)

// Shell describes the interpreter a command line is handed to.
type Shell struct {
	Path    string // Interpreter executable.
	Switch  string // Flag that makes the interpreter run the next argument as a command line.
	Discard string // Redirect appended to discard standard output.
}

// DefaultShell returns /bin/sh, or cmd.exe on Windows.
// $SHELL is not consulted.
func DefaultShell() Shell {
	if runtime.GOOS == GOOSWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return Shell{
			Path:    fmt.Sprintf(`%s\%s\%s`, systemRoot, winSystem32, cmdExe),
			Switch:  commandSwitchWindows,
			Discard: discardWindows,
		}
	}

	return Shell{
		Path:    binSh,
		Switch:  commandSwitchUnix,
		Discard: discardUnix,
	}
}
