// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import "github.com/spf13/afero"

// FsFactory returns the filesystem used by new FileOutput values.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}
