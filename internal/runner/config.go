// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

// Config is the declarative form of the Runner setters.
// Nil fields leave the current setting untouched.
type Config struct {
	OutputPath     *string `mapstructure:"outputPath"`
	SaveOutputName *string `mapstructure:"saveOutputName"`
	WaitForOutput  *bool   `mapstructure:"waitForOutput"`
	RawOutput      *bool   `mapstructure:"rawOutput"`
}

// Configure applies every set field of cfg.
// The output path is applied before the output name.
func (r *Runner) Configure(cfg Config) error {
	if cfg.OutputPath != nil {
		if _, err := r.SetOutputPath(*cfg.OutputPath); err != nil {
			return err
		}
	}

	if cfg.SaveOutputName != nil {
		r.SetSaveOutputName(*cfg.SaveOutputName)
	}

	if cfg.WaitForOutput != nil {
		r.SetWaitForOutput(*cfg.WaitForOutput)
	}

	if cfg.RawOutput != nil {
		r.SetRawOutput(*cfg.RawOutput)
	}

	return nil
}
