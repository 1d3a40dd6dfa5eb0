// Package config holds the preprocessor's run configuration: include
// search path, output root, evaluator subprocess path, and the list of
// input files — the flag surface cmd/zeropp wires to cobra, grounded on
// the shape cmd/sai/cmd_run.go binds from its own flags.
package config

import (
	"fmt"
	"os"
)

// Config is the fully-resolved configuration for one preprocessor run.
type Config struct {
	IncludeDirs   []string
	OutputRoot    string
	EvaluatorPath string
	InputFiles    []string
}

// Validate checks the configuration is usable before the driver starts:
// at least one input file, a non-empty output root, and every input file
// present on disk. The output root itself is not checked.
func (c *Config) Validate() error {
	if len(c.InputFiles) == 0 {
		return fmt.Errorf("config: no input files given")
	}
	if c.OutputRoot == "" {
		return fmt.Errorf("config: output root is required")
	}
	for _, f := range c.InputFiles {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("config: input file %q: %w", f, err)
		}
	}
	return nil
}
