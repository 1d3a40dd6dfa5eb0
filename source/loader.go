package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileKind classifies an input path as a source or a header, per
// spec.md §6: "A file is classified as a source if its name does not
// contain a header extension marker (first occurrence of `.h`)".
type FileKind int

const (
	FileKindSource FileKind = iota
	FileKindHeader
)

// ClassifyFile implements the §6 classification rule.
func ClassifyFile(name string) FileKind {
	base := filepath.Base(name)
	if strings.Contains(base, ".h") {
		return FileKindHeader
	}
	return FileKindSource
}

// LoaderError reports that a required include file could not be found or
// opened, one of the fatal error kinds of spec.md §7.
type LoaderError struct {
	File    string
	Message string
}

func (e *LoaderError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// Loader locates input files via an ordered list of include directories
// and writes preprocessor output under a mirror directory tree rooted at
// a configured output path, creating parent directories on demand
// (spec.md §6 File layout).
//
// The ordered-directory fallback search is adapted from pom.Searcher's
// multi-base-URL lookup (stripped of HTTP); the mirror-tree output
// directory handling follows project.Module's OutDir conventions.
type Loader struct {
	IncludeDirs []string
	OutputRoot  string

	preambleWritten map[string]bool
}

// NewLoader creates a Loader for the given search path and output root.
func NewLoader(includeDirs []string, outputRoot string) *Loader {
	return &Loader{
		IncludeDirs:     includeDirs,
		OutputRoot:      outputRoot,
		preambleWritten: make(map[string]bool),
	}
}

// Resolve finds path on the include search path, trying each directory
// in order, and returns the resolved filesystem path. A bare relative
// path is also tried as-is first, so `#include "local.h"` resolves
// relative to the current working directory before falling back to the
// search path.
func (l *Loader) Resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	candidates := append([]string{"."}, l.IncludeDirs...)
	for _, dir := range candidates {
		full := filepath.Join(dir, path)
		if _, err := os.Stat(full); err == nil {
			return full, nil
		}
	}
	return "", &LoaderError{File: path, Message: "include file not found on search path"}
}

// Load resolves and reads path, returning its contents.
func (l *Loader) Load(path string) ([]byte, error) {
	resolved, err := l.Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &LoaderError{File: path, Message: err.Error()}
	}
	return data, nil
}

// OutputPath returns the mirrored output path for an input file relative
// to the output root, creating parent directories on demand.
func (l *Loader) OutputPath(inputPath string) (string, error) {
	rel := inputPath
	if filepath.IsAbs(rel) {
		rel = filepath.Base(rel)
	}
	full := filepath.Join(l.OutputRoot, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return full, nil
}

// NeedsPreamble reports whether outputPath has not yet received the
// forward-declaration/include preamble spec.md §4.4 and §6 describe, and
// marks it as having received it for subsequent calls.
func (l *Loader) NeedsPreamble(outputPath string) bool {
	if l.preambleWritten[outputPath] {
		return false
	}
	l.preambleWritten[outputPath] = true
	return true
}
