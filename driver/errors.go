// Package driver implements the preprocessor's main loop (spec.md §5): it
// walks the source buffer through a stack of open code-fragment scopes,
// asking the built-in "std" rules and any registered Parser to consume
// the next construct, until the buffer is exhausted or no parser can
// make progress.
package driver

import "fmt"

// ErrorKind classifies a driver.Error, mirroring the three failure modes
// spec.md §7 calls out.
type ErrorKind int

const (
	// ErrZeroAdvance means the main loop could not advance: either every
	// parser declined to consume the next token, or a registered parser
	// reported a match while consuming zero bytes.
	ErrZeroAdvance ErrorKind = iota
	// ErrStructural means the scope structure is broken: a `}` that
	// closes nothing (e.g. at file scope), a namespace or class opened
	// where it may not nest, or a scope or enum still open at end of
	// input.
	ErrStructural
	// ErrParser means a registered parser itself reported a failure
	// after starting to consume a construct.
	ErrParser
)

func (k ErrorKind) String() string {
	switch k {
	case ErrZeroAdvance:
		return "zero-advance"
	case ErrStructural:
		return "structural"
	case ErrParser:
		return "parser"
	default:
		return "unknown"
	}
}

// Error is the error type the driver's main loop reports through a
// Reporter. Context is a short window (spec.md §7: "~30 characters") of
// the source text at the failure point, for human-readable diagnostics.
type Error struct {
	Kind    ErrorKind
	Line    int
	Column  int
	Context string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s (near %q)", e.Kind, e.Line, e.Column, e.Message, e.Context)
}

// Reporter receives every Error the driver produces. The default, used
// by cmd/zeropp, writes to stderr; tests typically collect into a slice.
type Reporter func(*Error)
