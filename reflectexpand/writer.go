// Package reflectexpand implements the static-reflection expansion
// component of spec.md §4.4: given a fully-parsed Class or Enumeration,
// it emits constexpr arrays of names as target-language code — public
// data member names, all data member names (public, protected, private),
// public base-class names, and enumerator names. It does not emit a
// Reflect<T> specialization, member pointers, member types, the object
// type, the scoped flag, or the underlying type.
package reflectexpand

import (
	"fmt"
	"strings"
)

// Writer accumulates generated output text, one line-oriented Fprintf
// call at a time. Grounded on the teacher's format.LineEncoder, which
// wraps a strings.Builder the same way; that package itself had no
// SPEC_FULL.md analog (it formatted Java source, not this grammar's
// reflection tuples) so its shape is adapted here rather than reused
// directly — see DESIGN.md.
type Writer struct {
	b strings.Builder
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Linef appends a formatted line, always terminated with "\n".
func (w *Writer) Linef(format string, args ...interface{}) {
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteByte('\n')
}

// Raw appends s verbatim, with no trailing newline added.
func (w *Writer) Raw(s string) {
	w.b.WriteString(s)
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.b.String()
}
