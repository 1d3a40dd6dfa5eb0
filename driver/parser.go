package driver

// Parser is a pluggable rule the driver's main loop consults whenever
// the built-in "std" rules decline to consume the next construct. Every
// Parser has a compile-time-unique ID, mirroring the original
// Preprocessor<Source, Functions...> template's static_assert over its
// parameter pack.
type Parser interface {
	ID() int
	// Parse attempts to consume the next construct at the driver's
	// current cursor position. On a match it reports how many bytes of
	// source it consumed and the text to emit in their place: verbatim
	// pass-through by default, or generated/rewritten text for a
	// component like meta-class expansion. This mirrors the original
	// std_parser::parse contract, which returns the span it consumed as
	// its own emitted text (_examples/original_source/include/std_parser.h:93-96),
	// and spec.md §4.2's `parse(source) -> Option<(end_iter,
	// emitted_text)>`. If ok is false, the driver moves on to the next
	// registered parser.
	Parse(d *Driver) (consumed int, emitted string, ok bool, err error)
}

// Preprocessor is the optional second phase spec.md §5 describes: a
// pass over the fully-parsed fragment tree before any output is
// written, e.g. to expand meta-classes before emitting target code.
type Preprocessor interface {
	Preprocess(d *Driver) (bool, error)
	FinishPreprocess(d *Driver) error
}

// StdParserID is reserved for the driver's own built-in grammar rules;
// no registered Parser may claim it.
const StdParserID = 0
