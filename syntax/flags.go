package syntax

// Flags is an opaque per-span bit-set. Only a handful of bits are given
// meaning by the CORE; the rest are reserved for lexer-provided metadata
// that the parser threads through without interpreting (dotted, suffix).
type Flags uint8

// EmptyFlags is the default, meaning-free flag value.
const EmptyFlags Flags = 0

const (
	// TriviaFlag marks a span as structurally irrelevant: whitespace,
	// comments, or punctuation consumed but not retained as a real leaf.
	TriviaFlag Flags = 1 << iota

	// DottedFlag is set by the lexer on operator tokens written with a
	// leading '.' (the broadcast/elementwise spelling of an operator).
	DottedFlag

	// SuffixFlag is set by the lexer on identifier-like tokens that are
	// actually an operator name written with a trailing suffix (e.g. a
	// primed operator name).
	SuffixFlag

	// ErrorFlag marks a span emitted to carry a recovered syntax error;
	// it is always paired with a Diagnostic over the same range.
	ErrorFlag

	// UncheckedFlag marks an identifier leaf parsed with name-validity
	// checking turned off for that atom (parseAtom's checked parameter),
	// so a later name-validity pass knows to skip it. VarIdentifier leaves
	// always carry this flag, since they are never checked.
	UncheckedFlag
)

func (f Flags) Trivia() bool    { return f&TriviaFlag != 0 }
func (f Flags) Dotted() bool    { return f&DottedFlag != 0 }
func (f Flags) Suffix() bool    { return f&SuffixFlag != 0 }
func (f Flags) Error() bool     { return f&ErrorFlag != 0 }
func (f Flags) Unchecked() bool { return f&UncheckedFlag != 0 }

func (f Flags) With(other Flags) Flags { return f | other }
