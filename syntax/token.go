package syntax

// RawToken is what the external lexer hands the CORE: a token kind plus
// byte offsets, in the lexer's own 0-based half-open convention, and the
// two per-token bits the lexer alone can compute cheaply (Dotted, Suffix).
//
// The CORE never constructs a RawToken itself; it only reads the ones the
// lexer produces. See internal/lexer for the concrete implementation that
// satisfies this contract for Glyph source.
type RawToken struct {
	Kind      Kind
	StartByte int // 0-based, inclusive
	EndByte   int // 0-based, exclusive
	Dotted    bool
	Suffix    bool
}

// flags converts the lexer's two booleans into CORE Flags, leaving
// Trivia/Error unset (those are decided by the stream, not the lexer).
func (r RawToken) flags() Flags {
	var f Flags
	if r.Dotted {
		f |= DottedFlag
	}
	if r.Suffix {
		f |= SuffixFlag
	}
	return f
}

// SyntaxToken augments a RawToken with aggregated trivia context: whether
// any whitespace, and whether any newline, appeared in the run of trivia
// immediately preceding it. These bits are computed exactly once, when the
// token is first drawn into ParseStream's lookahead buffer (see
// bufferLookaheadTokens in stream.go) — never recomputed on repeat peeks.
type SyntaxToken struct {
	Raw         RawToken
	HadWhitespace bool
	HadNewline    bool
}

func (t SyntaxToken) Kind() Kind { return t.Raw.Kind }
