// state.go — ParseState: the immutable context-flag bag threaded through
// recursive descent.
//
// ParseState is deliberately a small by-value struct: every production that
// needs to change a flag constructs a derived copy via With* and passes it
// down, never mutating the caller's value. This is what keeps a failed
// production from needing to "restore" anything — there is nothing shared
// to restore.
package syntax

// LanguageVersion gates version-specific grammar. The CORE does not
// interpret its value; productions that need to may compare against it.
type LanguageVersion struct {
	Major, Minor int
}

// ParseState carries the six context flags that change how a production
// parses depending on where it's nested (inside a ternary, inside a
// bracketed form, and so on), plus a handle to the owning ParseStream and
// the target language version.
type ParseState struct {
	Stream *ParseStream
	Target LanguageVersion

	RangeColonEnabled bool // ':' forms ranges (off inside ternary ?:)
	SpaceSensitive    bool // leading whitespace before unary op starts a new expr
	ForGenerator      bool // 'for' terminates an argument list into a generator
	EndSymbol         bool // 'end' is a plain identifier, not a block terminator
	WhitespaceNewline bool // newlines are ordinary whitespace (inside ())
	WhereEnabled      bool // 'where' parses at higher-than-assignment precedence
}

// NewParseState constructs the initial top-level state: newlines are
// statement separators, 'end' is a keyword, nothing else is enabled yet.
func NewParseState(stream *ParseStream, target LanguageVersion) ParseState {
	return ParseState{
		Stream:            stream,
		Target:            target,
		EndSymbol:         false,
		WhitespaceNewline: false,
	}
}

// skipNewlines is the default lookahead/bump setting every ParseState
// accessor wrapper supplies: skip_newlines tracks whitespace_newline, since
// newlines stop being statement separators in the same contexts where
// they become ordinary whitespace.
func (ps ParseState) skipNewlines() bool { return ps.WhitespaceNewline }

// --- withers --------------------------------------------------------------

func (ps ParseState) WithRangeColonEnabled(v bool) ParseState { ps.RangeColonEnabled = v; return ps }
func (ps ParseState) WithSpaceSensitive(v bool) ParseState     { ps.SpaceSensitive = v; return ps }
func (ps ParseState) WithForGenerator(v bool) ParseState       { ps.ForGenerator = v; return ps }
func (ps ParseState) WithEndSymbol(v bool) ParseState          { ps.EndSymbol = v; return ps }
func (ps ParseState) WithWhitespaceNewline(v bool) ParseState  { ps.WhitespaceNewline = v; return ps }
func (ps ParseState) WithWhereEnabled(v bool) ParseState       { ps.WhereEnabled = v; return ps }

// withCatContext is the single derived state parseCat enters on every
// bracketed form: range colons and where-clauses become legal, whitespace
// becomes significant for operator parsing, newlines stop being statement
// separators, and 'for' can terminate an argument list into a generator.
func (ps ParseState) withCatContext() ParseState {
	return ps.
		WithRangeColonEnabled(true).
		WithSpaceSensitive(true).
		WithWhereEnabled(true).
		WithWhitespaceNewline(false).
		WithForGenerator(true)
}

// --- accessor wrappers: delegate to Stream, defaulting skip_newlines -------

func (ps ParseState) PeekToken(n int) SyntaxToken { return ps.Stream.PeekToken(n, ps.skipNewlines()) }
func (ps ParseState) Peek(n int) Kind             { return ps.Stream.Peek(n, ps.skipNewlines()) }

func (ps ParseState) Bump(flags Flags) SpanRef {
	return ps.Stream.Bump(flags, ps.skipNewlines(), KindNothing, "")
}
func (ps ParseState) BumpErr(flags Flags, errMsg string) SpanRef {
	return ps.Stream.Bump(flags, ps.skipNewlines(), KindNothing, errMsg)
}
func (ps ParseState) BumpAs(flags Flags, newKind Kind) SpanRef {
	return ps.Stream.Bump(flags, ps.skipNewlines(), newKind, "")
}
func (ps ParseState) BumpTrivia() { ps.Stream.BumpTrivia(ps.skipNewlines()) }

func (ps ParseState) BumpInvisible(kind Kind, flags Flags) SpanRef {
	return ps.Stream.BumpInvisible(kind, flags)
}

func (ps ParseState) Emit(start Mark, kind Kind, flags Flags) SpanRef {
	return ps.Stream.Emit(start, kind, flags, "")
}
func (ps ParseState) EmitErr(start Mark, kind Kind, flags Flags, errMsg string) SpanRef {
	return ps.Stream.Emit(start, kind, flags, errMsg)
}
func (ps ParseState) EmitDiagnostic(message string, whitespace bool) {
	ps.Stream.EmitDiagnostic(message, whitespace)
}
func (ps ParseState) Position() Mark                                { return ps.Stream.Position() }
func (ps ParseState) ResetToken(ref SpanRef, kind Kind, flags Flags) { ps.Stream.ResetToken(ref, kind, flags) }

// IsClosingToken is the canonical terminator predicate used by every
// production that parses a bounded expression list. 'end' only closes when
// EndSymbol is false (i.e. it is still a keyword in this context).
func (ps ParseState) IsClosingToken(k Kind) bool {
	switch k {
	case KindElse, KindElseif, KindCatch, KindFinally,
		KindComma, KindRParen, KindRBracket, KindRBrace, KindSemicolon, KindEndMarker:
		return true
	case KindEnd:
		return !ps.EndSymbol
	default:
		return false
	}
}
