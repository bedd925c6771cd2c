// parser.go — the recursive-descent productions.
//
// Every production takes a ParseState by value (so a derived context never
// leaks back to the caller) and emits spans directly onto the underlying
// ParseStream; none of them return a GreenNode — the flat emission log is
// folded into a tree afterward by BuildTree. A production's only "return
// value" that matters to its caller is the spans it left behind and the
// stream position it advanced to.
package syntax

// parseStatements parses a sequence of statements separated by newlines or
// semicolons, stopping at end of input or, below the top level, at a
// closing token, and wraps them in a single node of nodeKind (Parse passes
// KindToplevel). This is the
// only production that treats bare newlines as separators; it sees them
// only when WhitespaceNewline is false, as it is in the top-level state,
// since with it true lookahead skips newlines like other whitespace.
func parseStatements(ps ParseState, nodeKind Kind) {
	start := ps.Position()
	for {
		ps.BumpTrivia()
		k := ps.Peek(1)
		if k == KindSemicolon || k == KindNewlineWs {
			ps.Bump(EmptyFlags)
			continue
		}
		if k == KindEndMarker {
			break
		}
		if ps.IsClosingToken(k) {
			if nodeKind != KindToplevel {
				break
			}
			// Nothing encloses the top level, so a stray closer is
			// consumed as an error to keep every byte in the tree.
			ps.BumpErr(ErrorFlag, "unexpected closing token")
			continue
		}
		parseStatement(ps)
	}
	ps.Emit(start, nodeKind, EmptyFlags)
}

// parseStatement parses exactly one top-level expression statement.
func parseStatement(ps ParseState) {
	parseEq(ps)
}

// parseEq parses assignment, right-associative: `a = b = c` groups as
// `a = (b = c)`. The tilde operator `~` sits at the same precedence but
// never produces KindAssignment — it's the one place at this level where
// the shape of the resulting node depends on which operator token was
// seen, not just on precedence.
func parseEq(ps ParseState) {
	start := ps.Position()
	parseTernary(ps)

	k := ps.Peek(1)
	if k == KindTilde {
		ps.Bump(EmptyFlags)
		parseEq(ps) // right-associative
		ps.Emit(start, KindCall, EmptyFlags)
		return
	}
	if assignmentOps[k] {
		ps.Bump(TriviaFlag)
		parseEq(ps) // right-associative
		ps.Emit(start, KindAssignment, EmptyFlags)
		return
	}
}

// parseTernary parses `cond ? a : b`. Inside the `? ... :` branch, range
// colons are disabled so that the colon closing the ternary is never
// mistaken for a range operator.
func parseTernary(ps ParseState) {
	start := ps.Position()
	parseWhereExpr(ps)
	if ps.Peek(1) != KindQuestion {
		return
	}
	ps.Bump(EmptyFlags)
	parseWhereExpr(ps.WithRangeColonEnabled(false))
	if ps.Peek(1) == KindColon {
		ps.Bump(EmptyFlags)
	} else {
		ps.EmitErr(start, KindTernary, ErrorFlag, "expected ':' in ternary expression")
		return
	}
	parseWhereExpr(ps)
	ps.Emit(start, KindTernary, EmptyFlags)
}

// parseWhereExpr parses a postfix `expr where clause` when WhereEnabled.
func parseWhereExpr(ps ParseState) {
	start := ps.Position()
	parseRange(ps)
	if !ps.WhereEnabled || ps.Peek(1) != KindWhere {
		return
	}
	ps.Bump(EmptyFlags)
	parseRange(ps)
	ps.Emit(start, KindWhereClause, EmptyFlags)
}

// parseRange parses `a:b` or `a:b:c` when RangeColonEnabled. Whitespace
// before the colon matters in SpaceSensitive contexts: there a colon
// preceded by whitespace does not form a range, and parseRange returns
// without consuming it, leaving the colon to the enclosing production.
func parseRange(ps ParseState) {
	start := ps.Position()
	parseLogicOr(ps)
	if !ps.RangeColonEnabled || ps.Peek(1) != KindColon {
		return
	}
	tok := ps.PeekToken(1)
	if ps.SpaceSensitive && tok.HadWhitespace {
		return
	}
	ps.Bump(EmptyFlags)
	parseLogicOr(ps)
	if ps.Peek(1) == KindColon {
		tok2 := ps.PeekToken(1)
		if !(ps.SpaceSensitive && tok2.HadWhitespace) {
			ps.Bump(EmptyFlags)
			parseLogicOr(ps)
		}
	}
	ps.Emit(start, KindRange, EmptyFlags)
}

func parseLogicOr(ps ParseState) { parseBinaryLevel(ps, logicOrOps, parseLogicAnd) }
func parseLogicAnd(ps ParseState) { parseBinaryLevel(ps, logicAndOps, parseCmp) }
func parseCmp(ps ParseState)      { parseBinaryLevel(ps, cmpOps, parseAdd) }
func parseAdd(ps ParseState)      { parseBinaryLevel(ps, addOps, parseMul) }
func parseMul(ps ParseState)      { parseBinaryLevel(ps, mulOps, parseUnary) }

var (
	logicOrOps  = map[Kind]bool{KindOrOr: true}
	logicAndOps = map[Kind]bool{KindAndAnd: true}
	cmpOps      = map[Kind]bool{KindEqEq: true, KindNotEq: true, KindLess: true, KindLessEq: true, KindGreater: true, KindGreaterEq: true}
	addOps      = map[Kind]bool{KindPlus: true, KindMinus: true}
	mulOps      = map[Kind]bool{KindStar: true, KindSlash: true, KindPercent: true}
)

func parseBinaryLevel(ps ParseState, ops map[Kind]bool, next func(ParseState)) {
	start := ps.Position()
	next(ps)
	for ops[ps.Peek(1)] {
		ps.Bump(EmptyFlags)
		next(ps)
		ps.Emit(start, KindBinary, EmptyFlags)
	}
}

// parseUnary handles prefix `-`/`!`. It does not consult SpaceSensitive,
// and neither does the binary ladder above it: inside brackets `[a -b]`
// parses as the single subtraction `a - b`, not as two elements.
func parseUnary(ps ParseState) {
	start := ps.Position()
	k := ps.Peek(1)
	if k == KindMinus || k == KindBang {
		ps.Bump(EmptyFlags)
		parseUnary(ps)
		ps.Emit(start, KindUnary, EmptyFlags)
		return
	}
	parsePostfix(ps)
}

// parsePostfix handles call arguments `f(...)`, indexing `a[...]`, and dot
// access `a.b`, left-associatively.
func parsePostfix(ps ParseState) {
	start := ps.Position()
	parseAtom(ps, true)
	for {
		switch ps.Peek(1) {
		case KindLParen:
			parseCat(ps, KindLParen, KindRParen, KindCall)
			ps.Emit(start, KindCall, EmptyFlags)
		case KindLBracket:
			tok := ps.PeekToken(1)
			if ps.SpaceSensitive && tok.HadWhitespace {
				return
			}
			parseCat(ps, KindLBracket, KindRBracket, KindIndex)
			ps.Emit(start, KindIndex, EmptyFlags)
		case KindDot:
			ps.Bump(EmptyFlags)
			if ps.Peek(1) == KindIdentifier {
				ps.Bump(EmptyFlags)
			} else {
				ps.BumpErr(ErrorFlag, "expected identifier after '.'")
			}
			ps.Emit(start, KindDotAccess, EmptyFlags)
		default:
			return
		}
	}
}

// parseAtom parses the smallest self-contained expression form: a literal,
// an identifier, a parenthesized/bracketed form, a quoted expression, or an
// implicit macro call introduced by a backtick. Anything else is reported
// and consumed as a single error leaf so the caller always makes progress.
//
// checked controls whether a bare Identifier atom is eligible for a later
// name-validity pass; an unchecked Identifier leaf carries UncheckedFlag.
// parsePostfix passes true, and a quoting colon forwards the value it was
// given to the quoted atom. A VarIdentifier is never checked regardless of
// this flag, since its capitalization already marks it as a pattern
// variable.
func parseAtom(ps ParseState, checked bool) {
	start := ps.Position()
	k := ps.Peek(1)

	switch {
	case k == KindColon:
		// Quoting colon: `:foo`, `:(expr)`, or a bare `:` when the
		// following token closes the enclosing form.
		next := ps.PeekToken(2)
		switch {
		case ps.IsClosingToken(next.Kind()):
			ps.Bump(EmptyFlags) // the ':' is the atom itself
		case next.HadWhitespace || next.HadNewline:
			ps.Bump(EmptyFlags)
			ps.EmitDiagnostic("whitespace not allowed after ':' used for quoting", true)
			ps.Emit(start, KindQuote, EmptyFlags)
		default:
			ps.Bump(EmptyFlags)
			parseAtom(ps.WithEndSymbol(false), checked)
			ps.Emit(start, KindQuote, EmptyFlags)
		}

	case k == KindEquals:
		// `=` can never begin an expression.
		ps.BumpErr(ErrorFlag, "unexpected `=`")

	case k == KindIdentifier:
		flags := EmptyFlags
		if !checked {
			flags = UncheckedFlag
		}
		ps.Bump(flags)

	case k == KindVarIdentifier:
		ps.Bump(UncheckedFlag)

	case k == KindInteger, k == KindFloat, k == KindString, k == KindChar:
		ps.Bump(EmptyFlags)

	case k == KindLParen:
		parseParen(ps)

	case k == KindLBracket:
		parseCat(ps, KindLBracket, KindRBracket, KindVect)

	case k == KindLBrace:
		parseCat(ps, KindLBrace, KindRBrace, KindHash)

	case k == KindBacktick:
		// `cmd args` is an implicit macro call: the macro name is never
		// written, so it's bumped as an invisible leaf, and the whole
		// backtick-delimited span (lexed as one token by scanBacktick)
		// becomes the string-content child.
		ps.BumpInvisible(KindIdentifier, UncheckedFlag)
		ps.BumpAs(EmptyFlags, KindString)
		ps.Emit(start, KindMacroCall, EmptyFlags)

	case ps.IsClosingToken(k):
		// A closing token where an atom was expected: emit an invisible
		// error leaf rather than consuming the closer, so the enclosing
		// production can still terminate correctly.
		ps.BumpInvisible(KindError, ErrorFlag)
		ps.EmitDiagnostic("expected an expression", false)

	default:
		ps.BumpErr(ErrorFlag, "invalid syntax: expected an expression")
	}
}

// parseParen parses a `(...)` form: empty `()` is a zero-element tuple, a
// single element with no trailing comma is just a parenthesized
// expression, and anything with a comma is a tuple. Whitespace stops being
// a statement separator inside, and newlines are ordinary whitespace.
func parseParen(ps ParseState) {
	start := ps.Position()
	ps.Bump(TriviaFlag) // '('
	inner := ps.withCatContext().WithWhitespaceNewline(true)

	if inner.Peek(1) == KindRParen {
		inner.Bump(TriviaFlag)
		ps.Emit(start, KindTuple, EmptyFlags)
		return
	}

	parseEq(inner)
	sawComma := false
	for inner.Peek(1) == KindComma {
		sawComma = true
		inner.Bump(TriviaFlag)
		if inner.Peek(1) == KindRParen {
			break
		}
		parseEq(inner)
	}

	if inner.Peek(1) == KindRParen {
		inner.Bump(TriviaFlag)
	} else {
		inner.BumpErr(ErrorFlag, "expected ')'")
	}

	if sawComma {
		ps.Emit(start, KindTuple, EmptyFlags)
	} else {
		ps.Emit(start, KindParenExpr, EmptyFlags)
	}
}

// parseCat parses a bracketed comma/semicolon/space-separated form: `[ ]`
// vectors, `[ ; ]` matrices (rows separated by `;`), `[ for ]` generators,
// and `{ }` hashes of `key: value` pairs. Which shape results is decided
// by what punctuation and keywords actually appear — the grammar does not
// commit to a shape until it sees the first separator or the `for`
// keyword.
func parseCat(ps ParseState, openKind, closeKind, defaultNodeKind Kind) {
	start := ps.Position()
	ps.Bump(TriviaFlag) // opening bracket/paren
	inner := ps.withCatContext()

	if inner.Peek(1) == closeKind {
		inner.Bump(TriviaFlag)
		ps.Emit(start, defaultNodeKind, EmptyFlags)
		return
	}

	nodeKind := defaultNodeKind
	if openKind == KindLBrace {
		parseHashBody(inner)
	} else {
		parseEq(inner)

		switch inner.Peek(1) {
		case KindFor:
			if inner.ForGenerator {
				nodeKind = KindGenerator
				parseGeneratorTail(inner)
			}
		case KindSemicolon:
			nodeKind = KindMatrix
			parseMatrixRows(inner)
		case KindComma:
			for inner.Peek(1) == KindComma {
				inner.Bump(TriviaFlag)
				if inner.Peek(1) == closeKind {
					break
				}
				parseEq(inner)
			}
		}
	}

	if inner.Peek(1) == closeKind {
		inner.Bump(TriviaFlag)
	} else {
		inner.BumpErr(ErrorFlag, "expected closing bracket")
	}
	ps.Emit(start, nodeKind, EmptyFlags)
}

// parseGeneratorTail parses the `for x in xs [if cond]` tail of a
// generator comprehension, after the yielded expression has already been
// parsed.
func parseGeneratorTail(ps ParseState) {
	start := ps.Position()
	ps.Bump(EmptyFlags) // 'for'
	if ps.Peek(1) == KindIdentifier {
		ps.Bump(EmptyFlags)
	} else {
		ps.BumpErr(ErrorFlag, "expected loop variable after 'for'")
	}
	if ps.Peek(1) == KindIn {
		ps.Bump(EmptyFlags)
	} else {
		ps.BumpErr(ErrorFlag, "expected 'in' in generator")
	}
	parseRange(ps)
	if ps.Peek(1) == KindIf {
		ps.Bump(EmptyFlags)
		parseRange(ps)
	}
	ps.Emit(start, KindGenerator, EmptyFlags)
}

// parseMatrixRows parses the remaining `; row` sequence of a matrix literal
// after its first row has already been parsed as a plain expression.
func parseMatrixRows(ps ParseState) {
	rowStart := ps.Position()
	for ps.Peek(1) == KindSemicolon {
		ps.Bump(TriviaFlag)
		if ps.Peek(1) == KindRBracket {
			break
		}
		parseEq(ps)
	}
	ps.Emit(rowStart, KindRow, EmptyFlags)
}

// parseHashBody parses `{}`-delimited `key: value, ...` pairs.
func parseHashBody(ps ParseState) {
	for {
		pairStart := ps.Position()
		parseEq(ps.WithRangeColonEnabled(false)) // key: its ':' ends it
		if ps.Peek(1) == KindColon {
			ps.Bump(EmptyFlags)
			parseEq(ps)
			ps.Emit(pairStart, KindPair, EmptyFlags)
		} else {
			ps.BumpErr(ErrorFlag, "expected ':' in hash entry")
		}
		if ps.Peek(1) != KindComma {
			return
		}
		ps.Bump(TriviaFlag)
		if ps.Peek(1) == KindRBrace {
			return
		}
	}
}
