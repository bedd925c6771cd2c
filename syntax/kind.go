// kind.go — the Kind enumeration shared by tokens and tree nodes.
//
// A single flat enum identifies both terminal (lexer-produced) categories
// and non-terminal (parser-produced) node kinds. Keeping tokens and nodes
// in one enumeration is what lets the tree builder (tree.go) treat the
// emission log homogeneously: it never needs to know whether a span came
// from a bump or an emit, only its Kind and byte range.
package syntax

// Kind identifies the syntactic category of a token or tree node.
type Kind uint16

const (
	// KindNothing is the zero value: "no override" in bump/emit call sites,
	// and the kind of a not-yet-classified span.
	KindNothing Kind = iota
	// KindTombstone marks an invisible span that was tentatively emitted
	// but turned out not to be needed. The tree builder skips it.
	KindTombstone
	// KindEndMarker is emitted exactly once by the lexer at end of input.
	KindEndMarker
	KindError

	// Trivia
	KindWhitespace
	KindNewlineWs
	KindComment

	// Literals & identifiers
	KindIdentifier
	KindVarIdentifier
	KindInteger
	KindFloat
	KindString
	KindChar
	KindBacktick

	// Keywords
	KindEnd
	KindElse
	KindElseif
	KindCatch
	KindFinally
	KindWhere
	KindFor
	KindIn
	KindIf
	KindDo

	// Punctuation
	KindLParen
	KindRParen
	KindLBracket
	KindRBracket
	KindLBrace
	KindRBrace
	KindColon
	KindComma
	KindSemicolon
	KindDot
	KindQuestion
	KindEquals
	KindTilde
	KindArrow
	KindFatArrow

	// Operators (binary)
	KindPlus
	KindMinus
	KindStar
	KindSlash
	KindPercent
	KindEqEq
	KindNotEq
	KindLess
	KindLessEq
	KindGreater
	KindGreaterEq
	KindAndAnd
	KindOrOr
	KindBang
	KindPlusEq
	KindMinusEq
	KindStarEq
	KindSlashEq

	// Node (non-terminal) kinds
	KindQuote
	KindBlock
	KindToplevel
	KindCall
	KindAssignment
	KindTernary
	KindWhereClause
	KindRange
	KindBinary
	KindUnary
	KindIndex
	KindDotAccess
	KindParenExpr
	KindTuple
	KindVect
	KindMatrix
	KindRow
	KindGenerator
	KindHash
	KindPair
	KindMacroCall
)

// name table — only used by String(), kept separate from the const block so
// adding a kind never silently desynchronizes the numbering above.
var kindNames = map[Kind]string{
	KindTombstone:     "TOMBSTONE",
	KindNothing:       "Nothing",
	KindEndMarker:     "EndMarker",
	KindError:         "error",
	KindWhitespace:    "Whitespace",
	KindNewlineWs:     "NewlineWs",
	KindComment:       "Comment",
	KindIdentifier:    "Identifier",
	KindVarIdentifier: "VarIdentifier",
	KindInteger:       "Integer",
	KindFloat:         "Float",
	KindString:        "String",
	KindChar:          "Char",
	KindBacktick:      "`",
	KindEnd:           "end",
	KindElse:          "else",
	KindElseif:        "elseif",
	KindCatch:         "catch",
	KindFinally:       "finally",
	KindWhere:         "where",
	KindFor:           "for",
	KindIn:            "in",
	KindIf:            "if",
	KindDo:            "do",
	KindLParen:        "(",
	KindRParen:        ")",
	KindLBracket:      "[",
	KindRBracket:      "]",
	KindLBrace:        "{",
	KindRBrace:        "}",
	KindColon:         ":",
	KindComma:         ",",
	KindSemicolon:     ";",
	KindDot:           ".",
	KindQuestion:      "?",
	KindEquals:        "=",
	KindTilde:         "~",
	KindArrow:         "->",
	KindFatArrow:      "=>",
	KindPlus:          "+",
	KindMinus:         "-",
	KindStar:          "*",
	KindSlash:         "/",
	KindPercent:       "%",
	KindEqEq:          "==",
	KindNotEq:         "!=",
	KindLess:          "<",
	KindLessEq:        "<=",
	KindGreater:       ">",
	KindGreaterEq:     ">=",
	KindAndAnd:        "&&",
	KindOrOr:          "||",
	KindBang:          "!",
	KindPlusEq:        "+=",
	KindMinusEq:       "-=",
	KindStarEq:        "*=",
	KindSlashEq:       "/=",
	KindQuote:         "quote",
	KindBlock:         "block",
	KindToplevel:      "toplevel",
	KindCall:          "call",
	KindAssignment:    "assignment",
	KindTernary:       "ternary",
	KindWhereClause:   "where_clause",
	KindRange:         "range",
	KindBinary:        "binary",
	KindUnary:         "unary",
	KindIndex:         "index",
	KindDotAccess:     "dot_access",
	KindParenExpr:     "paren",
	KindTuple:         "tuple",
	KindVect:          "vect",
	KindMatrix:        "matrix",
	KindRow:           "row",
	KindGenerator:     "generator",
	KindHash:          "hash",
	KindPair:          "pair",
	KindMacroCall:     "macrocall",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(?)"
}

// IsTrivia reports whether tokens of this kind are structurally irrelevant
// (whitespace, comments). It does not consult Flags — a non-trivia kind can
// still be flagged TRIVIA_FLAG when consumed as part of a trivia run (e.g.
// a consumed-but-unused punctuation token); callers that care about that
// distinction should check Flags.Trivia() instead.
func (k Kind) IsTrivia() bool {
	switch k {
	case KindWhitespace, KindNewlineWs, KindComment:
		return true
	default:
		return false
	}
}

// assignmentOps lists every token kind that parseAssignment treats as an
// assignment operator (the `~` tilde is handled separately: syntactically
// at the same precedence, but it never produces KindAssignment).
var assignmentOps = map[Kind]bool{
	KindEquals:   true,
	KindPlusEq:   true,
	KindMinusEq:  true,
	KindStarEq:   true,
	KindSlashEq:  true,
}
