// Package lexer tokenizes Glyph source into the raw token stream the
// syntax package's ParseStream consumes. It implements syntax.Lexer.
package lexer

import (
	"unicode/utf8"

	"github.com/glyph-lang/glyph/syntax"
)

var keywords = map[string]syntax.Kind{
	"end":     syntax.KindEnd,
	"else":    syntax.KindElse,
	"elseif":  syntax.KindElseif,
	"catch":   syntax.KindCatch,
	"finally": syntax.KindFinally,
	"where":   syntax.KindWhere,
	"for":     syntax.KindFor,
	"in":      syntax.KindIn,
	"if":      syntax.KindIf,
	"do":      syntax.KindDo,
}

// Lexer scans Glyph source byte-by-byte, producing syntax.RawToken values
// on demand. It never backtracks across a returned token boundary — each
// call to Next either advances past exactly one token or returns the end
// marker forever after.
type Lexer struct {
	src      string
	pos      int // 0-based byte offset of the next unread byte
	done     bool
	prevKind syntax.Kind
	hadPrev  bool
}

// New constructs a Lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src}
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) peekByte() (byte, bool) {
	if l.atEnd() {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) peekByteN(n int) (byte, bool) {
	i := l.pos + n
	if i >= len(l.src) {
		return 0, false
	}
	return l.src[i], true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

// canBeLeftOperand decides whether a preceding token lets `.` bind as
// DotAccess rather than as the start of a float literal: a bare `.5`
// after an operator or open-bracket is a number, but `x.5` would be
// absurd, so only tokens that can stand as the left side of a dotted
// access route `.` there instead.
func canBeLeftOperand(k syntax.Kind) bool {
	switch k {
	case syntax.KindIdentifier, syntax.KindVarIdentifier, syntax.KindInteger, syntax.KindFloat,
		syntax.KindString, syntax.KindChar, syntax.KindRParen, syntax.KindRBracket, syntax.KindRBrace:
		return true
	default:
		return false
	}
}

// Next returns the next raw token. Once KindEndMarker has been returned,
// every subsequent call returns it again.
func (l *Lexer) Next() syntax.RawToken {
	if l.done {
		return syntax.RawToken{Kind: syntax.KindEndMarker, StartByte: len(l.src), EndByte: len(l.src)}
	}

	start := l.pos

	if l.atEnd() {
		l.done = true
		return l.finish(syntax.KindEndMarker, start)
	}

	b := l.src[l.pos]

	switch {
	case b == ' ' || b == '\t' || b == '\r':
		for {
			c, ok := l.peekByte()
			if !ok || !(c == ' ' || c == '\t' || c == '\r') {
				break
			}
			l.pos++
		}
		return l.finish(syntax.KindWhitespace, start)

	case b == '\n':
		l.pos++
		return l.finish(syntax.KindNewlineWs, start)

	case b == '#':
		for {
			c, ok := l.peekByte()
			if !ok || c == '\n' {
				break
			}
			l.pos++
		}
		return l.finish(syntax.KindComment, start)

	case b == '"' || b == '\'':
		return l.scanString(start, b)

	case b == '`':
		return l.scanBacktick(start)

	case isDigit(b):
		return l.scanNumber(start)

	case b == '.':
		if c, ok := l.peekByteN(1); ok && isDigit(c) && !(l.hadPrev && canBeLeftOperand(l.prevKind)) {
			return l.scanNumber(start)
		}
		l.pos++
		return l.finishDotted(syntax.KindDot, start)

	case isAlpha(b):
		for {
			c, ok := l.peekByte()
			if !ok || !isAlphaNum(c) {
				break
			}
			l.pos++
		}
		word := l.src[start:l.pos]
		if kw, ok := keywords[word]; ok {
			return l.finish(kw, start)
		}
		if word[0] >= 'A' && word[0] <= 'Z' {
			return l.finish(syntax.KindVarIdentifier, start)
		}
		return l.finish(syntax.KindIdentifier, start)
	}

	return l.scanPunct(start, b)
}

func (l *Lexer) scanPunct(start int, b byte) syntax.RawToken {
	two := func(next byte, withNext, without syntax.Kind) syntax.RawToken {
		l.pos++
		if c, ok := l.peekByte(); ok && c == next {
			l.pos++
			return l.finish(withNext, start)
		}
		return l.finish(without, start)
	}

	switch b {
	case '(':
		l.pos++
		return l.finish(syntax.KindLParen, start)
	case ')':
		l.pos++
		return l.finish(syntax.KindRParen, start)
	case '[':
		l.pos++
		return l.finish(syntax.KindLBracket, start)
	case ']':
		l.pos++
		return l.finish(syntax.KindRBracket, start)
	case '{':
		l.pos++
		return l.finish(syntax.KindLBrace, start)
	case '}':
		l.pos++
		return l.finish(syntax.KindRBrace, start)
	case ':':
		l.pos++
		return l.finish(syntax.KindColon, start)
	case ',':
		l.pos++
		return l.finish(syntax.KindComma, start)
	case ';':
		l.pos++
		return l.finish(syntax.KindSemicolon, start)
	case '?':
		l.pos++
		return l.finish(syntax.KindQuestion, start)
	case '~':
		l.pos++
		return l.finish(syntax.KindTilde, start)
	case '+':
		return two('=', syntax.KindPlusEq, syntax.KindPlus)
	case '*':
		return two('=', syntax.KindStarEq, syntax.KindStar)
	case '/':
		return two('=', syntax.KindSlashEq, syntax.KindSlash)
	case '%':
		l.pos++
		return l.finish(syntax.KindPercent, start)
	case '!':
		return two('=', syntax.KindNotEq, syntax.KindBang)
	case '<':
		return two('=', syntax.KindLessEq, syntax.KindLess)
	case '>':
		return two('=', syntax.KindGreaterEq, syntax.KindGreater)
	case '&':
		l.pos++
		if c, ok := l.peekByte(); ok && c == '&' {
			l.pos++
			return l.finish(syntax.KindAndAnd, start)
		}
		return l.finish(syntax.KindError, start)
	case '|':
		l.pos++
		if c, ok := l.peekByte(); ok && c == '|' {
			l.pos++
			return l.finish(syntax.KindOrOr, start)
		}
		return l.finish(syntax.KindError, start)
	case '=':
		l.pos++
		if c, ok := l.peekByte(); ok && c == '=' {
			l.pos++
			return l.finish(syntax.KindEqEq, start)
		}
		if c, ok := l.peekByte(); ok && c == '>' {
			l.pos++
			return l.finish(syntax.KindFatArrow, start)
		}
		return l.finish(syntax.KindEquals, start)
	case '-':
		l.pos++
		if c, ok := l.peekByte(); ok && c == '>' {
			l.pos++
			return l.finish(syntax.KindArrow, start)
		}
		if c, ok := l.peekByte(); ok && c == '=' {
			l.pos++
			return l.finish(syntax.KindMinusEq, start)
		}
		return l.finish(syntax.KindMinus, start)
	}

	// Unknown byte: consume one rune's worth so forward progress is
	// guaranteed even over raw invalid input.
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	if size == 0 {
		size = 1
	}
	l.pos += size
	return l.finish(syntax.KindError, start)
}

func (l *Lexer) scanNumber(start int) syntax.RawToken {
	for {
		c, ok := l.peekByte()
		if !ok || !isDigit(c) {
			break
		}
		l.pos++
	}
	isFloat := false
	if c, ok := l.peekByte(); ok && c == '.' {
		if c2, ok2 := l.peekByteN(1); !ok2 || isDigit(c2) || !isAlpha(c2) {
			isFloat = true
			l.pos++
			for {
				c, ok := l.peekByte()
				if !ok || !isDigit(c) {
					break
				}
				l.pos++
			}
		}
	}
	if c, ok := l.peekByte(); ok && (c == 'e' || c == 'E') {
		save := l.pos
		l.pos++
		if c2, ok2 := l.peekByte(); ok2 && (c2 == '+' || c2 == '-') {
			l.pos++
		}
		if c3, ok3 := l.peekByte(); ok3 && isDigit(c3) {
			isFloat = true
			for {
				c, ok := l.peekByte()
				if !ok || !isDigit(c) {
					break
				}
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	if isFloat {
		return l.finish(syntax.KindFloat, start)
	}
	return l.finish(syntax.KindInteger, start)
}

func (l *Lexer) scanString(start int, delim byte) syntax.RawToken {
	return l.scanDelimited(start, delim, syntax.KindString)
}

// scanBacktick scans a command literal: raw text between a pair of
// backticks, emitted as a single token so the parser can bump its whole
// span as the string-content child of an implicit macro call.
func (l *Lexer) scanBacktick(start int) syntax.RawToken {
	return l.scanDelimited(start, '`', syntax.KindBacktick)
}

// scanDelimited consumes an opening delim byte, then raw text up to and
// including a matching closing delim byte (backslash-escaping the next
// byte along the way), returning it all as one token of kind.
func (l *Lexer) scanDelimited(start int, delim byte, kind syntax.Kind) syntax.RawToken {
	l.pos++ // opening delimiter
	for {
		c, ok := l.peekByte()
		if !ok {
			// Unterminated: the CORE has no lexer-error channel, so this
			// comes back as an ordinary KindError token; the parser's own
			// diagnostic machinery takes it from there.
			return l.finish(syntax.KindError, start)
		}
		if c == '\\' {
			l.pos++
			if _, ok := l.peekByte(); ok {
				l.pos++
			}
			continue
		}
		l.pos++
		if c == delim {
			return l.finish(kind, start)
		}
	}
}

func (l *Lexer) finish(kind syntax.Kind, start int) syntax.RawToken {
	tok := syntax.RawToken{Kind: kind, StartByte: start, EndByte: l.pos}
	if kind != syntax.KindWhitespace && kind != syntax.KindNewlineWs && kind != syntax.KindComment {
		l.prevKind = kind
		l.hadPrev = true
	}
	return tok
}

func (l *Lexer) finishDotted(kind syntax.Kind, start int) syntax.RawToken {
	tok := syntax.RawToken{Kind: kind, StartByte: start, EndByte: l.pos, Dotted: true}
	l.prevKind = kind
	l.hadPrev = true
	return tok
}

