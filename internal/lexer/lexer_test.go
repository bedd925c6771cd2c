package lexer

import (
	"reflect"
	"testing"

	"github.com/glyph-lang/glyph/syntax"
)

// scanAll drains a Lexer up to and including the first EndMarker, failing
// if none arrives within 10,000 tokens.
func scanAll(t *testing.T, src string) []syntax.RawToken {
	t.Helper()
	l := New(src)
	var out []syntax.RawToken
	for {
		tok := l.Next()
		out = append(out, tok)
		if tok.Kind == syntax.KindEndMarker {
			break
		}
		if len(out) > 10_000 {
			t.Fatalf("lexer did not terminate for %q", src)
		}
	}
	return out
}

func kindsWithoutEnd(toks []syntax.RawToken) []syntax.Kind {
	out := make([]syntax.Kind, 0, len(toks))
	for _, tok := range toks {
		if tok.Kind == syntax.KindEndMarker {
			continue
		}
		out = append(out, tok.Kind)
	}
	return out
}

func wantKinds(t *testing.T, src string, want []syntax.Kind) []syntax.RawToken {
	t.Helper()
	got := scanAll(t, src)
	gotKinds := kindsWithoutEnd(got)
	if !reflect.DeepEqual(gotKinds, want) {
		t.Fatalf("\nsource: %q\nwant kinds: %v\ngot kinds:  %v", src, want, gotKinds)
	}
	return got
}

func TestLexer_Identifiers_And_Keywords(t *testing.T) {
	wantKinds(t, "foo end else elseif catch finally where for in if do",
		[]syntax.Kind{
			syntax.KindIdentifier, syntax.KindWhitespace,
			syntax.KindEnd, syntax.KindWhitespace,
			syntax.KindElse, syntax.KindWhitespace,
			syntax.KindElseif, syntax.KindWhitespace,
			syntax.KindCatch, syntax.KindWhitespace,
			syntax.KindFinally, syntax.KindWhitespace,
			syntax.KindWhere, syntax.KindWhitespace,
			syntax.KindFor, syntax.KindWhitespace,
			syntax.KindIn, syntax.KindWhitespace,
			syntax.KindIf, syntax.KindWhitespace,
			syntax.KindDo,
		})
}

func TestLexer_VarIdentifier_Is_Capitalized(t *testing.T) {
	wantKinds(t, "Foo bar", []syntax.Kind{
		syntax.KindVarIdentifier, syntax.KindWhitespace, syntax.KindIdentifier,
	})
}

func TestLexer_Numbers(t *testing.T) {
	toks := wantKinds(t, "1 1.5 1e3 1.5e-2 1.", []syntax.Kind{
		syntax.KindInteger, syntax.KindWhitespace,
		syntax.KindFloat, syntax.KindWhitespace,
		syntax.KindFloat, syntax.KindWhitespace,
		syntax.KindFloat, syntax.KindWhitespace,
		// a trailing '.' with no digits after it still commits to Float,
		// since nothing follows to make it DotAccess on a later operand.
		syntax.KindFloat,
	})
	if toks[0].EndByte-toks[0].StartByte != 1 {
		t.Fatalf("want single-byte integer token, got %v", toks[0])
	}
}

func TestLexer_DotAccess_Vs_FloatLiteral(t *testing.T) {
	// After an identifier, '.' followed by a digit is still DotAccess
	// territory grammatically, but the lexer's job is only to decide
	// whether '.' starts a float — it never does so right after an
	// operand, matching canBeLeftOperand.
	wantKinds(t, "x.5", []syntax.Kind{syntax.KindIdentifier, syntax.KindDot, syntax.KindInteger})
}

func TestLexer_Strings_And_Escapes(t *testing.T) {
	toks := wantKinds(t, `"a\"b"`, []syntax.Kind{syntax.KindString})
	if toks[0].EndByte != 6 {
		t.Fatalf("want string token spanning whole input, got %+v", toks[0])
	}
}

func TestLexer_Punctuation_And_TwoCharOperators(t *testing.T) {
	wantKinds(t, "( ) [ ] { } : , ; ? ~ == != <= >= && || => -> += -= *= /=",
		[]syntax.Kind{
			syntax.KindLParen, syntax.KindWhitespace,
			syntax.KindRParen, syntax.KindWhitespace,
			syntax.KindLBracket, syntax.KindWhitespace,
			syntax.KindRBracket, syntax.KindWhitespace,
			syntax.KindLBrace, syntax.KindWhitespace,
			syntax.KindRBrace, syntax.KindWhitespace,
			syntax.KindColon, syntax.KindWhitespace,
			syntax.KindComma, syntax.KindWhitespace,
			syntax.KindSemicolon, syntax.KindWhitespace,
			syntax.KindQuestion, syntax.KindWhitespace,
			syntax.KindTilde, syntax.KindWhitespace,
			syntax.KindEqEq, syntax.KindWhitespace,
			syntax.KindNotEq, syntax.KindWhitespace,
			syntax.KindLessEq, syntax.KindWhitespace,
			syntax.KindGreaterEq, syntax.KindWhitespace,
			syntax.KindAndAnd, syntax.KindWhitespace,
			syntax.KindOrOr, syntax.KindWhitespace,
			syntax.KindFatArrow, syntax.KindWhitespace,
			syntax.KindArrow, syntax.KindWhitespace,
			syntax.KindPlusEq, syntax.KindWhitespace,
			syntax.KindMinusEq, syntax.KindWhitespace,
			syntax.KindStarEq, syntax.KindWhitespace,
			syntax.KindSlashEq,
		})
}

func TestLexer_Comment_Runs_To_Newline(t *testing.T) {
	wantKinds(t, "a # trailing comment\nb", []syntax.Kind{
		syntax.KindIdentifier, syntax.KindWhitespace, syntax.KindComment,
		syntax.KindNewlineWs, syntax.KindIdentifier,
	})
}

func TestLexer_Backtick_Scans_Whole_Command_As_One_Token(t *testing.T) {
	toks := wantKinds(t, "`ls -la`", []syntax.Kind{syntax.KindBacktick})
	if toks[0].StartByte != 0 || toks[0].EndByte != len("`ls -la`") {
		t.Fatalf("want backtick token spanning whole input, got %+v", toks[0])
	}
}

func TestLexer_Backtick_Unterminated_Is_Error(t *testing.T) {
	wantKinds(t, "`ls -la", []syntax.Kind{syntax.KindError})
}

func TestLexer_EndMarker_Idempotent(t *testing.T) {
	l := New("x")
	first := l.Next()
	if first.Kind != syntax.KindIdentifier {
		t.Fatalf("want Identifier, got %v", first.Kind)
	}
	end1 := l.Next()
	end2 := l.Next()
	if end1.Kind != syntax.KindEndMarker || end2.Kind != syntax.KindEndMarker {
		t.Fatalf("want repeated EndMarker at end of input, got %v then %v", end1.Kind, end2.Kind)
	}
}

func TestLexer_Unknown_Byte_Is_Error_Kind_Not_Fatal(t *testing.T) {
	toks := scanAll(t, "a @ b")
	var sawError bool
	for _, tok := range toks {
		if tok.Kind == syntax.KindError {
			sawError = true
		}
	}
	if !sawError {
		t.Fatalf("want an error-kind token for the unrecognized byte, got %v", toks)
	}
}
