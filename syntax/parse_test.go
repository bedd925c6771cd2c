package syntax

import (
	"testing"
)

// testLexer is a tiny hand-rolled Lexer used to drive CORE tests without
// depending on internal/lexer, keeping this package's tests self-contained.
type testLexer struct {
	toks []RawToken
	i    int
}

func (l *testLexer) Next() RawToken {
	if l.i >= len(l.toks) {
		return RawToken{Kind: KindEndMarker}
	}
	t := l.toks[l.i]
	l.i++
	return t
}

func tok(k Kind, start, end int) RawToken {
	return RawToken{Kind: k, StartByte: start, EndByte: end}
}

func mustParse(t *testing.T, toks []RawToken) Result {
	t.Helper()
	toks = append(toks, RawToken{Kind: KindEndMarker, StartByte: toks[len(toks)-1].EndByte, EndByte: toks[len(toks)-1].EndByte})
	result, err := Parse(&testLexer{toks: toks})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return result
}

func mustParseWith(t *testing.T, toks []RawToken, opts ...ParseOption) Result {
	t.Helper()
	toks = append(toks, RawToken{Kind: KindEndMarker, StartByte: toks[len(toks)-1].EndByte, EndByte: toks[len(toks)-1].EndByte})
	result, err := Parse(&testLexer{toks: toks}, opts...)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return result
}

func wantKind(t *testing.T, n *GreenNode, k Kind) {
	t.Helper()
	if n.Kind() != k {
		t.Fatalf("want kind %s, got %s", k, n.Kind())
	}
}

// 1. Bare colon as atom.
func TestBareColon(t *testing.T) {
	result := mustParse(t, []RawToken{tok(KindColon, 0, 1)})
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	// A lone ':' followed immediately by EndMarker (a closing token) is
	// emitted as the atom itself — no enclosing quote node.
	wantKind(t, result.Tree, KindToplevel)
	stmt := result.Tree.Children[0]
	wantKind(t, stmt, KindColon)
}

// 2. Quote of identifier.
func TestQuoteIdentifier(t *testing.T) {
	result := mustParse(t, []RawToken{
		tok(KindColon, 0, 1),
		tok(KindIdentifier, 1, 4),
	})
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	stmt := result.Tree.Children[0]
	wantKind(t, stmt, KindQuote)
	if len(stmt.Children) != 2 {
		t.Fatalf("want 2 children of quote, got %d", len(stmt.Children))
	}
	wantKind(t, stmt.Children[0], KindColon)
	wantKind(t, stmt.Children[1], KindIdentifier)
}

// 3. Whitespace after colon is an error.
func TestQuoteWhitespaceError(t *testing.T) {
	result := mustParse(t, []RawToken{
		tok(KindColon, 0, 1),
		tok(KindWhitespace, 1, 2),
		tok(KindIdentifier, 2, 5),
	})
	if len(result.Diagnostics) == 0 {
		t.Fatalf("expected a diagnostic for whitespace after quoting ':'")
	}
}

// 4. Unexpected equals.
func TestUnexpectedEquals(t *testing.T) {
	result := mustParse(t, []RawToken{tok(KindEquals, 0, 1)})
	if len(result.Diagnostics) != 1 {
		t.Fatalf("want exactly 1 diagnostic, got %d: %v", len(result.Diagnostics), result.Diagnostics)
	}
	stmt := result.Tree.Children[0]
	if !stmt.Flags().Error() {
		t.Fatalf("want error-flagged leaf, got flags %v", stmt.Flags())
	}
}

// 5. Assignment right-associates.
func TestAssignmentRightAssociative(t *testing.T) {
	result := mustParse(t, []RawToken{
		tok(KindIdentifier, 0, 1),
		tok(KindWhitespace, 1, 2),
		tok(KindEquals, 2, 3),
		tok(KindWhitespace, 3, 4),
		tok(KindIdentifier, 4, 5),
		tok(KindWhitespace, 5, 6),
		tok(KindEquals, 6, 7),
		tok(KindWhitespace, 7, 8),
		tok(KindIdentifier, 8, 9),
	})
	if len(result.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", result.Diagnostics)
	}
	outer := result.Tree.Children[0]
	wantKind(t, outer, KindAssignment)
	// Right-associative: the RHS child set itself contains a nested
	// assignment node, not a flat chain.
	var sawNestedAssignment bool
	for _, c := range outer.Children {
		if c.Kind() == KindAssignment {
			sawNestedAssignment = true
		}
	}
	if !sawNestedAssignment {
		t.Fatalf("want a nested assignment node for right-associativity")
	}
}

// 6. Tilde is a call, not an assignment.
func TestTildeIsCall(t *testing.T) {
	result := mustParse(t, []RawToken{
		tok(KindIdentifier, 0, 1),
		tok(KindWhitespace, 1, 2),
		tok(KindTilde, 2, 3),
		tok(KindWhitespace, 3, 4),
		tok(KindIdentifier, 4, 5),
	})
	stmt := result.Tree.Children[0]
	wantKind(t, stmt, KindCall)
}

// 7. Empty bracketed form.
func TestEmptyVect(t *testing.T) {
	result := mustParse(t, []RawToken{
		tok(KindLBracket, 0, 1),
		tok(KindRBracket, 1, 2),
	})
	stmt := result.Tree.Children[0]
	wantKind(t, stmt, KindVect)
	if len(stmt.Children) != 2 {
		t.Fatalf("want exactly the two bracket leaves as children, got %d", len(stmt.Children))
	}
	for _, c := range stmt.Children {
		if !c.Flags().Trivia() {
			t.Fatalf("want bracket leaf %s flagged trivia", c.Kind())
		}
	}
}

// 7b. Backtick command literal becomes an implicit macro call: an
// invisible macro-name leaf plus the scanned command text re-kinded as a
// string child.
func TestBacktickIsImplicitMacroCall(t *testing.T) {
	result := mustParse(t, []RawToken{tok(KindBacktick, 0, 8)})
	stmt := result.Tree.Children[0]
	wantKind(t, stmt, KindMacroCall)
	if len(stmt.Children) != 2 {
		t.Fatalf("want 2 children (name, content), got %d", len(stmt.Children))
	}
	name, content := stmt.Children[0], stmt.Children[1]
	wantKind(t, name, KindIdentifier)
	if name.Width() != 0 {
		t.Fatalf("want invisible (zero-width) macro name leaf, got width %d", name.Width())
	}
	if !name.Flags().Unchecked() {
		t.Fatalf("want invisible macro name flagged unchecked")
	}
	wantKind(t, content, KindString)
	if content.Width() != 8 {
		t.Fatalf("want content leaf spanning the whole backtick token, got width %d", content.Width())
	}
}

// 7c. VarIdentifier atoms are always unchecked.
func TestVarIdentifierIsAlwaysUnchecked(t *testing.T) {
	result := mustParse(t, []RawToken{tok(KindVarIdentifier, 0, 3)})
	stmt := result.Tree.Children[0]
	wantKind(t, stmt, KindVarIdentifier)
	if !stmt.Flags().Unchecked() {
		t.Fatalf("want VarIdentifier leaf flagged unchecked")
	}
}

// 8. Progress guard.
func TestProgressGuardFires(t *testing.T) {
	stream := NewParseStream(&testLexer{toks: []RawToken{tok(KindIdentifier, 0, 1)}})
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected ErrParserStuck panic")
		}
		if _, ok := r.(ErrParserStuck); !ok {
			t.Fatalf("expected ErrParserStuck, got %T: %v", r, r)
		}
	}()
	for i := 0; i < maxPeeksWithoutProgress+1; i++ {
		stream.Peek(1, false)
	}
}

// Round-trip: concatenating leaf ranges over the source reproduces it.
func TestLosslessCoverage(t *testing.T) {
	toks := []RawToken{
		tok(KindIdentifier, 0, 1),
		tok(KindWhitespace, 1, 2),
		tok(KindEquals, 2, 3),
		tok(KindWhitespace, 3, 4),
		tok(KindInteger, 4, 5),
	}
	src := "a = 1"
	result := mustParse(t, toks)
	var covered int
	for _, leaf := range Leaves(result.Tree, nil) {
		if leaf.Width() > 0 {
			covered += leaf.Width()
		}
	}
	if covered != len(src) {
		t.Fatalf("want %d bytes covered, got %d", len(src), covered)
	}
}

// WithTriviaFolded merges bracket leaves into siblings rather than keeping
// them as nodes of their own, while still covering every byte.
func TestWithTriviaFoldedMergesBracketLeaves(t *testing.T) {
	toks := []RawToken{
		tok(KindLBracket, 0, 1),
		tok(KindInteger, 1, 2),
		tok(KindRBracket, 2, 3),
	}
	result := mustParseWith(t, toks, WithTriviaFolded(true))
	stmt := result.Tree.Children[0]
	wantKind(t, stmt, KindVect)
	if len(stmt.Children) != 1 {
		t.Fatalf("want the brackets folded away leaving 1 child, got %d", len(stmt.Children))
	}
	wantKind(t, stmt.Children[0], KindInteger)
	if stmt.Children[0].FirstByte != 1 || stmt.Children[0].LastByte != 3 {
		t.Fatalf("want the integer leaf widened to cover both brackets, got [%d,%d]",
			stmt.Children[0].FirstByte, stmt.Children[0].LastByte)
	}
	var covered int
	for _, leaf := range Leaves(result.Tree, nil) {
		if leaf.Width() > 0 {
			covered += leaf.Width()
		}
	}
	if covered != 3 {
		t.Fatalf("want 3 bytes covered after folding, got %d", covered)
	}
}

// Context-flag orthogonality: deriving a ParseState never mutates the
// parent value (it's a plain Go struct passed by value, so this is really
// a compile-time property, but we assert the derived flag doesn't leak
// back as a regression guard).
func TestParseStateOrthogonality(t *testing.T) {
	base := NewParseState(NewParseStream(&testLexer{}), LanguageVersion{Major: 1})
	derived := base.WithEndSymbol(true)
	if base.EndSymbol {
		t.Fatalf("deriving a ParseState mutated the parent value")
	}
	if !derived.EndSymbol {
		t.Fatalf("wither did not apply to the derived value")
	}
}
