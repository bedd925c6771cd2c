// stream.go — ParseStream: the lookahead buffer and tree-sink.
//
// ParseStream sits between the external lexer and the parser productions.
// It buffers raw tokens into SyntaxTokens (attaching trivia context once,
// see token.go), answers peek/bump requests, and appends TaggedRanges to a
// flat emission log (`spans`) that the tree builder later folds into a
// GreenNode tree (tree.go). It also owns the side-channel diagnostics list.
//
// A single ParseStream is created per source input, driven by exactly one
// parser, and dropped once the tree is built — there is no concurrent
// access and no suspension.
package syntax

import "fmt"

// Lexer is the external collaborator the CORE consumes. It must emit
// KindEndMarker exactly once, at end of input, and never be called again
// afterward. Any lexical failure is delivered as a KindError token rather
// than a Go error — the CORE does not model lexer failure.
type Lexer interface {
	Next() RawToken
}

// maxPeeksWithoutProgress is the progress guard: if a production peeks
// this many times without an intervening bump, parsing is stuck and
// aborts. This is a correctness contract, not a tuning knob.
const maxPeeksWithoutProgress = 100_000

// ErrParserStuck is the panic value raised when the progress guard trips.
// Parse recovers it and turns it into a returned error.
type ErrParserStuck struct{}

func (ErrParserStuck) Error() string {
	return fmt.Sprintf("parser stuck: peeked more than %d times without progress", maxPeeksWithoutProgress)
}

// Mark is a byte position captured by Position, used as the start of an
// interior span passed to Emit. Marks remain valid across arbitrary later
// emissions — they are plain integers, not references into any buffer.
type Mark int

// SpanRef is a stable reference to an already-appended span, returned by
// Bump/BumpInvisible/Emit, and later usable with ResetToken to rewrite that
// span's kind/flags in place once more context is available.
type SpanRef int

type ParseStream struct {
	lexer Lexer

	// lookahead holds SyntaxTokens not yet consumed, oldest first. Tokens
	// are appended by bufferLookaheadTokens and removed in bulk by Bump.
	lookahead []SyntaxToken
	sawEnd    bool

	spans       []TaggedRange
	diagnostics []Diagnostic

	nextByte  int // 1-based; 1 past the last byte of the most recent non-invisible span
	peekCount int
}

// NewParseStream constructs a stream over the given lexer. Byte accounting
// starts at 1 (the CORE's 1-based inclusive convention).
func NewParseStream(lexer Lexer) *ParseStream {
	return &ParseStream{lexer: lexer, nextByte: 1}
}

func (s *ParseStream) Diagnostics() []Diagnostic { return s.diagnostics }
func (s *ParseStream) Spans() []TaggedRange      { return s.spans }

// isSkippable reports whether a token kind is invisible to lookaheadIndex:
// Whitespace and Comment always are; NewlineWs only when skipNewlines.
func isSkippable(k Kind, skipNewlines bool) bool {
	switch k {
	case KindWhitespace, KindComment:
		return true
	case KindNewlineWs:
		return skipNewlines
	default:
		return false
	}
}

// bufferLookaheadTokens draws raw tokens from the lexer until a non-trivia
// token is obtained, appending the whole run (trivia tokens, then the
// terminator) to lookahead. Every appended token's HadWhitespace/HadNewline
// reflects the trivia seen so far in this run, computed once here (§4.1) —
// never recomputed on peek.
func (s *ParseStream) bufferLookaheadTokens() {
	if s.sawEnd {
		return
	}
	var hadWS, hadNL bool
	for {
		raw := s.lexer.Next()
		tok := SyntaxToken{Raw: raw, HadWhitespace: hadWS, HadNewline: hadNL}
		s.lookahead = append(s.lookahead, tok)
		if raw.Kind == KindEndMarker {
			s.sawEnd = true
			return
		}
		switch raw.Kind {
		case KindWhitespace:
			hadWS = true
		case KindNewlineWs:
			hadWS = true
			hadNL = true
		case KindComment:
			// a comment carries no whitespace bit of its own, but does not
			// reset the aggregate either.
		default:
			return // non-trivia terminator, run complete
		}
	}
}

// ensureBuffered guarantees lookahead has at least idx+1 entries (0-based),
// pulling more tokens from the lexer as needed. It is a no-op once
// KindEndMarker has been buffered, since nothing follows it.
func (s *ParseStream) ensureBuffered(idx int) {
	for len(s.lookahead) <= idx && !s.sawEnd {
		s.bufferLookaheadTokens()
	}
}

// lookaheadIndex returns the 0-based index into lookahead of the n-th
// (1-based) significant token from the current position, where
// significant means "not skippable" per isSkippable. It buffers lazily.
func (s *ParseStream) lookaheadIndex(n int, skipNewlines bool) int {
	idx := 0
	seen := 0
	for {
		s.ensureBuffered(idx)
		if idx >= len(s.lookahead) {
			// Exhausted: every remaining lexer call yields EndMarker.
			return len(s.lookahead) - 1
		}
		if !isSkippable(s.lookahead[idx].Kind(), skipNewlines) {
			seen++
			if seen == n {
				return idx
			}
		}
		idx++
	}
}

func (s *ParseStream) checkProgress() {
	s.peekCount++
	if s.peekCount > maxPeeksWithoutProgress {
		panic(ErrParserStuck{})
	}
}

// PeekToken returns the SyntaxToken at the n-th significant lookahead
// position without consuming anything.
func (s *ParseStream) PeekToken(n int, skipNewlines bool) SyntaxToken {
	idx := s.lookaheadIndex(n, skipNewlines)
	s.checkProgress()
	if idx < 0 || idx >= len(s.lookahead) {
		return SyntaxToken{Raw: RawToken{Kind: KindEndMarker}}
	}
	return s.lookahead[idx]
}

// Peek returns just the kind at the n-th significant lookahead position.
func (s *ParseStream) Peek(n int, skipNewlines bool) Kind {
	return s.PeekToken(n, skipNewlines).Kind()
}

// Position returns next_byte: the CORE's notion of "here", usable as the
// start Mark of a later Emit.
func (s *ParseStream) Position() Mark { return Mark(s.nextByte) }

// appendSpan appends a TaggedRange and returns a SpanRef to it.
func (s *ParseStream) appendSpan(r TaggedRange) SpanRef {
	s.spans = append(s.spans, r)
	return SpanRef(len(s.spans) - 1)
}

// Bump consumes the lookahead tokens up to and including the next
// significant token, emitting one TaggedRange per consumed token (trivia
// tokens keep their original kind and get TriviaFlag; the significant
// token gets `flags` and, if newKind != KindNothing, `newKind` in place of
// its lexed kind). If errMsg is non-empty, an additional error span with
// TriviaFlag is appended covering the whole bump, plus a matching
// Diagnostic. Returns a SpanRef to the significant token's span.
func (s *ParseStream) Bump(flags Flags, skipNewlines bool, newKind Kind, errMsg string) SpanRef {
	idx := s.lookaheadIndex(1, skipNewlines)
	s.ensureBuffered(idx)
	if idx >= len(s.lookahead) {
		idx = len(s.lookahead) - 1
	}

	startByte := s.nextByte
	var sig SpanRef
	consumed := 0
	for i := 0; i <= idx && i < len(s.lookahead); i++ {
		tok := s.lookahead[i]
		n := tok.Raw.EndByte - tok.Raw.StartByte
		first := s.nextByte
		last := first + n - 1
		isLast := i == idx || tok.Kind() == KindEndMarker

		var head SyntaxHead
		if isLast {
			k := tok.Kind()
			if newKind != KindNothing {
				k = newKind
			}
			head = SyntaxHead{Kind: k, Flags: flags}
		} else {
			head = SyntaxHead{Kind: tok.Kind(), Flags: TriviaFlag | tok.Raw.flags()}
		}
		ref := s.appendSpan(TaggedRange{Head: head, FirstByte: first, LastByte: last})
		if isLast {
			sig = ref
		}
		if n > 0 {
			s.nextByte = last + 1
		}
		consumed++
		// EndMarker stops consumption even if it appears earlier than idx.
		if tok.Kind() == KindEndMarker {
			idx = i
			break
		}
	}
	s.lookahead = s.lookahead[consumed:]
	s.peekCount = 0

	if errMsg != "" {
		s.appendSpan(TaggedRange{
			Head:      SyntaxHead{Kind: KindError, Flags: TriviaFlag | ErrorFlag},
			FirstByte: startByte,
			LastByte:  s.nextByte - 1,
		})
		s.diagnostics = append(s.diagnostics, Diagnostic{
			FirstByte: startByte,
			LastByte:  s.nextByte - 1,
			Message:   errMsg,
		})
	}
	return sig
}

// BumpTrivia consumes only the leading trivia before the next significant
// token, without consuming that token.
func (s *ParseStream) BumpTrivia(skipNewlines bool) {
	idx := s.lookaheadIndex(1, skipNewlines)
	s.ensureBuffered(idx)
	for i := 0; i < idx && len(s.lookahead) > 0; i++ {
		tok := s.lookahead[0]
		n := tok.Raw.EndByte - tok.Raw.StartByte
		first := s.nextByte
		last := first + n - 1
		s.appendSpan(TaggedRange{
			Head:      SyntaxHead{Kind: tok.Kind(), Flags: TriviaFlag | tok.Raw.flags()},
			FirstByte: first,
			LastByte:  last,
		})
		if n > 0 {
			s.nextByte = last + 1
		}
		s.lookahead = s.lookahead[1:]
	}
	s.peekCount = 0
}

// BumpInvisible emits a zero-width span of the given kind at the current
// position, without consuming any lookahead. Used for implicit tokens
// (e.g. an implicit multiplication or macro-name leaf).
func (s *ParseStream) BumpInvisible(kind Kind, flags Flags) SpanRef {
	pos := s.nextByte
	return s.appendSpan(TaggedRange{
		Head:      SyntaxHead{Kind: kind, Flags: flags},
		FirstByte: pos,
		LastByte:  pos - 1,
	})
}

// Emit appends an interior-node span [start, next_byte-1] with the given
// head. If errMsg is non-empty, a diagnostic over the same range is
// appended. Interior spans may enclose previously emitted spans — the
// tree builder (tree.go) is what disambiguates the nesting.
func (s *ParseStream) Emit(start Mark, kind Kind, flags Flags, errMsg string) SpanRef {
	first := int(start)
	last := s.nextByte - 1
	ref := s.appendSpan(TaggedRange{
		Head:      SyntaxHead{Kind: kind, Flags: flags},
		FirstByte: first,
		LastByte:  last,
	})
	if errMsg != "" {
		s.diagnostics = append(s.diagnostics, Diagnostic{FirstByte: first, LastByte: last, Message: errMsg})
	}
	return ref
}

// EmitDiagnostic attaches a diagnostic to the next significant token's
// range, or — when whitespace is true — to the range of the trivia run
// immediately preceding it.
func (s *ParseStream) EmitDiagnostic(message string, whitespace bool) {
	if whitespace {
		idx := s.lookaheadIndex(1, false)
		s.ensureBuffered(idx)
		if idx == 0 {
			// No trivia precedes the next token: point at its start, empty.
			s.diagnostics = append(s.diagnostics, Diagnostic{FirstByte: s.nextByte, LastByte: s.nextByte - 1, Message: message})
			return
		}
		first := s.nextByte
		last := first
		b := first
		for i := 0; i < idx && i < len(s.lookahead); i++ {
			n := s.lookahead[i].Raw.EndByte - s.lookahead[i].Raw.StartByte
			last = b + n - 1
			b += n
		}
		s.diagnostics = append(s.diagnostics, Diagnostic{FirstByte: first, LastByte: last, Message: message})
		return
	}
	tok := s.PeekToken(1, false)
	first := s.nextByte
	for i, idx := 0, s.lookaheadIndex(1, false); i < idx && i < len(s.lookahead); i++ {
		first += s.lookahead[i].Raw.EndByte - s.lookahead[i].Raw.StartByte
	}
	n := tok.Raw.EndByte - tok.Raw.StartByte
	s.diagnostics = append(s.diagnostics, Diagnostic{FirstByte: first, LastByte: first + n - 1, Message: message})
}

// ResetToken rewrites an already-emitted span's kind and/or flags in
// place. Marks (SpanRefs) into the spans buffer remain valid for the
// lifetime of the stream; this is the only in-place mutation the CORE
// performs, and it is not a concurrency hazard because a single owning
// parser is the only writer.
func (s *ParseStream) ResetToken(ref SpanRef, kind Kind, flags Flags) {
	s.spans[ref].Head = SyntaxHead{Kind: kind, Flags: flags}
}
