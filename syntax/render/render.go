// Package render turns a parsed GreenNode tree (plus the original source)
// back into text, and renders Diagnostics as caret-annotated snippets.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/glyph-lang/glyph/syntax"
)

// Source renders the tree's leaves back into a byte-for-byte copy of the
// original source. Because every byte is covered by exactly one leaf
// (trivia included), this is a straight concatenation of leaf text — no
// separators, no reformatting. Used to verify the round-trip invariant
// render(parse(S).tree) == S.
func Source(tree *syntax.GreenNode, src []byte) string {
	var b strings.Builder
	for _, leaf := range syntax.Leaves(tree, nil) {
		if leaf.Width() <= 0 {
			continue // invisible span: contributes no bytes
		}
		b.Write(src[leaf.FirstByte-1 : leaf.LastByte])
	}
	return b.String()
}

// clampToRuneBoundary rounds end down to the previous valid UTF-8 rune
// boundary in src, so a diagnostic range that lands mid-rune never slices
// a multi-byte code point in half.
func clampToRuneBoundary(src []byte, end int) int {
	for end > 0 && end < len(src) && !utf8.RuneStart(src[end]) {
		// The byte after end is a continuation byte, so end lands mid-rune;
		// walk back until end sits just before that rune's start byte.
		end--
	}
	return end
}

// widenIfInvisible symmetrically expands an empty or zero-width range by
// one code point on each side so it remains visible when rendered.
// first/last are 1-based inclusive, with last < first meaning an empty
// (zero-width) range positioned just before byte `first`.
func widenIfInvisible(src []byte, first, last int) (int, int) {
	if last >= first {
		return first, last
	}
	newFirst := first
	if first-1 > 0 {
		_, size := utf8.DecodeLastRune(src[:first-1])
		if size > 0 {
			newFirst = first - size
		}
	}
	newLast := last
	if first-1 < len(src) {
		_, size := utf8.DecodeRuneInString(string(src[first-1:]))
		if size > 0 {
			newLast = first - 1 + size
		}
	}
	if newLast < newFirst {
		newLast = newFirst
	}
	return newFirst, newLast
}

// NoColor disables the ANSI red prefix on rendered diagnostics, for
// terminals or CI logs that don't want escape codes. Set from cmd/glyph's
// --no-color persistent flag.
var NoColor = false

// Diagnostic renders one diagnostic as a red "Error:" line followed by the
// source line holding the range's first byte, with the range underlined by
// carets; a range that runs past that line is underlined only to its end.
func Diagnostic(d syntax.Diagnostic, src []byte) string {
	first, last := widenIfInvisible(src, d.FirstByte, d.LastByte)
	last = clampToRuneBoundary(src, last)
	if last < first {
		last = first
	}

	lineStart, lineEnd, lineNo := lineBounds(src, first)
	var b strings.Builder
	if NoColor {
		fmt.Fprintf(&b, "Error: %s\n", d.Message)
	} else {
		fmt.Fprintf(&b, "\x1b[31mError:\x1b[0m %s\n", d.Message)
	}
	fmt.Fprintf(&b, "%5d | %s\n", lineNo, src[lineStart:lineEnd])

	col := first - lineStart
	caretLen := last - first + 1
	if caretLen < 1 {
		caretLen = 1
	}
	if col+caretLen > lineEnd-lineStart {
		caretLen = (lineEnd - lineStart) - col
		if caretLen < 1 {
			caretLen = 1
		}
	}
	fmt.Fprintf(&b, "        %s%s\n", strings.Repeat(" ", col), strings.Repeat("^", caretLen))
	return b.String()
}

// lineBounds returns the [start,end) byte range of the source line
// containing the 1-based byte position pos, along with its 1-based line
// number.
func lineBounds(src []byte, pos int) (start, end, lineNo int) {
	lineNo = 1
	start = 0
	for i := 0; i < pos-1 && i < len(src); i++ {
		if src[i] == '\n' {
			lineNo++
			start = i + 1
		}
	}
	end = start
	for end < len(src) && src[end] != '\n' {
		end++
	}
	return start, end, lineNo
}
