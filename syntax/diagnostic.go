package syntax

// Diagnostic is a tagged range plus a human message, collected on the side
// during parsing. Diagnostics never interrupt parsing — see ParseStream's
// emit/bump error handling in stream.go.
type Diagnostic struct {
	FirstByte int
	LastByte  int
	Message   string
}

// Span returns the diagnostic's range as a TaggedRange with an unspecified
// Kind (diagnostics are not tree nodes; this is a convenience for callers
// that want to reuse range-formatting code written against TaggedRange).
func (d Diagnostic) Span() TaggedRange {
	return TaggedRange{FirstByte: d.FirstByte, LastByte: d.LastByte}
}
