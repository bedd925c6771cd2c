// parse.go — the package's single public entry point.
package syntax

// ParseOption configures a Parse call. Options exist so callers can set a
// target language version or opt into trivia folding without changing
// Parse's signature; the top-level node is always KindToplevel.
type ParseOption func(*parseConfig)

type parseConfig struct {
	target     LanguageVersion
	foldTrivia bool
}

// WithLanguageVersion targets a specific language version. Defaults to
// 1.0.
func WithLanguageVersion(major, minor int) ParseOption {
	return func(c *parseConfig) { c.target = LanguageVersion{Major: major, Minor: minor} }
}

// WithTriviaFolded controls whether trivia (whitespace, comments, and
// consumed structural punctuation) survives in Result.Tree as leaves of
// its own. Off by default, so every byte still maps to a distinct leaf —
// the shape render.Source relies on. When true, trivia is folded into
// neighboring leaves instead (see FoldTrivia), for callers that only want
// semantically meaningful nodes and don't need a byte-for-byte round trip.
func WithTriviaFolded(fold bool) ParseOption {
	return func(c *parseConfig) { c.foldTrivia = fold }
}

// Result is everything a caller gets back from a successful parse: the
// concrete syntax tree plus any diagnostics collected along the way.
// Diagnostics do not imply Tree is nil — parsing always produces a tree,
// even over malformed input.
type Result struct {
	Tree        *GreenNode
	Diagnostics []Diagnostic
}

// Parse runs the full pipeline: lex (via lexer), stream-buffer, recursive
// descent, tree-build. The only errors Parse itself can return are two
// fatal conditions — ErrParserStuck and ErrMultipleTopLevelNodes — both of
// which indicate a CORE bug rather than malformed input; ordinary syntax
// errors are reported as Diagnostics on a still-valid Result.
func Parse(lexer Lexer, opts ...ParseOption) (result Result, err error) {
	cfg := parseConfig{target: LanguageVersion{Major: 1, Minor: 0}}
	for _, o := range opts {
		o(&cfg)
	}

	stream := NewParseStream(lexer)
	state := NewParseState(stream, cfg.target)

	defer func() {
		if r := recover(); r != nil {
			if stuck, ok := r.(ErrParserStuck); ok {
				err = stuck
				return
			}
			panic(r)
		}
	}()

	parseStatements(state, KindToplevel)

	tree, buildErr := BuildTree(stream.Spans(), KindToplevel)
	if buildErr != nil {
		return Result{}, buildErr
	}
	if cfg.foldTrivia {
		tree = FoldTrivia(tree)
	}
	return Result{Tree: tree, Diagnostics: stream.Diagnostics()}, nil
}
