// Package bracecheck offers an optional lexical cross-check: Cairo's
// surface syntax (braces, parens, attributes, mod/fn keywords) is close
// enough to Rust's that feeding a file through tree-sitter's bundled Rust
// grammar and looking for ERROR nodes catches gross structural damage —
// an unterminated string, a stray brace — our hand-rolled statement
// parser doesn't have, since it works line-by-line and never notices
// that a brace never closed anywhere in the file. Never a compiler; it
// never invokes cairo/starknet tooling and never is asked to.
package bracecheck

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// Finding is one lexical mismatch surfaced by the Rust-grammar parse.
type Finding struct {
	Line    int
	Column  int
	Snippet string
}

// Check parses src with the bundled Rust grammar and returns one Finding
// per ERROR or MISSING node the grammar produced. An empty, nil result means the
// file's brace/paren/string structure looks sound.
func Check(ctx context.Context, src []byte) ([]Finding, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("bracecheck: parse failed: %w", err)
	}
	defer tree.Close()

	var findings []Finding
	walkErrors(tree.RootNode(), src, &findings)
	return findings, nil
}

func walkErrors(n *sitter.Node, src []byte, out *[]Finding) {
	if n == nil {
		return
	}
	if n.IsError() || n.IsMissing() {
		start := n.StartPoint()
		snippet := string(n.Content(src))
		if len(snippet) > 40 {
			snippet = snippet[:40] + "..."
		}
		*out = append(*out, Finding{
			Line:    int(start.Row) + 1,
			Column:  int(start.Column) + 1,
			Snippet: snippet,
		})
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkErrors(n.Child(i), src, out)
	}
}
