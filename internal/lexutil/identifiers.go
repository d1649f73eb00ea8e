// Package lexutil holds identifier-extraction helpers shared by the
// lexical parser and the statement parser — both need the same "names
// used in this expression" rule, just applied to different spans of text.
package lexutil

import "regexp"

var plainIdentifierRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

var Keywords = map[string]bool{
	"let": true, "mut": true, "fn": true, "if": true, "else": true,
	"loop": true, "while": true, "for": true, "in": true, "return": true,
	"break": true, "continue": true, "match": true, "mod": true, "use": true,
	"pub": true, "struct": true, "enum": true, "trait": true, "impl": true,
	"self": true, "true": true, "false": true, "as": true, "ref": true,
	"const": true, "static": true, "crate": true, "super": true,
}

// UsedNames extracts the set of identifiers appearing in expr that are
// neither language keywords nor immediately followed by `(` (those are
// callees, excluded from "uses" per the extraction rule), in first-seen
// order.
func UsedNames(expr string) []string {
	locs := plainIdentifierRe.FindAllStringIndex(expr, -1)
	seen := map[string]bool{}
	var out []string
	for _, loc := range locs {
		ident := expr[loc[0]:loc[1]]
		if Keywords[ident] {
			continue
		}
		if followedByParen(expr, loc[1]) {
			continue
		}
		if !seen[ident] {
			seen[ident] = true
			out = append(out, ident)
		}
	}
	return out
}

func followedByParen(s string, from int) bool {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t':
			continue
		case '(':
			return true
		default:
			return false
		}
	}
	return false
}
