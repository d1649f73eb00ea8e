package lexparse

import (
	"strings"

	"github.com/raptor-audit/cairo-parser/internal/model"
)

// splitTopLevel splits s on commas that are not nested inside angle
// brackets or parentheses, the way a generic-aware parameter list needs to
// be split (`Array<(u32, felt252)>` must not break on its inner comma).
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i, r := range s {
		switch r {
		case '<', '(':
			depth++
		case '>', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	tail := strings.TrimSpace(s[last:])
	if tail != "" {
		parts = append(parts, s[last:])
	}
	return parts
}

// parseParamList splits a parameter or return-type list into Parameters.
// Each piece is split on its first top-level `:`; a piece that contains no
// colon is recorded with an empty name and the whole piece as the type, per
// the parser's "anything that fails to split" fallback.
func parseParamList(raw string) []model.Parameter {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var out []model.Parameter
	for _, piece := range splitTopLevel(raw) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		out = append(out, parseParam(piece))
	}
	return out
}

func parseParam(piece string) model.Parameter {
	idx := topLevelColon(piece)
	if idx < 0 {
		return model.Parameter{Name: "", Type: piece}
	}
	name := strings.TrimSpace(piece[:idx])
	typ := strings.TrimSpace(piece[idx+1:])
	return model.Parameter{Name: name, Type: typ}
}

func topLevelColon(s string) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '<', '(':
			depth++
		case '>', ')':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseReturnList parses a `-> RET` clause, which may itself be a
// comma-separated tuple (`-> (felt252, felt252)`). The spec treats returns
// as an ordered list of name/type pairs; a bare return type carries an
// empty name like any other unsplit piece.
func parseReturnList(raw string) []model.Parameter {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "(")
	raw = strings.TrimSuffix(raw, ")")
	return parseParamList(raw)
}
