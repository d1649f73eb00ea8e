// Package stmtparse implements the Statement Parser component: it turns a
// function body's raw text into a flat, line-anchored sequence of
// classified Statements for the CFG builder to fold.
package stmtparse

import (
	"strings"

	"github.com/raptor-audit/cairo-parser/internal/lexutil"
	"github.com/raptor-audit/cairo-parser/internal/model"
)

// Parse tokenizes body line-by-line starting at startLine (the 1-based
// line number of body's first line in the original file) and returns the
// classified Statement sequence. Blank and comment-only lines are skipped.
func Parse(body string, startLine int) []model.Statement {
	lines := strings.Split(body, "\n")
	var out []model.Statement

	for i, raw := range lines {
		line := raw
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		lineNo := startLine + i
		out = append(out, classify(line, trimmed, lineNo))
	}

	return out
}

func classify(line, trimmed string, lineNo int) model.Statement {
	switch {
	case blockOpenOnlyRe.MatchString(trimmed):
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtBlockOpen}
	case blockCloseOnlyRe.MatchString(trimmed):
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtBlockClose}

	case breakRe.MatchString(trimmed):
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtBreak}
	case continueRe.MatchString(trimmed):
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtContinue}

	case returnRe.MatchString(trimmed):
		m := returnRe.FindStringSubmatch(trimmed)
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtReturn, Used: lexutil.UsedNames(m[2])}

	case forRe.MatchString(trimmed):
		m := forRe.FindStringSubmatch(trimmed)
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtFor, LoopVariable: m[1], Used: lexutil.UsedNames(m[2])}
	case whileRe.MatchString(trimmed):
		m := whileRe.FindStringSubmatch(trimmed)
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtWhile, Condition: m[1], Used: lexutil.UsedNames(m[1])}
	case loopRe.MatchString(trimmed):
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtLoop}
	case elseIfRe.MatchString(trimmed):
		m := elseIfRe.FindStringSubmatch(trimmed)
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtElse, Condition: m[1], Used: lexutil.UsedNames(m[1])}
	case elseRe.MatchString(trimmed):
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtElse}
	case ifRe.MatchString(trimmed):
		m := ifRe.FindStringSubmatch(trimmed)
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtIf, Condition: m[1], Used: lexutil.UsedNames(m[1])}

	case storageWriteRe.MatchString(trimmed):
		m := storageWriteRe.FindStringSubmatch(trimmed)
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtStorageWrite, StorageVar: m[1], Used: lexutil.UsedNames(m[2])}
	case storageReadRe.MatchString(trimmed):
		m := storageReadRe.FindStringSubmatch(trimmed)
		s := model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtStorageRead, StorageVar: m[1]}
		if lm := letBindingRe.FindStringSubmatch(trimmed); lm != nil {
			s.Defined = lm[2]
		}
		return s

	case letBindingRe.MatchString(trimmed):
		m := letBindingRe.FindStringSubmatch(trimmed)
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtLetBinding, Defined: m[2], Used: lexutil.UsedNames(m[4])}

	case matchArmRe.MatchString(trimmed):
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtMatchArm}

	case assignmentRe.MatchString(trimmed) && !lexutil.Keywords[leadingWord(trimmed)]:
		m := assignmentRe.FindStringSubmatch(trimmed)
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtAssignment, Defined: m[1], Used: lexutil.UsedNames(m[2])}

	case callRe.MatchString(trimmed):
		m := callRe.FindStringSubmatch(trimmed)
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtCall, Callee: m[1], Used: lexutil.UsedNames(m[2])}

	default:
		return model.Statement{Raw: trimmed, Line: lineNo, Kind: model.StmtOther}
	}
}

func leadingWord(s string) string {
	i := 0
	for i < len(s) && (isIdentByte(s[i])) {
		i++
	}
	return s[:i]
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
