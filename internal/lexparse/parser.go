// Package lexparse implements the Lexical Parser component: it turns a
// single Cairo file's text into a model.FileParse without building a
// grammar-faithful AST. Every recognized shape is matched line-by-line
// against a fixed set of patterns; anything that doesn't match is skipped
// with a recorded warning rather than aborting the file.
package lexparse

import (
	"fmt"
	"strings"

	"github.com/raptor-audit/cairo-parser/internal/model"
)

// Parse decodes content as UTF-8 and recovers the declared structure of a
// single file. path and modulePath are carried through to the resulting
// FileParse untouched; Parse never touches the filesystem itself.
func Parse(path, modulePath string, content []byte) *model.FileParse {
	fp := &model.FileParse{Path: path, ModulePath: modulePath}
	lines := strings.Split(string(content), "\n")

	p := &parser{lines: lines, fp: fp}
	p.run()
	return fp
}

// matchFuncDecl recognizes a `fn name(...) -> ... {` signature on a single
// line. The parameter list is found by counting paren depth from the
// opening `(` rather than a `[^)]*` regex capture, since a parameter's own
// type can contain parens (a tuple type like `(felt252, felt252)`), which
// a character-class capture can never cross — it always takes the first
// `)` it finds, which lands inside the tuple type rather than at the end
// of the parameter list.
func matchFuncDecl(line string) (ok bool, isPub bool, name, paramsRaw, returnsRaw string) {
	head := funcDeclHeadRe.FindStringSubmatchIndex(line)
	if head == nil {
		return false, false, "", "", ""
	}
	isPub = head[2] != -1
	name = line[head[4]:head[5]]

	depth := 1
	end := -1
	for i := head[1]; i < len(line); i++ {
		switch line[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end != -1 {
			break
		}
	}
	if end == -1 {
		return false, false, "", "", ""
	}
	paramsRaw = line[head[1]:end]

	tail := funcDeclTailRe.FindStringSubmatch(line[end+1:])
	if tail == nil {
		return false, false, "", "", ""
	}
	return true, isPub, name, paramsRaw, tail[2]
}

func isFuncDecl(line string) bool {
	ok, _, _, _, _ := matchFuncDecl(line)
	return ok
}

type parser struct {
	lines []string
	fp    *model.FileParse

	// current is the most recently opened nested declaration. While nil,
	// functions/storage/events are attributed directly to the file itself
	// (fp.Functions et al). Once a mod/trait is opened, everything that
	// follows attaches to it — the lexical parser does not brace-track a
	// declaration's close, so a second top-level declaration in one file
	// ends the first one's attribution by starting its own.
	current *model.Declaration

	pendingAnnotation string // "contract" | "interface" | "component" | ""
	annotationLine    int
}

func (p *parser) run() {
	i := 0
	for i < len(p.lines) {
		line := p.lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			i++
			continue

		case contractAnnotationRe.MatchString(line):
			p.pendingAnnotation, p.annotationLine = "contract", i+1
			i++
			continue
		case interfaceAnnotationRe.MatchString(line):
			p.pendingAnnotation, p.annotationLine = "interface", i+1
			i++
			continue
		case componentAnnotationRe.MatchString(line):
			p.pendingAnnotation, p.annotationLine = "component", i+1
			i++
			continue

		case modDeclRe.MatchString(line):
			i = p.handleModDecl(i)
			continue

		case traitDeclRe.MatchString(line) && p.pendingAnnotation == "interface":
			i = p.handleTraitDecl(i)
			continue

		case storageHeaderRe.MatchString(line):
			i = p.handleStorageHeader(i)
			continue

		case eventHeaderRe.MatchString(line):
			i = p.handleEventHeader(i)
			continue

		case useDeclRe.MatchString(line):
			p.handleUse(line, i+1)
			i++
			continue

		case decoratorRe.MatchString(trimmed), decoratorExternalRe.MatchString(line), decoratorViewRe.MatchString(line):
			i = p.handleDecoratedFunction(i)
			continue

		case isFuncDecl(line):
			i = p.handleFunction(i, nil)
			continue

		default:
			i++
		}
	}
}

// handleModDecl consumes a `mod IDENT {` line. If it was preceded (within 3
// lines) by a starknet::contract/component annotation it becomes that kind;
// otherwise it's a plain Module. The declaration's body runs to its
// matching close brace but is not itself brace-captured as raw text — the
// parser keeps walking lines inside it so nested fn/storage/event/use
// constructs are still recognized.
func (p *parser) handleModDecl(i int) int {
	m := modDeclRe.FindStringSubmatch(p.lines[i])
	name := m[2]

	kind := model.KindModule
	if p.pendingAnnotation == "contract" && i+1-p.annotationLine <= 3 {
		kind = model.KindContract
	} else if p.pendingAnnotation == "component" && i+1-p.annotationLine <= 3 {
		kind = model.KindComponent
	}
	p.pendingAnnotation = ""

	decl := &model.Declaration{Name: name, Kind: kind, Line: i + 1}
	p.fp.Declarations = append(p.fp.Declarations, decl)
	p.current = decl
	return i + 1
}

func (p *parser) handleTraitDecl(i int) int {
	m := traitDeclRe.FindStringSubmatch(p.lines[i])
	name := m[1]
	p.pendingAnnotation = ""

	decl := &model.Declaration{Name: name, Kind: model.KindInterface, Line: i + 1}
	p.fp.Declarations = append(p.fp.Declarations, decl)
	p.current = decl
	return i + 1
}

// handleStorageHeader expects `#[storage]` followed (within a couple of
// lines) by `struct Storage {`, then reads field declarations up to the
// matching close brace.
func (p *parser) handleStorageHeader(i int) int {
	j := i + 1
	for j < len(p.lines) && strings.TrimSpace(p.lines[j]) == "" {
		j++
	}
	if j >= len(p.lines) || !storageStructRe.MatchString(p.lines[j]) {
		p.warn(model.DiagParseError, i+1, "expected struct Storage after #[storage]")
		return i + 1
	}

	end := j + 1
	depth := 1
	for end < len(p.lines) && depth > 0 {
		depth += strings.Count(p.lines[end], "{") - strings.Count(p.lines[end], "}")
		end++
	}

	var fields []model.StorageVar
	for k := j + 1; k < end-1; k++ {
		fm := fieldDeclRe.FindStringSubmatch(p.lines[k])
		if fm == nil {
			continue
		}
		fields = append(fields, model.StorageVar{
			Name: strings.TrimSpace(fm[1]),
			Type: strings.TrimSuffix(strings.TrimSpace(fm[2]), ","),
			Line: k + 1,
		})
	}
	if p.current == nil {
		p.fp.StorageVars = append(p.fp.StorageVars, fields...)
	} else {
		p.current.StorageVars = append(p.current.StorageVars, fields...)
	}
	return end
}

// handleEventHeader expects `#[event]` followed by `enum IDENT {` or
// `struct IDENT {`.
func (p *parser) handleEventHeader(i int) int {
	j := i + 1
	for j < len(p.lines) && strings.TrimSpace(p.lines[j]) == "" {
		j++
	}
	if j >= len(p.lines) {
		p.warn(model.DiagParseError, i+1, "expected enum/struct after #[event]")
		return i + 1
	}
	m := eventDeclRe.FindStringSubmatch(p.lines[j])
	if m == nil {
		p.warn(model.DiagParseError, i+1, "expected enum/struct after #[event]")
		return i + 1
	}

	end := j + 1
	depth := 1
	for end < len(p.lines) && depth > 0 {
		depth += strings.Count(p.lines[end], "{") - strings.Count(p.lines[end], "}")
		end++
	}

	event := model.Event{Name: m[3], Kind: m[2], Line: j + 1}
	if p.current == nil {
		p.fp.Events = append(p.fp.Events, event)
	} else {
		p.current.Events = append(p.current.Events, event)
	}
	return end
}

func (p *parser) handleUse(line string, lineNo int) {
	m := useDeclRe.FindStringSubmatch(line)
	path := m[1]
	var symbols []string
	if m[3] != "" {
		for _, s := range strings.Split(m[3], ",") {
			s = strings.TrimSpace(s)
			if s != "" {
				symbols = append(symbols, s)
			}
		}
	} else {
		// `use a::b::Single;` — the last segment is the imported symbol, the
		// rest is the module path.
		if idx := strings.LastIndex(path, "::"); idx >= 0 {
			symbols = []string{path[idx+2:]}
			path = path[:idx]
		}
	}
	p.fp.Imports = append(p.fp.Imports, &model.ImportInfo{
		Path: path, Symbols: symbols, Line: lineNo,
	})
}

// handleDecoratedFunction accumulates consecutive decorator lines, then
// expects a function declaration to follow.
func (p *parser) handleDecoratedFunction(i int) int {
	var decorators []string
	j := i
	for j < len(p.lines) {
		trimmed := strings.TrimSpace(p.lines[j])
		if decoratorRe.MatchString(trimmed) {
			decorators = append(decorators, trimmed)
			j++
			continue
		}
		break
	}
	if j >= len(p.lines) || !isFuncDecl(p.lines[j]) {
		// Decorator wasn't attached to a function (e.g. storage/event,
		// already handled above, or an unrecognized attribute); skip past
		// the decorator lines only.
		return j
	}
	return p.handleFunction(j, decorators)
}

func (p *parser) handleFunction(i int, decorators []string) int {
	_, isPub, name, paramsRaw, returnsRaw := matchFuncDecl(p.lines[i])
	hasOpenBrace := strings.HasSuffix(strings.TrimRight(p.lines[i], " \t"), "{")

	fn := &model.FunctionInfo{
		Name:       name,
		Visibility: visibilityFor(isPub, decorators),
		Parameters: parseParamList(paramsRaw),
		Results:    parseReturnList(returnsRaw),
		Decorators: decorators,
		Line:       i + 1,
	}

	next := i + 1
	if hasOpenBrace {
		text, endIdx, ok := captureBody(p.lines, i)
		if !ok {
			p.warn(model.DiagParseError, i+1, fmt.Sprintf("unclosed body for fn %s", name))
		} else {
			fn.Body = &model.FunctionBody{Text: text, StartLine: i + 2}
			next = endIdx + 1
		}
	} else {
		// signature without a trailing '{' on its own line: scan forward for
		// the opening brace before giving up.
		openIdx := -1
		for k := i + 1; k < len(p.lines) && k < i+5; k++ {
			if strings.Contains(p.lines[k], "{") {
				openIdx = k
				break
			}
		}
		if openIdx >= 0 {
			text, endIdx, ok := captureBody(p.lines, openIdx)
			if ok {
				fn.Body = &model.FunctionBody{Text: text, StartLine: openIdx + 2}
				next = endIdx + 1
			} else {
				p.warn(model.DiagParseError, i+1, fmt.Sprintf("unclosed body for fn %s", name))
			}
		}
	}

	if p.current == nil {
		p.fp.Functions = append(p.fp.Functions, fn)
	} else {
		p.current.Functions = append(p.current.Functions, fn)
	}
	return next
}

func visibilityFor(isPub bool, decorators []string) model.Visibility {
	for _, d := range decorators {
		if decoratorExternalRe.MatchString(d) {
			return model.VisibilityExternal
		}
		if decoratorViewRe.MatchString(d) {
			return model.VisibilityView
		}
	}
	if isPub {
		return model.VisibilityExternal
	}
	return model.VisibilityInternal
}

func (p *parser) warn(kind model.DiagnosticKind, line int, msg string) {
	p.fp.Warnings = append(p.fp.Warnings, model.Warning{Kind: kind, Message: msg, Line: line})
}
