package lexparse

import "regexp"

// Recognized top-level shapes, per the line-and-regex contract: the parser
// never builds a grammar, it matches the leading tokens of a line against
// these shapes and falls through to a warning when nothing matches.
var (
	contractAnnotationRe  = regexp.MustCompile(`^\s*#\[\s*starknet::contract\s*\]`)
	interfaceAnnotationRe = regexp.MustCompile(`^\s*#\[\s*starknet::interface\s*\]`)
	componentAnnotationRe = regexp.MustCompile(`^\s*#\[\s*starknet::component\s*\]`)

	modDeclRe   = regexp.MustCompile(`^\s*(pub\s+)?mod\s+([A-Za-z_][A-Za-z0-9_]*)\s*\{`)
	traitDeclRe = regexp.MustCompile(`^\s*trait\s+([A-Za-z_][A-Za-z0-9_]*)\s*\{`)

	funcDeclHeadRe = regexp.MustCompile(`^\s*(pub\s+)?fn\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	funcDeclTailRe = regexp.MustCompile(`^\s*(->\s*([^\{]+))?\s*\{?\s*$`)

	storageHeaderRe = regexp.MustCompile(`^\s*#\[\s*storage\s*\]`)
	storageStructRe = regexp.MustCompile(`^\s*struct\s+Storage\s*\{`)

	eventHeaderRe = regexp.MustCompile(`^\s*#\[\s*event\s*\]`)
	eventDeclRe   = regexp.MustCompile(`^\s*(pub\s+)?(enum|struct)\s+([A-Za-z_][A-Za-z0-9_]*)\s*\{`)

	useDeclRe = regexp.MustCompile(`^\s*use\s+([A-Za-z_][A-Za-z0-9_:]*)\s*(::\s*\{([^}]*)\})?\s*;`)

	decoratorExternalRe = regexp.MustCompile(`^\s*#\[\s*external\s*\(`)
	decoratorViewRe     = regexp.MustCompile(`^\s*#\[\s*view\s*\]`)
	decoratorRe         = regexp.MustCompile(`^\s*#\[[^\]]*\]\s*$`)

	fieldDeclRe = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*:\s*(.+?),?\s*$`)
)
