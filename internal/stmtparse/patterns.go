package stmtparse

import "regexp"

var (
	letBindingRe = regexp.MustCompile(`^\s*let\s+(mut\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*(:\s*[^=]+)?=\s*(.+?);?\s*$`)
	assignmentRe = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(.+?);?\s*$`)

	storageReadRe  = regexp.MustCompile(`self\s*\.\s*storage\s*\.\s*([A-Za-z_][A-Za-z0-9_]*)\s*\.\s*read\s*\(`)
	storageWriteRe = regexp.MustCompile(`self\s*\.\s*storage\s*\.\s*([A-Za-z_][A-Za-z0-9_]*)\s*\.\s*write\s*\(\s*(.+?)\s*\)\s*;?\s*$`)

	callRe = regexp.MustCompile(`^\s*((?:[A-Za-z_][A-Za-z0-9_]*\.)?[A-Za-z_][A-Za-z0-9_]*)\s*\((.*)\)\s*;?\s*$`)

	returnRe   = regexp.MustCompile(`^\s*return(\s+(.+?))?\s*;?\s*$`)
	ifRe       = regexp.MustCompile(`^\s*if\s+(.+?)\s*\{?\s*$`)
	elseIfRe   = regexp.MustCompile(`^\s*\}?\s*else\s+if\s+(.+?)\s*\{?\s*$`)
	elseRe     = regexp.MustCompile(`^\s*\}?\s*else\s*\{?\s*$`)
	loopRe     = regexp.MustCompile(`^\s*loop\s*\{?\s*$`)
	whileRe    = regexp.MustCompile(`^\s*while\s+(.+?)\s*\{?\s*$`)
	forRe      = regexp.MustCompile(`^\s*for\s+([A-Za-z_][A-Za-z0-9_]*)\s+in\s+(.+?)\s*\{?\s*$`)
	breakRe    = regexp.MustCompile(`^\s*break\s*;?\s*$`)
	continueRe = regexp.MustCompile(`^\s*continue\s*;?\s*$`)
	matchArmRe = regexp.MustCompile(`^\s*[^=]+=>\s*.*,?\s*$`)

	blockOpenOnlyRe  = regexp.MustCompile(`^\s*\{\s*$`)
	blockCloseOnlyRe = regexp.MustCompile(`^\s*\}\s*;?\s*$`)
)
