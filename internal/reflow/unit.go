package reflow

import (
	"strings"

	"pyfix/internal/token"
)

// unitKind tags the closed set of emitted units.
type unitKind uint8

const (
	unitToken unitKind = iota
	unitSpace
	unitIndent
	unitBreak
)

// unit is one emitted element of the output stream. Только unitToken несёт
// исходный токен; остальные — чистая форма вывода.
type unit struct {
	kind   unitKind
	tok    token.Token // valid when kind == unitToken
	indent int         // valid when kind == unitIndent
}

// size returns the width contribution of the unit on its line.
func (u unit) size() int {
	switch u.kind {
	case unitToken:
		return u.tok.Size()
	case unitSpace:
		return 1
	case unitIndent:
		return u.indent
	case unitBreak:
		return 0
	}
	return 0
}

// isBlank reports whether the unit is whitespace-shaped (space/indent/break).
func (u unit) isBlank() bool {
	return u.kind != unitToken
}

func (u unit) text() string {
	switch u.kind {
	case unitToken:
		return u.tok.Text
	case unitSpace:
		return " "
	case unitIndent:
		return strings.Repeat(" ", u.indent)
	case unitBreak:
		return "\n"
	}
	return ""
}

func tokenUnit(tok token.Token) unit { return unit{kind: unitToken, tok: tok} }
func spaceUnit() unit                { return unit{kind: unitSpace} }
func indentUnit(n int) unit          { return unit{kind: unitIndent, indent: n} }
func breakUnit() unit                { return unit{kind: unitBreak} }
