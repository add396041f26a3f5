package reflow

import (
	"strings"
	"unicode/utf8"

	"pyfix/internal/token"
)

// GroupKind identifies the bracket flavour of a group.
type GroupKind uint8

const (
	// GroupTuple is a parenthesized run: calls, tuples, generator args.
	GroupTuple GroupKind = iota
	// GroupList is a bracketed run: lists, subscripts.
	GroupList
	// GroupDictOrSet is a braced run: dictionaries and sets.
	GroupDictOrSet
)

// Open returns the opening bracket of the group kind.
func (k GroupKind) Open() string {
	switch k {
	case GroupTuple:
		return "("
	case GroupList:
		return "["
	case GroupDictOrSet:
		return "{"
	}
	return ""
}

// Close returns the closing bracket of the group kind.
func (k GroupKind) Close() string {
	switch k {
	case GroupTuple:
		return ")"
	case GroupList:
		return "]"
	case GroupDictOrSet:
		return "}"
	}
	return ""
}

// Element is one node of the token tree: either a single token (leaf) or a
// nested bracketed group. Ровно одно из полей занято.
type Element struct {
	Tok   token.Token
	Group *Group
}

// Group is an ordered run of tokens and nested groups for one bracketed
// construct. The bracket tokens themselves are the first and last children.
type Group struct {
	Kind  GroupKind
	Items []Element
}

// IsLeaf reports whether the element holds a single token.
func (e Element) IsLeaf() bool { return e.Group == nil }

// IsString reports whether the element is a string-literal leaf.
func (e Element) IsString() bool { return e.Group == nil && e.Tok.IsString() }

// IsKeyword reports whether the element is a keyword leaf.
func (e Element) IsKeyword() bool { return e.Group == nil && e.Tok.IsKeyword() }

// IsComma reports whether the element is a ',' leaf.
func (e Element) IsComma() bool { return e.Group == nil && e.Tok.IsComma() }

// IsColon reports whether the element is a ':' leaf.
func (e Element) IsColon() bool { return e.Group == nil && e.Tok.IsColon() }

// Text returns the canonical single-line spelling of the element.
func (e Element) Text() string {
	if e.Group == nil {
		return e.Tok.Text
	}
	return e.Group.String()
}

// Size returns the width of the canonical single-line spelling.
func (e Element) Size() int {
	if e.Group == nil {
		return e.Tok.Size()
	}
	return utf8.RuneCountInString(e.Group.String())
}

// String renders the group with canonical spacing: ", " after commas,
// ": " after colons, and a space between adjacent items unless one side
// already borders bracket/comma/colon/period punctuation. A space always
// follows a keyword.
func (g *Group) String() string {
	var sb strings.Builder
	lastWasKeyword := false

	for _, item := range g.Items {
		switch {
		case item.IsComma():
			sb.WriteString(", ")
		case item.IsColon():
			sb.WriteString(": ")
		default:
			itemText := item.Text()
			if sb.Len() > 0 &&
				(lastWasKeyword ||
					(!endsWithAny(sb.String(), "([{,.:}]) ") &&
						!startsWithAny(itemText, "([{,.:}])"))) {
				sb.WriteByte(' ')
			}
			sb.WriteString(itemText)
		}
		lastWasKeyword = item.IsKeyword()
	}
	return sb.String()
}

func endsWithAny(s, set string) bool {
	return s != "" && strings.IndexByte(set, s[len(s)-1]) >= 0
}

func startsWithAny(s, set string) bool {
	return s != "" && strings.IndexByte(set, s[0]) >= 0
}
