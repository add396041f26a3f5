package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Keyword represents a Python keyword (def, for, import, ...).
	Keyword
	// Number represents a numeric literal token.
	Number
	// String represents a string literal token (including prefix and quotes).
	String
	// Comment represents a '#' comment running to end of line.
	Comment
	// Op represents an operator or punctuation token.
	Op
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Keyword:
		return "Keyword"
	case Number:
		return "Number"
	case String:
		return "String"
	case Comment:
		return "Comment"
	case Op:
		return "Op"
	}
	return "Unknown"
}
