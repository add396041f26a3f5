package token

import (
	"unicode/utf8"

	"pyfix/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// Size returns the width of the token in characters.
func (t Token) Size() int {
	return utf8.RuneCountInString(t.Text)
}

// IsKeyword reports whether the token is a Python keyword.
func (t Token) IsKeyword() bool { return t.Kind == Keyword }

// IsString reports whether the token is a string literal.
func (t Token) IsString() bool { return t.Kind == String }

// IsName reports whether the token is an identifier.
func (t Token) IsName() bool { return t.Kind == Ident }

// IsNumber reports whether the token is a numeric literal.
func (t Token) IsNumber() bool { return t.Kind == Number }

// IsComment reports whether the token is a comment.
func (t Token) IsComment() bool { return t.Kind == Comment }

// IsComma reports whether the token is exactly ",".
func (t Token) IsComma() bool { return t.Text == "," }

// IsColon reports whether the token is exactly ":".
func (t Token) IsColon() bool { return t.Text == ":" }

// IsOpenBracket reports whether the token opens a bracketed run.
func (t Token) IsOpenBracket() bool {
	return t.Text == "(" || t.Text == "[" || t.Text == "{"
}

// IsCloseBracket reports whether the token closes a bracketed run.
func (t Token) IsCloseBracket() bool {
	return t.Text == ")" || t.Text == "]" || t.Text == "}"
}
