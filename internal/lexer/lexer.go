package lexer

import (
	"pyfix/internal/source"
	"pyfix/internal/token"
)

// Lexer produces the significant tokens of a Python logical line.
// Пробелы, переводы строк и продолжения '\'+newline пропускаются: раскладку
// пробелов заново выводит движок reflow, ему исходные отступы не нужны.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1-элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
	}
}

// Next возвращает следующий значимый токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipBlank()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.Peek()

	switch {
	case ch == '#':
		return lx.scanComment()

	case ch == '"' || ch == '\'':
		return lx.scanString(lx.cursor.Mark())

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		// Идентификатор, ключевое слово или строковый префикс (r"", b'', f"").
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()

	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All tokenizes the remaining input, excluding the trailing EOF token.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

// skipBlank пропускает пробелы, табы, переводы строк и '\'+newline.
func (lx *Lexer) skipBlank() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == ' ' || b == '\t' || b == '\n' || b == '\f' {
			lx.cursor.Bump()
			continue
		}
		if b == '\\' {
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
		}
		break
	}
}

func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Comment, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
