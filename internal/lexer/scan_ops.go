package lexer

import (
	"pyfix/internal/diag"
	"pyfix/internal/token"
)

// scanOperatorOrPunct сканирует операторы и пунктуацию Python.
// Жадность: сперва трёх-, потом двух-, потом односимвольные формы.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	// Трёхсимвольные
	case lx.try3('*', '*', '='),
		lx.try3('/', '/', '='),
		lx.try3('<', '<', '='),
		lx.try3('>', '>', '='),
		lx.try3('.', '.', '.'):

	// Двухсимвольные
	case lx.try2('*', '*'),
		lx.try2('/', '/'),
		lx.try2('<', '<'),
		lx.try2('>', '>'),
		lx.try2('<', '='),
		lx.try2('>', '='),
		lx.try2('=', '='),
		lx.try2('!', '='),
		lx.try2('-', '>'),
		lx.try2(':', '='),
		lx.try2('+', '='),
		lx.try2('-', '='),
		lx.try2('*', '='),
		lx.try2('/', '='),
		lx.try2('%', '='),
		lx.try2('&', '='),
		lx.try2('|', '='),
		lx.try2('^', '='),
		lx.try2('@', '='):

	default:
		b := lx.cursor.Peek()
		switch b {
		case '+', '-', '*', '/', '%', '@', '&', '|', '^', '~', '<', '>', '=',
			'(', ')', '[', ']', '{', '}', ',', ':', '.', ';':
			lx.cursor.Bump()
		default:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnknownChar, sp, "unexpected character "+lx.text(sp))
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Op, Span: sp, Text: lx.text(sp)}
}
