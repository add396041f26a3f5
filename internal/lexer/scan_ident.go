package lexer

import (
	"pyfix/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через token.IsKeyword.
// Если идентификатор оказался строковым префиксом (r, b, f, u и комбинации)
// и сразу за ним идёт кавычка — продолжаем как строковый литерал.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	if r < utf8RuneSelf {
		// ASCII
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	} else {
		// Unicode
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		lx.bumpRune()
		for {
			r2, sz2 := lx.peekRune()
			if sz2 == 0 || !isIdentContinueRune(r2) {
				break
			}
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	// Строковый префикс: r"...", rb'...', f"..." и т.д.
	if b := lx.cursor.Peek(); (b == '"' || b == '\'') && isStringPrefix(text) {
		return lx.scanString(start)
	}

	if token.IsKeyword(text) {
		return token.Token{Kind: token.Keyword, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}
