package lexer

import (
	"pyfix/internal/diag"
	"pyfix/internal/token"
)

// scanString сканирует строковый литерал начиная с метки start (префикс уже
// съеден вызывающим, курсор стоит на кавычке). Поддерживаются '...', "...",
// тройные кавычки и escape-последовательности; в raw-строках '\' ничего не
// экранирует, но закрывающую кавычку после него мы всё равно не считаем.
func (lx *Lexer) scanString(start Mark) token.Token {
	quote := lx.cursor.Bump()

	triple := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == quote && b1 == quote {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	} else if lx.cursor.Peek() == quote {
		// Пустая строка '' или "" (тройная форма уже отсеяна выше).
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == '\\' {
			// Съесть '\' и следующий байт; глубокой валидации escape здесь нет.
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}

		if b == quote {
			if !triple {
				lx.cursor.Bump()
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
			}
			if lx.try3(quote, quote, quote) {
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
			}
			lx.cursor.Bump()
			continue
		}

		if b == '\n' && !triple {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}

		lx.cursor.Bump()
	}

	// EOF без закрывающей кавычки.
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
