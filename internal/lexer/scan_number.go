package lexer

import (
	"pyfix/internal/diag"
	"pyfix/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 1.0, 1., .5, 1e-3, 1.0e+10, 1j, 10_000.
// Неверные формы — репорт в opts.Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	// Ведущая точка — формат ".digits" (вызывается после isNumberAfterDot).
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		lx.eatDigits()
		lx.eatExponent(start)
		lx.eatImaginary()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Number, Span: sp, Text: lx.text(sp)}
	}

	// Ведущий 0 и основание?
	if lx.cursor.Peek() == '0' {
		if _, b1, ok := lx.cursor.Peek2(); ok {
			switch b1 {
			case 'b', 'B':
				lx.cursor.Bump()
				lx.cursor.Bump()
				for b := lx.cursor.Peek(); b == '0' || b == '1' || b == '_'; b = lx.cursor.Peek() {
					lx.cursor.Bump()
				}
				return lx.emitNumber(start)
			case 'o', 'O':
				lx.cursor.Bump()
				lx.cursor.Bump()
				for b := lx.cursor.Peek(); (b >= '0' && b <= '7') || b == '_'; b = lx.cursor.Peek() {
					lx.cursor.Bump()
				}
				return lx.emitNumber(start)
			case 'x', 'X':
				lx.cursor.Bump()
				lx.cursor.Bump()
				for b := lx.cursor.Peek(); isHex(b) || b == '_'; b = lx.cursor.Peek() {
					lx.cursor.Bump()
				}
				return lx.emitNumber(start)
			}
		}
	}

	// Десятичная часть.
	lx.eatDigits()

	// Дробная часть (но не "..", чтобы не съесть начало среза 1..2).
	if lx.cursor.Peek() == '.' {
		if _, b1, ok := lx.cursor.Peek2(); !ok || b1 != '.' {
			lx.cursor.Bump()
			lx.eatDigits()
		}
	}

	lx.eatExponent(start)
	lx.eatImaginary()
	return lx.emitNumber(start)
}

func (lx *Lexer) emitNumber(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) eatDigits() {
	for b := lx.cursor.Peek(); isDec(b) || b == '_'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) eatExponent(start Mark) {
	b := lx.cursor.Peek()
	if b != 'e' && b != 'E' {
		return
	}
	_, b1, ok := lx.cursor.Peek2()
	if !ok {
		return
	}
	if isDec(b1) {
		lx.cursor.Bump()
		lx.eatDigits()
		return
	}
	if b1 == '+' || b1 == '-' {
		if _, _, b2, ok3 := lx.cursor.Peek3(); ok3 && isDec(b2) {
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.eatDigits()
			return
		}
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, sp, "expected digit in exponent")
	}
}

func (lx *Lexer) eatImaginary() {
	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
	}
}
