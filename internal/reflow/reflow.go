package reflow

import (
	"pyfix/internal/token"
)

// Options управляют одним проходом переукладки.
type Options struct {
	// MaxWidth — предельная ширина строки в символах.
	MaxWidth int
	// Indent — отступ исходной логической строки; первая строка вывода
	// начинается с такого же количества пробелов.
	Indent string
	// ContinuedIndent prefixes every wrapped continuation line.
	ContinuedIndent string
	// BreakAfterOpen переносит строку сразу после первой открывающей
	// скобки верхнего уровня (стиль "висячего" отступа).
	BreakAfterOpen bool
}

// Reflow lays the element tree out into width-bounded physical lines and
// returns the rendered text, terminated by exactly one newline.
func Reflow(elems []Element, opts Options) string {
	b := NewBuilder(opts.MaxWidth)
	b.AddIndent(len(opts.Indent))

	prevWasString := false
	for _, e := range elems {
		b.AddSpaceIfNeeded(e.Text(), true)

		if e.Group != nil {
			reflowGroup(b, e.Group, opts.ContinuedIndent, opts.BreakAfterOpen)
		} else {
			if e.IsString() && prevWasString {
				b.AddLineBreak(opts.ContinuedIndent)
			}
			reflowAtom(b, e.Tok, opts.ContinuedIndent)
		}
		prevWasString = e.IsString()
	}
	return b.Emit()
}

// reflowAtom places one leaf token: comments get the canonical two-space
// prefix, everything else wraps onto a continuation line when it does not
// fit and the current line already has content.
func reflowAtom(b *Builder, tok token.Token, continuedIndent string) {
	if tok.IsComment() {
		b.AddComment(tok)
		return
	}

	// Большинству атомов после себя нужен пробел — учитываем его в оценке.
	// Одиночная пунктуация и скобки прилегают вплотную.
	extent := tok.Size()
	if !(len(tok.Text) == 1 && bytesContains(",:([{}])", tok.Text[0])) {
		extent++
	}

	if !b.FitsOnCurrentLine(extent) && !b.LineEmpty() {
		b.AddLineBreak(continuedIndent)
	} else {
		b.AddSpaceIfNeeded(tok.Text, tok.Text == "=")
	}
	b.AddItem(tok, len(continuedIndent))
}

// reflowGroup walks one bracketed group. Каждый уровень вложенности
// удлиняет продолженный отступ на один символ.
func reflowGroup(b *Builder, g *Group, continuedIndent string, breakAfterOpen bool) {
	prevText := ""
	prevWasString := false

	for i, item := range g.Items {
		if item.IsString() && prevWasString {
			b.AddLineBreak(continuedIndent)
		}

		if item.Group != nil {
			// Вложенная группа, не влезающая в текущую строку, уходит
			// целиком на новую — но только когда перенос окупается:
			// либо она влезет в пустую строку, либо текущая строка
			// почти пуста относительно ширины после продолженного
			// отступа.
			size := item.Size()
			if prevText != "=" && !b.LineEmpty() && !b.FitsOnCurrentLine(size) {
				cs := b.CurrentSize()
				spaceAvailable := b.MaxWidth() - len(continuedIndent)
				if b.FitsOnEmptyLine(size) ||
					(cs > 0 && spaceAvailable/cs > 4) {
					b.AddLineBreak(continuedIndent)
				}
			}
			reflowGroup(b, item.Group, continuedIndent+" ", false)
		} else {
			reflowAtom(b, item.Tok, continuedIndent)
		}

		if breakAfterOpen && i == 0 &&
			item.Group == nil && item.Tok.IsOpenBracket() &&
			len(g.Items) > 1 && !nextIsClose(g, i) {
			b.AddLineBreak(continuedIndent)
			breakAfterOpen = false
		}

		prevText = item.Text()
		prevWasString = item.IsString()
	}
}

// nextIsClose reports whether the item after index i is the group's own
// closing bracket. Пустые скобки держим вместе.
func nextIsClose(g *Group, i int) bool {
	if i+1 >= len(g.Items) {
		return false
	}
	next := g.Items[i+1]
	return next.Group == nil && next.Tok.Text == g.Kind.Close()
}
