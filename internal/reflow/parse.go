package reflow

import (
	"fmt"

	"pyfix/internal/diag"
	"pyfix/internal/source"
	"pyfix/internal/token"
)

// Parse раскладывает плоский поток токенов в дерево элементов: каждый
// скобочный участок становится вложенной группой. Сами скобки остаются
// первым и последним детьми группы.
//
// On unbalanced or mismatched brackets the offending spans are reported
// through r and Parse returns ok=false together with the partial tree.
func Parse(tokens []token.Token, r diag.Reporter) (elems []Element, ok bool) {
	ok = true

	// Стек открытых групп; len(stack)==0 — верхний уровень.
	var stack []*Group

	appendElem := func(e Element) {
		if n := len(stack); n > 0 {
			stack[n-1].Items = append(stack[n-1].Items, e)
			return
		}
		elems = append(elems, e)
	}

	for _, tok := range tokens {
		switch {
		case tok.IsOpenBracket():
			g := &Group{
				Kind:  groupKindFor(tok.Text),
				Items: []Element{{Tok: tok}},
			}
			stack = append(stack, g)

		case tok.IsCloseBracket():
			if len(stack) == 0 {
				report(r, diag.FlowUnbalancedClose, tok.Span,
					fmt.Sprintf("unexpected %q with no open bracket", tok.Text))
				ok = false
				continue
			}
			g := stack[len(stack)-1]
			if want := g.Kind.Close(); tok.Text != want {
				report(r, diag.FlowMismatchedClose, tok.Span,
					fmt.Sprintf("expected %q to close %q, found %q",
						want, g.Kind.Open(), tok.Text))
				ok = false
			}
			g.Items = append(g.Items, Element{Tok: tok})
			stack = stack[:len(stack)-1]
			appendElem(Element{Group: g})

		default:
			appendElem(Element{Tok: tok})
		}
	}

	// Незакрытые группы: сообщаем о каждой и вливаем наружу как есть,
	// чтобы дерево оставалось обходимым.
	for len(stack) > 0 {
		g := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		report(r, diag.FlowUnbalancedOpen, g.Items[0].Tok.Span,
			fmt.Sprintf("unclosed %q", g.Kind.Open()))
		ok = false
		appendElem(Element{Group: g})
	}
	return elems, ok
}

func groupKindFor(open string) GroupKind {
	switch open {
	case "(":
		return GroupTuple
	case "[":
		return GroupList
	default:
		return GroupDictOrSet
	}
}

func report(r diag.Reporter, code diag.Code, span source.Span, msg string) {
	if r != nil {
		r.Report(code, diag.SevError, span, msg)
	}
}
