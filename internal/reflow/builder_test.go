package reflow_test

import (
	"testing"

	"pyfix/internal/reflow"
	"pyfix/internal/token"
)

func mkTok(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text}
}

func TestBuilderEmitSingleLine(t *testing.T) {
	b := reflow.NewBuilder(80)
	b.AddIndent(0)
	b.AddItem(mkTok(token.Ident, "x"), 0)
	b.AddSpaceIfNeeded("=", true)
	b.AddItem(mkTok(token.Op, "="), 0)
	b.AddSpaceIfNeeded("1", true)
	b.AddItem(mkTok(token.Number, "1"), 0)

	if got, want := b.Emit(), "x = 1\n"; got != want {
		t.Fatalf("emit:\nwant %q\ngot  %q", want, got)
	}
}

func TestBuilderEmitStripsTrailingBlank(t *testing.T) {
	b := reflow.NewBuilder(80)
	b.AddIndent(0)
	b.AddItem(mkTok(token.Ident, "x"), 0)
	b.AddSpaceIfNeeded("=", true)
	b.AddLineBreak("    ")

	// Пробел перед переводом строки и хвостовой отступ не печатаются.
	if got, want := b.Emit(), "x\n"; got != want {
		t.Fatalf("emit:\nwant %q\ngot  %q", want, got)
	}
}

func TestBuilderCommentSpacing(t *testing.T) {
	b := reflow.NewBuilder(80)
	b.AddIndent(0)
	b.AddItem(mkTok(token.Ident, "x"), 0)
	// Уже стоящий пробел идёт в зачёт двух.
	b.AddSpaceIfNeeded("# note", true)
	b.AddComment(mkTok(token.Comment, "# note"))

	if got, want := b.Emit(), "x  # note\n"; got != want {
		t.Fatalf("emit:\nwant %q\ngot  %q", want, got)
	}
}

func TestBuilderInitializerStaysTogether(t *testing.T) {
	// "key=value" внутри скобок не рвётся по '=', даже за границей ширины.
	b := reflow.NewBuilder(16)
	b.AddIndent(0)
	for _, tok := range []token.Token{
		mkTok(token.Ident, "f"),
		mkTok(token.Op, "("),
		mkTok(token.Ident, "argument"),
		mkTok(token.Op, "="),
		mkTok(token.Number, "10000"),
		mkTok(token.Op, ")"),
	} {
		b.AddItem(tok, 4)
	}

	if got, want := b.Emit(), "f(\n    argument=10000)\n"; got != want {
		t.Fatalf("emit:\nwant %q\ngot  %q", want, got)
	}
}

func TestBuilderSplitAfterDelimiter(t *testing.T) {
	// Запятая, не влезающая в строку, утягивает последний аргумент на
	// продолжение вместе с собой.
	b := reflow.NewBuilder(10)
	b.AddIndent(0)
	b.AddItem(mkTok(token.Ident, "f"), 4)
	b.AddItem(mkTok(token.Op, "("), 4)
	b.AddItem(mkTok(token.Ident, "abc"), 4)
	b.AddItem(mkTok(token.Op, ","), 4)
	b.AddSpaceIfNeeded("defgh", false)
	b.AddItem(mkTok(token.Ident, "defgh"), 4)
	b.AddItem(mkTok(token.Op, ","), 4)

	if got, want := b.Emit(), "f(abc,\n    defgh,\n"; got != want {
		t.Fatalf("emit:\nwant %q\ngot  %q", want, got)
	}
}

func TestBuilderDepthPanicsOnExtraClose(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unmatched close bracket")
		}
	}()
	b := reflow.NewBuilder(80)
	b.AddIndent(0)
	b.AddItem(mkTok(token.Op, ")"), 0)
}

func TestBuilderLineAccounting(t *testing.T) {
	b := reflow.NewBuilder(80)
	b.AddIndent(4)
	if !b.LineEmpty() {
		t.Error("line with only indent: want LineEmpty")
	}
	if got := b.CurrentSize(); got != 4 {
		t.Errorf("current size with indent 4: want 4, got %d", got)
	}

	b.AddItem(mkTok(token.Ident, "name"), 0)
	if b.LineEmpty() {
		t.Error("line with a token: want not LineEmpty")
	}
	if got := b.CurrentSize(); got != 8 {
		t.Errorf("current size: want 8, got %d", got)
	}
	if !b.FitsOnCurrentLine(72) {
		t.Error("FitsOnCurrentLine(72): want true at size 8, width 80")
	}
	if b.FitsOnCurrentLine(73) {
		t.Error("FitsOnCurrentLine(73): want false at size 8, width 80")
	}

	b.AddLineBreak("  ")
	if got := b.CurrentSize(); got != 2 {
		t.Errorf("current size after break: want 2, got %d", got)
	}
}
