package lexer_test

import (
	"testing"

	"pyfix/internal/diag"
	"pyfix/internal/lexer"
	"pyfix/internal/source"
	"pyfix/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки.
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(16)
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return lx, bag
}

type want struct {
	kind token.Kind
	text string
}

func checkTokens(t *testing.T, input string, wants []want) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	toks := lx.All()
	if bag.HasErrors() {
		t.Fatalf("unexpected lex errors for %q: %v", input, bag.Items())
	}
	if len(toks) != len(wants) {
		got := make([]string, 0, len(toks))
		for _, tok := range toks {
			got = append(got, tok.Text)
		}
		t.Fatalf("token count mismatch for %q:\nwant %d\ngot  %d (%q)", input, len(wants), len(toks), got)
	}
	for i, w := range wants {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d of %q = (%s, %q), want (%s, %q)",
				i, input, toks[i].Kind, toks[i].Text, w.kind, w.text)
		}
	}
}

func TestCallExpression(t *testing.T) {
	checkTokens(t, "foo(a, b=1)", []want{
		{token.Ident, "foo"},
		{token.Op, "("},
		{token.Ident, "a"},
		{token.Op, ","},
		{token.Ident, "b"},
		{token.Op, "="},
		{token.Number, "1"},
		{token.Op, ")"},
	})
}

func TestKeywordsAndNames(t *testing.T) {
	checkTokens(t, "from os import path as p", []want{
		{token.Keyword, "from"},
		{token.Ident, "os"},
		{token.Keyword, "import"},
		{token.Ident, "path"},
		{token.Keyword, "as"},
		{token.Ident, "p"},
	})
}

func TestNumbers(t *testing.T) {
	checkTokens(t, "0 123 0x1F 0b10 0o17 1.5 .5 1e-3 2.0e+10 10_000 3j", []want{
		{token.Number, "0"},
		{token.Number, "123"},
		{token.Number, "0x1F"},
		{token.Number, "0b10"},
		{token.Number, "0o17"},
		{token.Number, "1.5"},
		{token.Number, ".5"},
		{token.Number, "1e-3"},
		{token.Number, "2.0e+10"},
		{token.Number, "10_000"},
		{token.Number, "3j"},
	})
}

func TestStrings(t *testing.T) {
	checkTokens(t, `x = "ab" + 'c\'d' + r"raw\n" + f'{x}' + """tri"ple"""`, []want{
		{token.Ident, "x"},
		{token.Op, "="},
		{token.String, `"ab"`},
		{token.Op, "+"},
		{token.String, `'c\'d'`},
		{token.Op, "+"},
		{token.String, `r"raw\n"`},
		{token.Op, "+"},
		{token.String, `f'{x}'`},
		{token.Op, "+"},
		{token.String, `"""tri"ple"""`},
	})
}

func TestEmptyString(t *testing.T) {
	checkTokens(t, `a = ''`, []want{
		{token.Ident, "a"},
		{token.Op, "="},
		{token.String, `''`},
	})
}

func TestOperators(t *testing.T) {
	checkTokens(t, "a ** b // c <= d != e -> f := g **= h", []want{
		{token.Ident, "a"},
		{token.Op, "**"},
		{token.Ident, "b"},
		{token.Op, "//"},
		{token.Ident, "c"},
		{token.Op, "<="},
		{token.Ident, "d"},
		{token.Op, "!="},
		{token.Ident, "e"},
		{token.Op, "->"},
		{token.Ident, "f"},
		{token.Op, ":="},
		{token.Ident, "g"},
		{token.Op, "**="},
		{token.Ident, "h"},
	})
}

func TestComment(t *testing.T) {
	checkTokens(t, "x = 1  # trailing note", []want{
		{token.Ident, "x"},
		{token.Op, "="},
		{token.Number, "1"},
		{token.Comment, "# trailing note"},
	})
}

func TestBackslashContinuationSkipped(t *testing.T) {
	checkTokens(t, "a + \\\n    b", []want{
		{token.Ident, "a"},
		{token.Op, "+"},
		{token.Ident, "b"},
	})
}

func TestUnterminatedStringReported(t *testing.T) {
	lx, bag := makeTestLexer(`x = "oops`)
	toks := lx.All()
	if !bag.HasErrors() {
		t.Fatal("expected a lex error")
	}
	last := toks[len(toks)-1]
	if last.Kind != token.Invalid {
		t.Fatalf("last token kind = %s, want Invalid", last.Kind)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p := lx.Peek()
	n := lx.Next()
	if p.Text != n.Text {
		t.Fatalf("Peek %q != Next %q", p.Text, n.Text)
	}
	if nx := lx.Next(); nx.Text != "b" {
		t.Fatalf("second Next = %q, want b", nx.Text)
	}
}

func TestLogicalLine(t *testing.T) {
	src := "def f(a,\n      b):\n    pass\nx = 1 + \\\n    2\ny = 3\n"
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.py", []byte(src)))

	text, n := lexer.LogicalLine(f, 1)
	if n != 2 {
		t.Fatalf("line 1 spans %d physical lines, want 2", n)
	}
	if text != "def f(a,\n      b):" {
		t.Fatalf("logical line 1 = %q", text)
	}

	text, n = lexer.LogicalLine(f, 4)
	if n != 2 || text != "x = 1 + \\\n    2" {
		t.Fatalf("logical line 4 = %q over %d lines", text, n)
	}

	_, n = lexer.LogicalLine(f, 6)
	if n != 1 {
		t.Fatalf("logical line 6 spans %d, want 1", n)
	}
}

func TestLogicalLineIgnoresBracketsInStrings(t *testing.T) {
	src := "x = '(['  # ) also here\ny = 2\n"
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.py", []byte(src)))
	_, n := lexer.LogicalLine(f, 1)
	if n != 1 {
		t.Fatalf("logical line spans %d physical lines, want 1", n)
	}
}
