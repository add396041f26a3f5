package token

import "testing"

func TestIsKeyword(t *testing.T) {
	cases := []struct {
		ident string
		want  bool
	}{
		{"def", true},
		{"lambda", true},
		{"True", true},
		{"true", false},
		{"Def", false},
		{"defx", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsKeyword(tc.ident); got != tc.want {
			t.Errorf("IsKeyword(%q) = %v, want %v", tc.ident, got, tc.want)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	comma := Token{Kind: Op, Text: ","}
	if !comma.IsComma() || comma.IsColon() {
		t.Fatal("comma predicates wrong")
	}
	colon := Token{Kind: Op, Text: ":"}
	if !colon.IsColon() || colon.IsComma() {
		t.Fatal("colon predicates wrong")
	}
	kw := Token{Kind: Keyword, Text: "import"}
	if !kw.IsKeyword() || kw.IsName() {
		t.Fatal("keyword predicates wrong")
	}
	open := Token{Kind: Op, Text: "["}
	if !open.IsOpenBracket() || open.IsCloseBracket() {
		t.Fatal("bracket predicates wrong")
	}
}

func TestSizeCountsRunes(t *testing.T) {
	tok := Token{Kind: String, Text: `"привет"`}
	if got := tok.Size(); got != 8 {
		t.Fatalf("Size() = %d, want 8", got)
	}
}
