package fix

import (
	"testing"
)

func TestLineRules(t *testing.T) {
	cases := []struct {
		name string
		code string
		line string
		rep  Report
		want string
	}{
		{"e201 after paren", "E201", "foo( a)", Report{Col: 5}, "foo(a)"},
		{"e201 after brace", "E201", "{ 'a': 1}", Report{Col: 2}, "{'a': 1}"},
		{"e202 before paren", "E202", "foo(a )", Report{Col: 6}, "foo(a)"},
		{"e203 before colon", "E203", "x[1 :]", Report{Col: 4}, "x[1:]"},
		{"e203 before comma", "E203", "foo(a , b)", Report{Col: 6}, "foo(a, b)"},
		{"e211 call", "E211", "foo ()", Report{Col: 4}, "foo()"},
		{"e211 subscript", "E211", "x [1]", Report{Col: 2}, "x[1]"},
		{"e221 before operator", "E221", "x    = 1", Report{Col: 2}, "x = 1"},
		{"e222 after operator", "E222", "x =    1", Report{Col: 4}, "x = 1"},
		{"e225 missing space", "E225", "i=i+1", Report{Col: 2}, "i =i+1"},
		{"e231 after comma", "E231", "foo(a,b,c)", Report{Message: "missing whitespace after ','"}, "foo(a, b, c)"},
		{"e231 after colon", "E231", "{'a':1}", Report{Message: "missing whitespace after ':'"}, "{'a': 1}"},
		{"e251 around default equals", "E251", "foo(a = 1)", Report{Col: 6}, "foo(a=1)"},
		{"e261 one space", "E261", "x = 1 # c", Report{Col: 7}, "x = 1  # c"},
		{"e261 no space", "E261", "x = 1# c", Report{Col: 6}, "x = 1  # c"},
		{"e262 double hash", "E262", "x = 1  ## c", Report{Col: 8}, "x = 1  # c"},
		{"e262 no space after hash", "E262", "x = 1  #c", Report{Col: 8}, "x = 1  # c"},
		{"w291 trailing", "W291", "x = 1   ", Report{Col: 6}, "x = 1"},
		{"w293 blank line", "W293", "    ", Report{Col: 1}, ""},
	}

	for _, tc := range cases {
		rule, known := lineRules[tc.code]
		if !known {
			t.Fatalf("%s: no rule registered for %s", tc.name, tc.code)
		}
		got, ok := rule(tc.line, tc.rep)
		if !ok {
			t.Errorf("%s: rule did not apply to %q", tc.name, tc.line)
			continue
		}
		if got != tc.want {
			t.Errorf("%s:\nwant %q\ngot  %q", tc.name, tc.want, got)
		}
	}
}

func TestE225KeepsLineWhenContentWouldChange(t *testing.T) {
	// Вставка пробела не должна менять непробельное содержимое.
	line := "x = 1"
	if got, ok := fixE225(line, Report{Col: 99}); ok || got != line {
		t.Errorf("out-of-range column: want unchanged line, got %q ok=%v", got, ok)
	}
}

func TestE261RequiresComment(t *testing.T) {
	if _, ok := fixE261("x = 1", Report{Col: 3}); ok {
		t.Error("line without comment: want ok=false")
	}
}
