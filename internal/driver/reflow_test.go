package driver

import (
	"os"
	"path/filepath"
	"testing"

	"pyfix/internal/token"
)

func TestTokenizeContent(t *testing.T) {
	res := TokenizeContent("snippet.py", []byte("x = 1\n"), 8)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", res.Bag.Len())
	}
	if len(res.Tokens) == 0 {
		t.Fatalf("expected tokens")
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != token.EOF {
		t.Fatalf("expected trailing EOF, got %v", last.Kind)
	}
}

func TestReflowContentLeavesShortLines(t *testing.T) {
	input := "x = 1\n"
	res := ReflowContent("short.py", []byte(input), 8, ReflowOptions{})
	if res.Changed {
		t.Fatalf("short line should pass through unchanged")
	}
	if res.Output != input {
		t.Fatalf("output mismatch:\nwant %q\ngot  %q", input, res.Output)
	}
}

func TestReflowContentWrapsOverlongLine(t *testing.T) {
	input := "result = foo(aaaa, bbbb, cccc, dddd)\n"
	want := "result = foo(aaaa, bbbb, cccc,\n    dddd)\n"

	res := ReflowContent("long.py", []byte(input), 8, ReflowOptions{MaxLineLength: 30})
	if !res.Changed {
		t.Fatalf("expected the overlong line to change")
	}
	if res.Output != want {
		t.Fatalf("output mismatch:\nwant %q\ngot  %q", want, res.Output)
	}
}

func TestReflowContentAllNormalizesSpacing(t *testing.T) {
	res := ReflowContent("dense.py", []byte("x=1\n"), 8, ReflowOptions{All: true})
	want := "x = 1\n"
	if res.Output != want {
		t.Fatalf("output mismatch:\nwant %q\ngot  %q", want, res.Output)
	}
}

func TestReflowContentKeepsCommentLines(t *testing.T) {
	input := "# header\nx=1\n"
	want := "# header\nx = 1\n"

	res := ReflowContent("mixed.py", []byte(input), 8, ReflowOptions{All: true})
	if res.Output != want {
		t.Fatalf("output mismatch:\nwant %q\ngot  %q", want, res.Output)
	}
}

func TestReflowContentKeepsUnbalancedLines(t *testing.T) {
	input := "foo(]\n"
	res := ReflowContent("broken.py", []byte(input), 8, ReflowOptions{All: true})
	if res.Output != input {
		t.Fatalf("broken line must stay verbatim:\nwant %q\ngot  %q", input, res.Output)
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("expected bracket diagnostics")
	}
}

func TestReflowFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	if err := os.WriteFile(path, []byte("value = call(first_argument, second_argument, third_argument, fourth_one)\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := ReflowFile(path, 8, ReflowOptions{MaxLineLength: 40})
	if err != nil {
		t.Fatalf("ReflowFile: %v", err)
	}
	if !res.Changed {
		t.Fatalf("expected file to change")
	}
	for _, line := range splitOutputLines(res.Output) {
		if len(line) > 40 {
			t.Fatalf("line still overlong: %q", line)
		}
	}
}

func splitOutputLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
