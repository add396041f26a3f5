package diagfmt_test

import (
	"strings"
	"testing"

	"pyfix/internal/diagfmt"
)

func TestUnifiedDiffSimple(t *testing.T) {
	var sb strings.Builder
	err := diagfmt.WriteUnifiedDiff(&sb, "p.py", "a\nb\nc\n", "a\nx\nc\n")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}

	want := "--- p.py\n" +
		"+++ p.py\n" +
		"@@ -1,3 +1,3 @@\n" +
		" a\n" +
		"-b\n" +
		"+x\n" +
		" c\n"
	if got := sb.String(); got != want {
		t.Fatalf("diff output:\nwant %q\ngot  %q", want, got)
	}
}

func TestUnifiedDiffNoChange(t *testing.T) {
	var sb strings.Builder
	if err := diagfmt.WriteUnifiedDiff(&sb, "p.py", "same\n", "same\n"); err != nil {
		t.Fatalf("diff: %v", err)
	}
	if sb.Len() != 0 {
		t.Fatalf("identical files: want empty diff, got %q", sb.String())
	}
}

func TestUnifiedDiffSeparateHunks(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "line"
	}
	before := strings.Join(lines, "\n") + "\n"

	changed := make([]string, 20)
	copy(changed, lines)
	changed[0] = "first"
	changed[19] = "last"
	after := strings.Join(changed, "\n") + "\n"

	var sb strings.Builder
	if err := diagfmt.WriteUnifiedDiff(&sb, "p.py", before, after); err != nil {
		t.Fatalf("diff: %v", err)
	}
	if got := strings.Count(sb.String(), "@@ -"); got != 2 {
		t.Fatalf("hunk count:\nwant 2\ngot  %d\n%s", got, sb.String())
	}
}
