package diagfmt_test

import (
	"strings"
	"testing"

	"pyfix/internal/diag"
	"pyfix/internal/diagfmt"
	"pyfix/internal/source"
)

func TestPrettyPlain(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.py", []byte("x=1\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.FixBadReportLine,
		Message:  "missing whitespace around operator",
		Primary:  source.Span{File: fileID, Start: 1, End: 2},
	})

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{Context: true})

	want := "a.py:1:2: ERROR PF3002: missing whitespace around operator\n" +
		"  x=1\n" +
		"   ^\n"
	if got := sb.String(); got != want {
		t.Fatalf("pretty output:\nwant %q\ngot  %q", want, got)
	}
}

func TestPrettyWithoutContext(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("b.py", []byte("import os\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.LexInfo,
		Message:  "note",
		Primary:  source.Span{File: fileID, Start: 0, End: 6},
	})

	var sb strings.Builder
	diagfmt.Pretty(&sb, bag, fs, diagfmt.PrettyOpts{})

	want := "b.py:1:1: WARNING PF1000: note\n"
	if got := sb.String(); got != want {
		t.Fatalf("pretty output:\nwant %q\ngot  %q", want, got)
	}
}
