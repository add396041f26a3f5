package fix_test

import (
	"strings"
	"testing"

	"pyfix/internal/diag"
	"pyfix/internal/fix"
)

func TestParseReports(t *testing.T) {
	input := strings.Join([]string{
		"app.py:3:10: E231 missing whitespace after ','",
		"",
		"app.py:7:1: W291 trailing whitespace",
		"not a report line",
		"app.py:12:80: E501 line too long (88 > 79 characters)",
	}, "\n")

	bag := diag.NewBag(8)
	reports, err := fix.ParseReports(strings.NewReader(input), &diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("report count:\nwant 3\ngot  %d (%+v)", len(reports), reports)
	}

	first := reports[0]
	if first.Path != "app.py" || first.Line != 3 || first.Col != 10 ||
		first.Code != "E231" || first.Message != "missing whitespace after ','" {
		t.Errorf("first report mismatch: %+v", first)
	}

	if !bag.HasWarnings() {
		t.Error("malformed line: want a warning diagnostic")
	}
}

func TestParseReportsRejectsBadPositions(t *testing.T) {
	cases := []string{
		"app.py:zero:1: E231 msg",
		"app.py:1:0: E231 msg",
		"app.py:1:1:",
	}
	for _, input := range cases {
		bag := diag.NewBag(8)
		reports, err := fix.ParseReports(strings.NewReader(input), &diag.BagReporter{Bag: bag})
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if len(reports) != 0 {
			t.Errorf("parse %q: want no reports, got %+v", input, reports)
		}
		if bag.Len() == 0 {
			t.Errorf("parse %q: want a diagnostic", input)
		}
	}
}

func TestDedupByLine(t *testing.T) {
	reports := []fix.Report{
		{Line: 3, Code: "E201"},
		{Line: 10, Code: "E501"},
		{Line: 3, Code: "W291"},
	}
	deduped := fix.DedupByLine(reports)
	if len(deduped) != 2 {
		t.Fatalf("dedup count:\nwant 2\ngot  %d", len(deduped))
	}
	// Нижние строки идут первыми, на строке 3 побеждает последняя запись.
	if deduped[0].Line != 10 || deduped[1].Line != 3 || deduped[1].Code != "W291" {
		t.Errorf("dedup result mismatch: %+v", deduped)
	}
}
