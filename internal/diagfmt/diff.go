package diagfmt

import (
	"fmt"
	"io"
	"strings"
)

// editKind маркирует строку в размеченной последовательности диффа.
type editKind uint8

const (
	editEqual editKind = iota
	editDelete
	editInsert
)

type editLine struct {
	kind editKind
	text string
}

// WriteUnifiedDiff prints a unified diff of two versions of one file with
// three lines of context per hunk. A missing trailing newline is reported
// the way diff(1) does.
func WriteUnifiedDiff(w io.Writer, path, before, after string) error {
	if before == after {
		return nil
	}
	edits := diffLines(splitLines(before), splitLines(after))

	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s\n", path, path); err != nil {
		return err
	}
	return writeHunks(w, edits)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n\\ No newline at end of file"
	}
	return lines
}

// diffLines строит последовательность правок по LCS двух наборов строк.
func diffLines(a, b []string) []editLine {
	n, m := len(a), len(b)

	// lcs[i][j] — длина LCS хвостов a[i:], b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var edits []editLine
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			edits = append(edits, editLine{editEqual, a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			edits = append(edits, editLine{editDelete, a[i]})
			i++
		default:
			edits = append(edits, editLine{editInsert, b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		edits = append(edits, editLine{editDelete, a[i]})
	}
	for ; j < m; j++ {
		edits = append(edits, editLine{editInsert, b[j]})
	}
	return edits
}

const diffContext = 3

// writeHunks группирует правки в ханки с контекстом и печатает их.
func writeHunks(w io.Writer, edits []editLine) error {
	// Позиции правок (не-equal) в общей последовательности.
	var changed []int
	for i, e := range edits {
		if e.kind != editEqual {
			changed = append(changed, i)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	idx := 0
	for idx < len(changed) {
		// Расширяем ханк, пока соседние правки ближе двойного контекста.
		lo := max(changed[idx]-diffContext, 0)
		hi := changed[idx] + diffContext
		for idx+1 < len(changed) && changed[idx+1]-diffContext <= hi+1 {
			idx++
			hi = changed[idx] + diffContext
		}
		hi = min(hi, len(edits)-1)
		idx++

		hunkA, hunkB := lineNumbersAt(edits, lo)

		var aCount, bCount int
		var body strings.Builder
		for i := lo; i <= hi; i++ {
			switch edits[i].kind {
			case editEqual:
				body.WriteString(" " + edits[i].text + "\n")
				aCount++
				bCount++
			case editDelete:
				body.WriteString("-" + edits[i].text + "\n")
				aCount++
			case editInsert:
				body.WriteString("+" + edits[i].text + "\n")
				bCount++
			}
		}

		if _, err := fmt.Fprintf(w, "@@ -%d,%d +%d,%d @@\n%s",
			hunkA, aCount, hunkB, bCount, body.String()); err != nil {
			return err
		}
	}
	return nil
}

// lineNumbersAt возвращает номера строк обеих версий на позиции pos.
func lineNumbersAt(edits []editLine, pos int) (aLine, bLine int) {
	aLine, bLine = 1, 1
	for i := 0; i < pos; i++ {
		switch edits[i].kind {
		case editEqual:
			aLine++
			bLine++
		case editDelete:
			aLine++
		case editInsert:
			bLine++
		}
	}
	return aLine, bLine
}
