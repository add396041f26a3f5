package fix

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"pyfix/internal/diag"
	"pyfix/internal/source"
)

// Report — одна запись внешнего pycodestyle-отчёта:
// <file>:<line>:<col>: <CODE> <message>
type Report struct {
	Path    string
	Line    int // 1-based
	Col     int // 1-based
	Code    string
	Message string
}

// ParseReports reads pycodestyle-style report lines. Malformed lines are
// reported through r and skipped; пустые строки игнорируются.
func ParseReports(in io.Reader, r diag.Reporter) ([]Report, error) {
	var out []Report

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		rep, err := parseReportLine(text)
		if err != nil {
			if r != nil {
				r.Report(diag.FixBadReportLine, diag.SevWarning, source.Span{},
					fmt.Sprintf("report line %d: %v", lineNo, err))
			}
			continue
		}
		out = append(out, rep)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("read report: %w", err)
	}
	return out, nil
}

func parseReportLine(text string) (Report, error) {
	// Откусываем три ":"-поля слева; дальше — код и сообщение.
	// Windows-пути с "C:\" не поддерживаются внешним детектором, так что
	// двоеточия слева принадлежат позиции.
	parts := strings.SplitN(text, ":", 4)
	if len(parts) != 4 {
		return Report{}, fmt.Errorf("want file:line:col: code message, got %q", text)
	}

	line, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || line < 1 {
		return Report{}, fmt.Errorf("bad line number %q", parts[1])
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || col < 1 {
		return Report{}, fmt.Errorf("bad column number %q", parts[2])
	}

	rest := strings.TrimSpace(parts[3])
	code, msg, _ := strings.Cut(rest, " ")
	if code == "" {
		return Report{}, fmt.Errorf("missing violation code in %q", text)
	}

	return Report{
		Path:    parts[0],
		Line:    line,
		Col:     col,
		Code:    code,
		Message: strings.TrimSpace(msg),
	}, nil
}

// DedupByLine оставляет по одной записи на физическую строку (последняя
// побеждает) и возвращает их в порядке убывания номера строки: правки,
// меняющие число строк, не сдвигают ещё не обработанные.
func DedupByLine(reports []Report) []Report {
	byLine := make(map[int]Report, len(reports))
	for _, rep := range reports {
		byLine[rep.Line] = rep
	}
	out := make([]Report, 0, len(byLine))
	for _, rep := range byLine {
		out = append(out, rep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Line > out[j].Line })
	return out
}
