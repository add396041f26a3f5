package driver

import (
	"strings"

	"pyfix/internal/diag"
	"pyfix/internal/lexer"
	"pyfix/internal/reflow"
	"pyfix/internal/source"
)

// ReflowOptions управляют переукладкой исходника.
type ReflowOptions struct {
	// MaxLineLength — целевая ширина строк (по умолчанию 79).
	MaxLineLength int
	// IndentWord — слово продолженного отступа (по умолчанию четыре пробела).
	IndentWord string
	// BreakAfterOpen переносит строку после первой открывающей скобки.
	BreakAfterOpen bool
	// All укладывает каждую логическую строку, а не только сверхдлинные.
	All bool
}

func (o ReflowOptions) withDefaults() ReflowOptions {
	if o.MaxLineLength < 1 {
		o.MaxLineLength = 79
	}
	if o.IndentWord == "" {
		o.IndentWord = "    "
	}
	return o
}

// ReflowResult — результат переукладки одного исходника.
type ReflowResult struct {
	FileSet *source.FileSet
	File    *source.File
	Output  string
	Changed bool
	Bag     *diag.Bag
}

// ReflowFile reads path and lays its logical lines out again.
func ReflowFile(path string, maxDiagnostics int, opts ReflowOptions) (*ReflowResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return reflowFile(fs, fs.Get(fileID), maxDiagnostics, opts), nil
}

// ReflowContent lays out in-memory content (stdin, тесты).
func ReflowContent(name string, content []byte, maxDiagnostics int, opts ReflowOptions) *ReflowResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	return reflowFile(fs, file, maxDiagnostics, opts)
}

// reflowFile идёт по файлу логическими строками: каждую либо укладывает
// заново, либо переносит в вывод как есть. Строки, которые не удаётся
// токенизировать или сгруппировать, остаются нетронутыми с диагностикой.
func reflowFile(fs *source.FileSet, f *source.File, maxDiagnostics int, opts ReflowOptions) *ReflowResult {
	opts = opts.withDefaults()
	bag := diag.NewBag(maxDiagnostics)

	var out strings.Builder
	lineNo := 1
	for lineNo <= f.NumLines() {
		logical, numLines := lexer.LogicalLine(f, lineNo)
		if numLines == 0 {
			break
		}

		flowed, ok := reflowLogical(f, logical, opts, bag)
		if ok {
			out.WriteString(flowed)
		} else {
			out.WriteString(logical)
			out.WriteByte('\n')
		}
		lineNo += numLines
	}

	output := out.String()
	if f.NumLines() == 0 {
		output = ""
	}
	return &ReflowResult{
		FileSet: fs,
		File:    f,
		Output:  output,
		Changed: output != string(f.Content),
		Bag:     bag,
	}
}

func reflowLogical(f *source.File, logical string, opts ReflowOptions, bag *diag.Bag) (string, bool) {
	if !opts.All && !hasOverlongLine(logical, opts.MaxLineLength) {
		return "", false
	}
	trimmed := strings.TrimSpace(logical)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		// Пустые и чисто комментарийные строки не трогаем.
		return "", false
	}

	reporter := &diag.BagReporter{Bag: bag}
	sub := source.NewFileSet()
	lx := lexer.New(sub.Get(sub.AddVirtual(f.Path, []byte(logical))), lexer.Options{Reporter: reporter})
	toks := lx.All()
	if bag.HasErrors() {
		return "", false
	}
	if len(toks) == 0 {
		return "", false
	}

	elems, ok := reflow.Parse(toks, reporter)
	if !ok {
		return "", false
	}

	indent := leadingBlank(logical)
	return reflow.Reflow(elems, reflow.Options{
		MaxWidth:        opts.MaxLineLength,
		Indent:          indent,
		ContinuedIndent: indent + opts.IndentWord,
		BreakAfterOpen:  opts.BreakAfterOpen,
	}), true
}

func hasOverlongLine(logical string, maxWidth int) bool {
	for _, line := range strings.Split(logical, "\n") {
		if len(line) > maxWidth {
			return true
		}
	}
	return false
}

func leadingBlank(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return s[:i]
		}
	}
	return s
}
