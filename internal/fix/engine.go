package fix

import (
	"errors"
	"fmt"
	"strings"

	"pyfix/internal/diag"
	"pyfix/internal/lexer"
	"pyfix/internal/reflow"
	"pyfix/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Options configures one fix pass over one file.
type Options struct {
	// MaxLineLength — порог E501 и ширина переукладки (по умолчанию 79).
	MaxLineLength int
	// IndentWord — слово отступа для продолженных строк ("    ").
	IndentWord string
	// HangClosing переносит аргументы сразу после открывающей скобки.
	HangClosing bool
	// Allow фильтрует коды (nil — разрешены все поддерживаемые).
	Allow func(code string) bool
}

func (o Options) withDefaults() Options {
	if o.MaxLineLength < 1 {
		o.MaxLineLength = 79
	}
	if o.IndentWord == "" {
		o.IndentWord = "    "
	}
	return o
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Code    string
	Line    int
	Path    string
	Message string
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	Code   string
	Line   int
	Reason string
}

// Result aggregates the outcome of one pass over one file.
type Result struct {
	Path    string
	Applied []AppliedFix
	Skipped []SkippedFix
	Output  string
	Changed bool
}

// Apply выполняет один проход починок по файлу: на каждую физическую строку
// берётся не больше одной записи отчёта, записи обрабатываются от нижних
// строк к верхним, чтобы переукладка E501 не сдвигала ещё не обработанные.
// Файл на диске не трогается: результат возвращается в Result.Output.
func Apply(f *source.File, reports []Report, opts Options) (*Result, error) {
	if f == nil {
		return nil, fmt.Errorf("fix: file is nil")
	}
	opts = opts.withDefaults()

	result := &Result{
		Path:    f.Path,
		Applied: make([]AppliedFix, 0),
		Skipped: make([]SkippedFix, 0),
	}

	lines := f.Lines()
	for _, rep := range DedupByLine(reports) {
		if opts.Allow != nil && !opts.Allow(rep.Code) {
			result.Skipped = append(result.Skipped, SkippedFix{
				Code: rep.Code, Line: rep.Line, Reason: "disabled by configuration",
			})
			continue
		}
		if rep.Line > len(lines) {
			result.Skipped = append(result.Skipped, SkippedFix{
				Code: rep.Code, Line: rep.Line, Reason: "line is out of file",
			})
			continue
		}

		var (
			applied bool
			reason  string
		)
		if rep.Code == "E501" {
			lines, applied, reason = applyReflow(lines, rep, opts)
		} else if rule, known := lineRules[rep.Code]; known {
			fixed, ok := rule(lines[rep.Line-1], rep)
			switch {
			case !ok:
				reason = "rule did not match the line"
			case fixed == lines[rep.Line-1]:
				reason = "line already conforms"
			default:
				lines[rep.Line-1] = fixed
				applied = true
			}
		} else {
			reason = "unsupported violation code"
		}

		if applied {
			result.Applied = append(result.Applied, AppliedFix{
				Code: rep.Code, Line: rep.Line, Path: f.Path, Message: rep.Message,
			})
		} else {
			result.Skipped = append(result.Skipped, SkippedFix{
				Code: rep.Code, Line: rep.Line, Reason: reason,
			})
		}
	}

	// Applied собирался от нижних строк к верхним; наружу отдаём сверху вниз.
	reverseApplied(result.Applied)

	result.Output = ""
	if len(lines) > 0 {
		result.Output = strings.Join(lines, "\n") + "\n"
	}
	result.Changed = result.Output != string(f.Content)

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}
	return result, nil
}

// applyReflow прогоняет логическую строку, начинающуюся на rep.Line, через
// движок переукладки и заменяет покрытые ею физические строки результатом.
func applyReflow(lines []string, rep Report, opts Options) ([]string, bool, string) {
	// Логическую строку собираем по текущему содержимому, а не по файлу:
	// предыдущие починки уже могли изменить строки ниже.
	fs := source.NewFileSet()
	patched := fs.Get(fs.AddVirtual(rep.Path, []byte(strings.Join(lines, "\n")+"\n")))

	logical, numLines := lexer.LogicalLine(patched, rep.Line)
	if numLines == 0 {
		return lines, false, "line is out of file"
	}
	indent := leadingWhitespace(logical)

	bag := diag.NewBag(8)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fs.AddVirtual("<logical>", []byte(logical))), lexer.Options{Reporter: reporter})
	toks := lx.All()
	if bag.HasErrors() {
		return lines, false, "logical line does not tokenize"
	}

	elems, ok := reflow.Parse(toks, reporter)
	if !ok {
		return lines, false, "unbalanced brackets in logical line"
	}

	flowed := strings.TrimSuffix(reflow.Reflow(elems, reflow.Options{
		MaxWidth:        opts.MaxLineLength,
		Indent:          indent,
		ContinuedIndent: indent + opts.IndentWord,
		BreakAfterOpen:  opts.HangClosing,
	}), "\n")

	covered := strings.Join(lines[rep.Line-1:rep.Line-1+numLines], "\n")
	if flowed == covered {
		return lines, false, "no shorter layout found"
	}

	out := make([]string, 0, len(lines)+2)
	out = append(out, lines[:rep.Line-1]...)
	out = append(out, strings.Split(flowed, "\n")...)
	out = append(out, lines[rep.Line-1+numLines:]...)
	return out, true, ""
}

func leadingWhitespace(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return s[:i]
		}
	}
	return s
}

func reverseApplied(applied []AppliedFix) {
	for i, j := 0, len(applied)-1; i < j; i, j = i+1, j-1 {
		applied[i], applied[j] = applied[j], applied[i]
	}
}
