package diag

import (
	"pyfix/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// Reporter — минимальный контракт получения диагностик от фаз.
// Реализации: BagReporter (кладёт в Bag) и nil (диагностики игнорируются).
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string)
}

// BagReporter adapts a Bag to the Reporter interface.
type BagReporter struct {
	Bag *Bag
}

func (r *BagReporter) Report(code Code, sev Severity, primary source.Span, msg string) {
	if r == nil || r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
	})
}
