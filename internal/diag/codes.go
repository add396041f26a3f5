package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка — на первое время.
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadIndent          Code = 1004

	// Reflow / группировка токенов
	FlowInfo             Code = 2000
	FlowUnbalancedOpen   Code = 2001
	FlowUnbalancedClose  Code = 2002
	FlowMismatchedClose  Code = 2003

	// Применение починок
	FixInfo          Code = 3000
	FixUnknownCode   Code = 3001
	FixBadReportLine Code = 3002
	FixLineOutOfFile Code = 3003

	// Ввод-вывод
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
)

func (c Code) String() string {
	return c.ID()
}

// ID возвращает стабильный строковый идентификатор кода, напр. "PF1002".
func (c Code) ID() string {
	return fmt.Sprintf("PF%04d", uint16(c))
}
