package lexer

import (
	"strings"

	"pyfix/internal/source"
)

// LogicalLine возвращает текст логической строки, начинающейся на физической
// строке startLine (1-based), и число покрытых физических строк. Продолжения
// учитываются двумя способами: незакрытые скобки и '\' в конце строки.
// Строковые литералы и комментарии не влияют на глубину скобок.
func LogicalLine(f *source.File, startLine int) (string, int) {
	if startLine < 1 || startLine > f.NumLines() {
		return "", 0
	}
	first := f.Line(startLine)

	var sb strings.Builder
	sb.WriteString(first)

	depth, cont, st := scanLineState(first, lineState{})
	count := 1

	for (depth > 0 || cont || st.inString) && startLine+count <= f.NumLines() {
		next := f.Line(startLine + count)
		sb.WriteByte('\n')
		sb.WriteString(next)
		st.depth = depth
		depth, cont, st = scanLineState(next, st)
		count++
	}
	return sb.String(), count
}

// lineState carries multi-line scanner state (triple-quoted strings).
type lineState struct {
	depth    int
	inString bool
	quote    byte
	triple   bool
}

// scanLineState прогоняет одну физическую строку через посимвольный сканер.
// Возвращает глубину скобок, признак '\'-продолжения и состояние строкового
// литерала на конце строки.
func scanLineState(line string, st lineState) (depth int, backslash bool, out lineState) {
	depth = st.depth
	i := 0
	for i < len(line) {
		b := line[i]

		if st.inString {
			if b == '\\' {
				i += 2
				continue
			}
			if b == st.quote {
				if !st.triple {
					st.inString = false
					i++
					continue
				}
				if i+2 < len(line) && line[i+1] == st.quote && line[i+2] == st.quote {
					st.inString = false
					i += 3
					continue
				}
			}
			i++
			continue
		}

		switch b {
		case '#':
			// Комментарий до конца строки; '\' внутри него не продолжение.
			st.depth = depth
			return depth, false, st
		case '\'', '"':
			st.inString = true
			st.quote = b
			st.triple = false
			if i+2 < len(line) && line[i+1] == b && line[i+2] == b {
				st.triple = true
				i += 3
				continue
			}
			i++
			continue
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case '\\':
			if i == len(line)-1 {
				st.depth = depth
				return depth, true, st
			}
		}
		i++
	}

	// Однострочный литерал, не закрытый до конца строки, продолжается только
	// если он тройной; одиночный считаем оборванным и закрываем.
	if st.inString && !st.triple {
		st.inString = false
	}
	st.depth = depth
	return depth, false, st
}
