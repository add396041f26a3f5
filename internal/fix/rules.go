package fix

import (
	"regexp"
	"strings"
)

// ruleFunc чинит одну физическую строку. ok=false означает, что правило
// не смогло примениться (строка возвращается как есть).
type ruleFunc func(line string, rep Report) (fixed string, ok bool)

// lineRules связывает код нарушения с построчной починкой. E501 сюда не
// входит: сверхдлинные строки идут через движок переукладки.
var lineRules = map[string]ruleFunc{
	"E201": fixE201,
	"E202": fixE202,
	"E203": fixE203,
	"E211": fixE211,
	"E221": fixE221,
	"E222": fixE221, // same compression, whitespace after the operator
	"E225": fixE225,
	"E231": fixE231,
	"E251": fixE251,
	"E261": fixE261,
	"E262": fixE262,
	"W291": fixW291,
	"W293": fixW293,
}

var (
	reOpenParenSpace   = regexp.MustCompile(`\(\s+`)
	reOpenBracketSpace = regexp.MustCompile(`\[\s+`)
	reOpenBraceSpace   = regexp.MustCompile(`{\s+`)
	reSpaceCloseParen  = regexp.MustCompile(`\s+\)`)
	reSpaceCloseBrk    = regexp.MustCompile(`\s+]`)
	reSpaceCloseBrace  = regexp.MustCompile(`\s+}`)
	reSpaceColon       = regexp.MustCompile(`\s+:`)
	reSpaceComma       = regexp.MustCompile(`\s+,`)
	reSpaceOpenParen   = regexp.MustCompile(`\s+\(`)
	reSpaceOpenBracket = regexp.MustCompile(`\s+\[`)
	reSpacedEqual      = regexp.MustCompile(`\s*=\s*`)
	reCommentRun       = regexp.MustCompile(`##* *`)
)

// E201: whitespace after '(' / '[' / '{'.
func fixE201(line string, _ Report) (string, bool) {
	fixed := reOpenParenSpace.ReplaceAllString(line, "(")
	fixed = reOpenBracketSpace.ReplaceAllString(fixed, "[")
	fixed = reOpenBraceSpace.ReplaceAllString(fixed, "{")
	return fixed, true
}

// E202: whitespace before ')' / ']' / '}'.
func fixE202(line string, _ Report) (string, bool) {
	fixed := reSpaceCloseParen.ReplaceAllString(line, ")")
	fixed = reSpaceCloseBrk.ReplaceAllString(fixed, "]")
	fixed = reSpaceCloseBrace.ReplaceAllString(fixed, "}")
	return fixed, true
}

// E203: whitespace before ':' / ','.
func fixE203(line string, _ Report) (string, bool) {
	fixed := reSpaceColon.ReplaceAllString(line, ":")
	fixed = reSpaceComma.ReplaceAllString(fixed, ",")
	return fixed, true
}

// E211: whitespace before '(' / '[' в вызове или индексации.
func fixE211(line string, _ Report) (string, bool) {
	fixed := reSpaceOpenParen.ReplaceAllString(line, "(")
	fixed = reSpaceOpenBracket.ReplaceAllString(fixed, "[")
	return fixed, true
}

// E221/E222: run of whitespace around an operator сжимается до одного
// пробела. Детектор может указывать и на первый лишний пробел, и на сам
// оператор, поэтому от позиции нарушения идём влево до пробельного участка.
func fixE221(line string, rep Report) (string, bool) {
	i := rep.Col - 1
	if i >= len(line) {
		i = len(line) - 1
	}
	for i >= 0 && !isSpaceByte(line[i]) {
		i--
	}
	if i < 0 {
		return line, false
	}

	start, end := i, i+1
	for start > 0 && isSpaceByte(line[start-1]) {
		start--
	}
	for end < len(line) && isSpaceByte(line[end]) {
		end++
	}
	return line[:start] + " " + line[end:], true
}

// E225: missing whitespace around operator — вставляем пробел на месте
// нарушения, но только если строка без пробелов не изменилась.
func fixE225(line string, rep Report) (string, bool) {
	offset := rep.Col - 1
	if offset < 0 || offset > len(line) {
		return line, false
	}
	fixed := line[:offset] + " " + line[offset:]
	if strings.ReplaceAll(fixed, " ", "") != strings.ReplaceAll(line, " ", "") {
		return line, false
	}
	return fixed, true
}

// E231: missing whitespace after ',' / ':' / ';'. Символ берём из текста
// сообщения ("missing whitespace after ','").
func fixE231(line string, rep Report) (string, bool) {
	ch := targetCharFromMessage(rep.Message)
	if ch == 0 {
		return line, false
	}

	var sb strings.Builder
	for i := 0; i < len(line); i++ {
		sb.WriteByte(line[i])
		if line[i] == ch && i+1 < len(line) && !isSpaceByte(line[i+1]) {
			sb.WriteByte(' ')
		}
	}
	return sb.String(), true
}

// E251: whitespace around default-parameter '='.
func fixE251(line string, rep Report) (string, bool) {
	c := rep.Col - 1
	if c < 0 || c > len(line) {
		return line, false
	}
	loc := reSpacedEqual.FindStringIndex(line[c:])
	if loc == nil {
		return line, false
	}
	return line[:c] + line[c:c+loc[0]] + "=" + line[c+loc[1]:], true
}

// E261: at least two spaces before inline comment.
func fixE261(line string, rep Report) (string, bool) {
	c := rep.Col
	switch {
	case c < len(line) && line[c] == '#':
		// позиция уже на решётке
	case c-1 >= 0 && c-1 < len(line) && line[c-1] == '#':
		// детектор иногда ошибается на единицу ("{# comment")
		c--
	default:
		return line, false
	}

	spaces := 0
	for c-spaces-1 >= 0 && line[c-spaces-1] == ' ' {
		spaces++
	}
	if spaces >= 2 {
		return line, false
	}
	return line[:c] + strings.Repeat(" ", 2-spaces) + line[c:], true
}

// E262: inline comment should start with '# '.
func fixE262(line string, _ Report) (string, bool) {
	return reCommentRun.ReplaceAllString(line, "# "), true
}

// W291: trailing whitespace.
func fixW291(line string, _ Report) (string, bool) {
	return strings.TrimRight(line, " \t"), true
}

// W293: whitespace on blank line.
func fixW293(line string, _ Report) (string, bool) {
	return "", true
}

func targetCharFromMessage(msg string) byte {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return 0
	}
	last := fields[len(fields)-1]
	// Ожидаем "','" или "':'".
	if len(last) >= 3 && last[0] == '\'' && last[2] == '\'' {
		return last[1]
	}
	return 0
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t'
}
