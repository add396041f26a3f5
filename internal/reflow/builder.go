package reflow

import (
	"bytes"
	"strings"

	"pyfix/internal/token"
)

// Builder accumulates emitted units for the reflowed line and tracks the
// current bracket depth and line width.
//
// Каждый токен добавляется через AddItem; охранные эвристики выполняются в
// фиксированном порядке: сперва защита default-инициализатора, затем перенос
// по закрывающему разделителю. Порядок существенен, когда обе применимы к
// одному токену.
type Builder struct {
	units    []unit
	depth    int
	maxWidth int
}

// NewBuilder creates a Builder for the given maximum line width.
func NewBuilder(maxWidth int) *Builder {
	return &Builder{
		units:    make([]unit, 0, 32),
		maxWidth: maxWidth,
	}
}

// MaxWidth returns the width budget of the Builder.
func (b *Builder) MaxWidth() int {
	return b.maxWidth
}

// Depth returns the current bracket depth.
func (b *Builder) Depth() int {
	return b.depth
}

// AddItem appends tok to the line, reflowing what is already emitted to get
// the best formatting around the insertion. indentAmt is the indentation for
// any break the guards decide to introduce.
func (b *Builder) AddItem(tok token.Token, indentAmt int) {
	text := tok.Text

	switch {
	case len(b.units) > 0 && b.depth > 0:
		b.preventInitializerSplit(tok, indentAmt)

		if isSplitDelimiter(text) {
			b.splitAfterDelimiter(tok, indentAmt)
		}

	case len(b.units) > 0 && !b.LineEmpty():
		if b.FitsOnCurrentLine(tok.Size()) {
			b.enforceSpace(tok)
		} else {
			// Line break for the new item.
			b.units = append(b.units, breakUnit(), indentUnit(indentAmt))
		}
	}

	b.units = append(b.units, tokenUnit(tok))

	switch {
	case tok.IsOpenBracket():
		b.depth++
	case tok.IsCloseBracket():
		b.depth--
		if b.depth < 0 {
			panic("reflow: bracket depth went negative; malformed token tree")
		}
	}
}

// AddComment appends a comment token preceded by exactly two spaces,
// counting any spaces already at the end of the stream.
func (b *Builder) AddComment(tok token.Token) {
	need := 2
	if n := len(b.units); n > 0 && b.units[n-1].kind == unitSpace {
		need--
		if n > 1 && b.units[n-2].kind == unitSpace {
			need--
		}
	}
	for ; need > 0; need-- {
		b.units = append(b.units, spaceUnit())
	}
	b.units = append(b.units, tokenUnit(tok))
}

// AddIndent appends an indentation of n characters.
func (b *Builder) AddIndent(n int) {
	b.units = append(b.units, indentUnit(n))
}

// AddLineBreak appends a line break followed by the given indentation.
func (b *Builder) AddLineBreak(indent string) {
	b.units = append(b.units, breakUnit())
	b.AddIndent(len(indent))
}

// AddSpaceIfNeeded appends a single space when the spacing rules require one
// between the most recent real token and currText. equal enables spacing
// around '=' (top-level assignments; default initializers keep it tight).
func (b *Builder) AddSpaceIfNeeded(currText string, equal bool) {
	if len(b.units) == 0 || currText == "" {
		return
	}
	last := b.units[len(b.units)-1]
	if last.isBlank() {
		return
	}
	prev := last.tok

	var prevPrev *token.Token
	for i := len(b.units) - 2; i >= 0; i-- {
		if !b.units[i].isBlank() {
			prevPrev = &b.units[i].tok
			break
		}
	}

	prevText := prev.Text
	prevPrevText := ""
	if prevPrev != nil {
		prevPrevText = prevPrev.Text
	}

	currFirst := currText[0]
	prevLast := prevText[len(prevText)-1]

	// The previous item was a keyword or identifier and the current item
	// isn't an operator that doesn't require a space.
	wordBefore := (prev.IsKeyword() || prev.IsString() || prev.IsName() || prev.IsNumber()) &&
		(!bytesContains("([{.,:}])", currFirst) || (currFirst == '=' && equal))

	// Don't place spaces around a '.', unless it's in an 'import' statement.
	outsideImport := prevPrevText != "from" && prevLast != '.' && currText != "import"

	binaryOp := prevPrev != nil &&
		prevText != "+" && prevText != "-" &&
		(prevPrev.IsName() || prevPrev.IsNumber() || prevPrev.IsString()) &&
		isArithOp(prevText)

	spacedPair :=
		// Don't split up ending brackets by spaces.
		(bytesContains("}])", prevLast) && !bytesContains(".,}])", currFirst)) ||
			// Put a space after a colon or comma.
			bytesContains(":,", prevLast) ||
			// Put space around '=' if asked to.
			(equal && prevText == "=") ||
			// Put spaces around non-unary arithmetic operators.
			binaryOp

	// Don't place a space before a colon, and keep 'from x import' tight.
	punctuation := outsideImport && currFirst != ':' && spacedPair

	if wordBefore || punctuation {
		b.units = append(b.units, spaceUnit())
	}
}

// preventInitializerSplit keeps a default initializer on one line.
//
// When there is a default initializer, it's best to keep it all on the same
// line, even if it goes over the maximum allowable line length. This goes
// back along the current line to determine whether we have one, removes
// extraneous whitespace, and adds a break/indent before the key if needed.
func (b *Builder) preventInitializerSplit(tok token.Token, indentAmt int) {
	if tok.Text == "=" {
		// This is the assignment in the initializer. Just remove spaces.
		b.deleteTrailingBlank()
		return
	}

	// Retrieve the last two real units, tracking their indices.
	prevIdx, prevPrevIdx := -1, -1
	for i := len(b.units) - 1; i >= 0; i-- {
		if b.units[i].isBlank() {
			continue
		}
		if prevIdx == -1 {
			prevIdx = i
		} else {
			prevPrevIdx = i
			break
		}
	}

	if prevIdx == -1 || prevPrevIdx == -1 || b.units[prevIdx].tok.Text != "=" {
		return
	}

	b.deleteTrailingBlank()

	if prevPrevIdx > 0 && b.units[prevPrevIdx-1].kind == unitIndent {
		// The initializer is already the only item on this line.
		return
	}
	if b.FitsOnCurrentLine(tok.Size() + 1) {
		return
	}

	// Replace the space before the key with a break/indent combo.
	if prevPrevIdx > 0 && b.units[prevPrevIdx-1].kind == unitSpace {
		b.remove(prevPrevIdx - 1)
		prevPrevIdx--
	}
	b.splice(prevPrevIdx, breakUnit(), indentUnit(indentAmt))
}

// splitAfterDelimiter breaks the line before an overflowing delimiter,
// preferring the break earlier in the line so the delimiter never dangles
// past the width budget.
func (b *Builder) splitAfterDelimiter(tok token.Token, indentAmt int) {
	b.deleteTrailingBlank()

	if b.FitsOnCurrentLine(tok.Size()) {
		return
	}

	lastSpace := -1
	for i := len(b.units) - 1; i >= 0; i-- {
		k := b.units[i].kind
		if k == unitSpace {
			lastSpace = i
			break
		}
		if k == unitBreak || k == unitIndent {
			return
		}
	}
	if lastSpace < 0 {
		return
	}

	// Convert the space into a break/indent combo.
	b.remove(lastSpace)
	b.splice(lastSpace, breakUnit(), indentUnit(indentAmt))
}

// enforceSpace adds a space where the table-driven rules would not: around
// the '.' of a relative import and between 'import' and '('.
func (b *Builder) enforceSpace(tok token.Token) {
	if len(b.units) == 0 || b.units[len(b.units)-1].isBlank() {
		return
	}

	var prev *token.Token
	for i := len(b.units) - 1; i >= 0; i-- {
		if !b.units[i].isBlank() {
			prev = &b.units[i].tok
			break
		}
	}
	if prev == nil {
		return
	}

	text := tok.Text
	prevText := prev.Text
	if (text == "." && prevText == "from") ||
		(text == "import" && prevText == ".") ||
		(text == "(" && prevText == "import") {
		b.units = append(b.units, spaceUnit())
	}
}

// deleteTrailingBlank removes whitespace-shaped units from the end.
func (b *Builder) deleteTrailingBlank() {
	for len(b.units) > 0 && b.units[len(b.units)-1].isBlank() {
		b.units = b.units[:len(b.units)-1]
	}
}

// FitsOnCurrentLine reports whether extent more characters fit on the
// current line.
func (b *Builder) FitsOnCurrentLine(extent int) bool {
	return b.CurrentSize()+extent <= b.maxWidth
}

// FitsOnEmptyLine reports whether extent characters fit on a fresh line.
func (b *Builder) FitsOnEmptyLine(extent int) bool {
	return extent <= b.maxWidth
}

// CurrentSize returns the width of the current (last) line, including its
// indentation.
func (b *Builder) CurrentSize() int {
	size := 0
	for i := len(b.units) - 1; i >= 0; i-- {
		size += b.units[i].size()
		if b.units[i].kind == unitBreak {
			break
		}
	}
	return size
}

// LineEmpty reports whether the current line holds no real token yet.
func (b *Builder) LineEmpty() bool {
	if len(b.units) == 0 {
		return false
	}
	k := b.units[len(b.units)-1].kind
	return k == unitBreak || k == unitIndent
}

// Emit serializes the unit stream. Trailing whitespace is stripped from
// every line and the result ends with exactly one newline.
func (b *Builder) Emit() string {
	var buf []byte
	for _, u := range b.units {
		if u.kind == unitBreak {
			buf = bytes.TrimRight(buf, " \t")
		}
		buf = append(buf, u.text()...)
	}
	buf = bytes.TrimRight(buf, " \t\n")
	return string(append(buf, '\n'))
}

// remove deletes the unit at idx.
func (b *Builder) remove(idx int) {
	b.units = append(b.units[:idx], b.units[idx+1:]...)
}

// splice inserts units at idx, keeping their order.
func (b *Builder) splice(idx int, us ...unit) {
	tail := make([]unit, len(b.units)-idx)
	copy(tail, b.units[idx:])
	b.units = append(b.units[:idx], us...)
	b.units = append(b.units, tail...)
}

func isSplitDelimiter(text string) bool {
	return len(text) == 1 && bytesContains(".,)]}", text[0])
}

func isArithOp(text string) bool {
	switch text {
	case "+", "-", "%", "*", "/", "//", "**":
		return true
	default:
		return false
	}
}

func bytesContains(set string, b byte) bool {
	return strings.IndexByte(set, b) >= 0
}
