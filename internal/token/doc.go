// Package token defines lexical token kinds for Python source lines.
// Invariants:
//   - Token.Text is the exact source spelling (no normalization).
//   - Token.Span matches Text exactly (Begin..End).
//   - Keywords carry Kind Keyword; the spelling is recovered from Text.
//   - Comments ('#' to end of line) are real tokens, not trivia: the reflow
//     engine positions them explicitly.
//   - Whitespace never appears in the token stream; spacing is re-derived
//     by the layout engine.
package token
