// Package reflow lays out the tokens of one logical line into width-bounded
// physical lines.
//
// Назначение: перераскладка токенов длинной строки с каноничными пробелами
// и переносами. Вход — токены и дерево скобочных групп, выход — готовый текст.
// Не делает: токенизации, поиска нарушений, многопроходной сходимости, IO.
// Зависимости: internal/token.
//
// The engine works over a stream of emitted units (real tokens, spaces,
// indents, line breaks). Tokens are appended one by one; a small set of
// guards runs per insertion and may splice breaks into the already-emitted
// stream:
//
//   - inside brackets, the default-initializer guard keeps key=value
//     together and removes spaces around '=';
//   - inside brackets, a closing delimiter that overflows the width converts
//     the nearest earlier space on the line into a break;
//   - elsewhere, a token that does not fit starts a new line at the
//     continuation indent.
//
// Width is a soft constraint: an atom longer than the whole budget is
// emitted over-width rather than split.
package reflow
