// Package diag defines the diagnostic model shared by the lexer and the fix
// engine.
//
// It provides deterministic, serialisable data structures that capture
// findings produced while tokenizing and repairing source lines, and a
// light-weight Bag/Reporter pair so producers can emit diagnostics without
// coupling to storage or formatting layers. Rendering lives in
// internal/diagfmt; fix orchestration lives in internal/fix.
package diag
