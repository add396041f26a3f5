package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"pyfix/internal/source"
	"pyfix/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		// Получаем позицию токена
		startPos, endPos := fs.Resolve(tok.Span)

		// Выводим информацию о токене
		fmt.Fprintf(w, "%3d: %s", i+1, padKind(tok.Kind.String(), 10))

		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}

		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// padKind выравнивает имя вида токена по ширине столбца.
func padKind(kind string, width int) string {
	return runewidth.FillRight(kind, width)
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	var output []TokenOutput

	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		})

		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
