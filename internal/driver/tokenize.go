package driver

import (
	"pyfix/internal/diag"
	"pyfix/internal/lexer"
	"pyfix/internal/source"
	"pyfix/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	// Создаём диагностический пакет
	bag := diag.NewBag(maxDiagnostics)

	lx := lexer.New(file, lexer.Options{
		Reporter: &diag.BagReporter{Bag: bag},
	})

	// Токенизация: собираем все токены до EOF
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// TokenizeContent токенизирует содержимое, не связанное с файлом на диске
// (stdin, тесты).
func TokenizeContent(name string, content []byte, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{
		Reporter: &diag.BagReporter{Bag: bag},
	})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
