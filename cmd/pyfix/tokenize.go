package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pyfix/internal/diagfmt"
	"pyfix/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.py",
	Short: "Tokenize a Python source file",
	Long:  `Tokenize breaks down a Python source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	// Выполняем токенизацию: "-" читает stdin
	var result *driver.TokenizeResult
	if filePath == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		result = driver.TokenizeContent("<stdin>", content, maxDiagnostics)
	} else {
		result, err = driver.Tokenize(filePath, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		opts := diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: true,
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, opts)
	}

	// Выводим токены в выбранном формате
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// useColor решает, раскрашивать ли вывод в w по флагу --color.
func useColor(cmd *cobra.Command, w *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(w))
}
