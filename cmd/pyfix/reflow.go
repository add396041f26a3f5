package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pyfix/internal/diagfmt"
	"pyfix/internal/driver"
	"pyfix/internal/project"
)

var reflowCmd = &cobra.Command{
	Use:   "reflow [flags] file.py",
	Short: "Re-lay out overlong lines of a Python source file",
	Long: `Reflow splits each overlong logical line into a token tree and lays it
out again within the configured line length. Lines that already fit are
passed through untouched unless --all is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runReflow,
}

func init() {
	reflowCmd.Flags().Int("max-line-length", 0, "maximum line length (default from pyfix.toml or 79)")
	reflowCmd.Flags().Int("indent-size", 0, "continuation indent width (default from pyfix.toml or 4)")
	reflowCmd.Flags().Bool("break-after-open-bracket", false, "break the line right after the first open bracket")
	reflowCmd.Flags().Bool("all", false, "re-lay out every logical line, not only overlong ones")
	reflowCmd.Flags().Bool("diff", false, "print a unified diff instead of the result")
	reflowCmd.Flags().Bool("in-place", false, "rewrite the file instead of printing to stdout")
}

func runReflow(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	style, err := styleFromFlags(cmd)
	if err != nil {
		return err
	}
	breakAfterOpen, err := cmd.Flags().GetBool("break-after-open-bracket")
	if err != nil {
		return err
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	showDiff, err := cmd.Flags().GetBool("diff")
	if err != nil {
		return err
	}
	inPlace, err := cmd.Flags().GetBool("in-place")
	if err != nil {
		return err
	}
	if showDiff && inPlace {
		return fmt.Errorf("--diff and --in-place are mutually exclusive")
	}
	if inPlace && filePath == "-" {
		return fmt.Errorf("--in-place cannot be used with stdin")
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	opts := driver.ReflowOptions{
		MaxLineLength:  style.MaxLineLength,
		IndentWord:     strings.Repeat(" ", style.IndentSize),
		BreakAfterOpen: breakAfterOpen || style.HangClosing,
		All:            all,
	}

	var result *driver.ReflowResult
	if filePath == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		result = driver.ReflowContent("<stdin>", content, maxDiagnostics, opts)
	} else {
		result, err = driver.ReflowFile(filePath, maxDiagnostics, opts)
		if err != nil {
			return fmt.Errorf("reflow failed: %w", err)
		}
	}

	// Строки, которые не удалось уложить, остаются как есть; причины — в stderr
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: true,
		})
	}

	switch {
	case showDiff:
		return diagfmt.WriteUnifiedDiff(os.Stdout, result.File.Path, string(result.File.Content), result.Output)
	case inPlace:
		if !result.Changed {
			return nil
		}
		return os.WriteFile(filePath, []byte(result.Output), 0o644) // #nosec G306 -- source files are world-readable
	default:
		_, err = io.WriteString(os.Stdout, result.Output)
		return err
	}
}

// styleFromFlags читает стиль из pyfix.toml (если найден) и накладывает
// поверх явно переданные флаги.
func styleFromFlags(cmd *cobra.Command) (project.StyleConfig, error) {
	style := project.Default().Style
	if manifest, found, err := project.LoadManifest("."); err != nil {
		return style, err
	} else if found {
		style = manifest.Config.Style
	}

	if cmd.Flags().Changed("max-line-length") {
		v, err := cmd.Flags().GetInt("max-line-length")
		if err != nil {
			return style, err
		}
		style.MaxLineLength = v
	}
	if cmd.Flags().Changed("indent-size") {
		v, err := cmd.Flags().GetInt("indent-size")
		if err != nil {
			return style, err
		}
		style.IndentSize = v
	}
	if style.MaxLineLength < 1 || style.IndentSize < 1 {
		return style, fmt.Errorf("line length and indent size must be positive")
	}
	return style, nil
}
