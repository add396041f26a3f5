package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pyfix/internal/diag"
	"pyfix/internal/diagfmt"
	"pyfix/internal/driver"
	"pyfix/internal/fix"
	"pyfix/internal/project"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file.py|directory>...",
	Short: "Apply pycodestyle fix reports to Python sources",
	Long: `Fix reads a pycodestyle report (path:line:col: CODE message per line),
applies the supported fixes to the named files, and re-lays out lines
reported as overlong (E501).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().String("results", "", "pycodestyle report file ('-' reads stdin)")
	fixCmd.Flags().Bool("diff", false, "print unified diffs instead of writing")
	fixCmd.Flags().Bool("in-place", false, "rewrite changed files")
	fixCmd.Flags().Int("jobs", 0, "number of parallel workers (0 = number of CPUs)")
	fixCmd.Flags().Bool("no-cache", false, "disable the on-disk result cache")
	fixCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
	fixCmd.Flags().Int("max-line-length", 0, "maximum line length (default from pyfix.toml or 79)")
	fixCmd.Flags().Int("indent-size", 0, "continuation indent width (default from pyfix.toml or 4)")
	_ = fixCmd.MarkFlagRequired("results")
}

func runFix(cmd *cobra.Command, args []string) error {
	resultsPath, err := cmd.Flags().GetString("results")
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
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	style, err := styleFromFlags(cmd)
	if err != nil {
		return err
	}

	var codes project.FixConfig
	if manifest, found, err := project.LoadManifest("."); err != nil {
		return err
	} else if found {
		codes = manifest.Config.Fix
	}

	reports, err := readReports(cmd, resultsPath, maxDiagnostics)
	if err != nil {
		return err
	}

	files, err := driver.ExpandPaths(args)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintln(os.Stdout, "No Python files found.")
		}
		return nil
	}

	opts := driver.FixPathsOptions{
		MaxLineLength:  style.MaxLineLength,
		IndentWord:     strings.Repeat(" ", style.IndentSize),
		HangClosing:    style.HangClosing,
		Codes:          codes,
		Jobs:           jobs,
		NoCache:        noCache,
		MaxDiagnostics: maxDiagnostics,
	}

	var results []driver.FixPathResult
	if shouldUseTUI(mode) && !showDiff {
		results, err = runFixWithUI(cmd, files, reports, opts)
	} else {
		results, err = driver.FixPaths(cmd.Context(), files, reports, opts)
	}
	if err != nil {
		return err
	}

	return reportFixResults(cmd, results, showDiff, inPlace, quiet)
}

// readReports разбирает отчёт pycodestyle из файла или stdin.
func readReports(cmd *cobra.Command, path string, maxDiagnostics int) ([]fix.Report, error) {
	var in io.Reader
	if path == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open results: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		in = f
	}

	bag := diag.NewBag(maxDiagnostics)
	reports, err := fix.ParseReports(in, &diag.BagReporter{Bag: bag})
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	// Кривые строки отчёта — предупреждения, не повод останавливаться
	for _, d := range bag.Items() {
		fmt.Fprintf(os.Stderr, "%s: %s %s: %s\n", path, d.Severity, d.Code.ID(), d.Message)
	}
	return reports, nil
}

func reportFixResults(cmd *cobra.Command, results []driver.FixPathResult, showDiff, inPlace, quiet bool) error {
	applied := 0
	failures := 0

	for _, res := range results {
		if res.Err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "pyfix: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Result == nil {
			continue
		}
		applied += len(res.Result.Applied)

		switch {
		case showDiff:
			if res.Result.Changed {
				if err := diagfmt.WriteUnifiedDiff(os.Stdout, res.Path, originalContent(res), res.Result.Output); err != nil {
					return err
				}
			}
		case inPlace:
			if res.Result.Changed {
				if err := os.WriteFile(res.Path, []byte(res.Result.Output), 0o644); err != nil { // #nosec G306 -- source files are world-readable
					return fmt.Errorf("write %s: %w", res.Path, err)
				}
			}
		default:
			if _, err := io.WriteString(os.Stdout, res.Result.Output); err != nil {
				return err
			}
		}

		if quiet {
			continue
		}
		for _, item := range res.Result.Applied {
			fmt.Fprintf(os.Stderr, "fixed %s:%d [%s] %s\n", item.Path, item.Line, item.Code, item.Message)
		}
		for _, skip := range res.Result.Skipped {
			fmt.Fprintf(os.Stderr, "skipped %s:%d [%s]: %s\n", res.Path, skip.Line, skip.Code, skip.Reason)
		}
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "applied %d fix(es) across %d file(s)\n", applied, len(results))
	}
	if failures > 0 {
		return fmt.Errorf("%d file(s) failed", failures)
	}
	return nil
}

// originalContent восстанавливает исходное содержимое для диффа: вывод без
// изменений совпадает с исходником, иначе перечитываем файл.
func originalContent(res driver.FixPathResult) string {
	content, err := os.ReadFile(res.Path)
	if err != nil {
		return res.Result.Output
	}
	return string(content)
}
