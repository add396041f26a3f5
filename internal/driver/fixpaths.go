package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"pyfix/internal/diag"
	"pyfix/internal/fix"
	"pyfix/internal/project"
	"pyfix/internal/source"
)

// FixPathsOptions управляют параллельной починкой набора файлов.
type FixPathsOptions struct {
	// MaxLineLength — целевая ширина строк (по умолчанию 79).
	MaxLineLength int
	// IndentWord — слово продолженного отступа (по умолчанию четыре пробела).
	IndentWord string
	// HangClosing переносит строку сразу после открывающей скобки.
	HangClosing bool
	// Codes фильтруют применяемые коды нарушений.
	Codes project.FixConfig
	// Jobs — число параллельных воркеров; <=0 означает GOMAXPROCS.
	Jobs int
	// NoCache отключает дисковый кэш результатов.
	NoCache bool
	// MaxDiagnostics ограничивает число диагностик на файл.
	MaxDiagnostics int
	// OnEvent, если задан, вызывается после завершения каждого файла.
	// Может вызываться из разных горутин.
	OnEvent func(Event)
}

// digest сворачивает настройки, влияющие на результат, в строку для ключа кэша.
func (o FixPathsOptions) digest() string {
	return fmt.Sprintf("w=%d;i=%q;h=%t;s=%s;x=%s",
		o.MaxLineLength, o.IndentWord, o.HangClosing,
		strings.Join(o.Codes.Select, ","), strings.Join(o.Codes.Ignore, ","))
}

// Event — уведомление о завершении починки одного файла.
type Event struct {
	Path    string
	Index   int // порядковый номер завершённого файла, с нуля
	Total   int
	Applied int
	Err     error
}

// FixPathResult содержит результат починки одного файла.
type FixPathResult struct {
	Path   string      // Путь к файлу, как его передал вызывающий
	Result *fix.Result // nil при ошибке ввода-вывода
	Bag    *diag.Bag   // Диагностики
	Cached bool        // Результат взят из дискового кэша
	Err    error       // Ошибка чтения файла
}

// ExpandPaths разворачивает каталоги в отсортированные списки *.py файлов.
// Обычные файлы проходят как есть.
func ExpandPaths(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".py") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// FixPaths применяет отчёты pycodestyle к набору файлов параллельно.
// Результаты идут в порядке files; кэш хранит готовый вывод по хешу
// содержимого и настроек.
func FixPaths(ctx context.Context, files []string, reports []fix.Report, opts FixPathsOptions) ([]FixPathResult, error) {
	if len(files) == 0 {
		return nil, nil
	}

	// Группируем отчёты по файлам
	byPath := make(map[string][]fix.Report, len(files))
	for _, rep := range reports {
		key := filepath.Clean(rep.Path)
		byPath[key] = append(byPath[key], rep)
	}

	var cache *DiskCache
	if !opts.NoCache {
		// Без кэша работаем, если каталог недоступен
		cache, _ = OpenDiskCache("pyfix")
	}

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FixPathResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func(i int, path string) func() error {
			return func() error {
				// Проверка отмены
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				res := fixOnePath(path, byPath[filepath.Clean(path)], cache, opts)
				results[i] = res

				if opts.OnEvent != nil {
					ev := Event{Path: path, Index: i, Total: len(files), Err: res.Err}
					if res.Result != nil {
						ev.Applied = len(res.Result.Applied)
					}
					opts.OnEvent(ev)
				}
				return nil
			}
		}(i, path))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func fixOnePath(path string, reports []fix.Report, cache *DiskCache, opts FixPathsOptions) FixPathResult {
	bag := diag.NewBag(opts.MaxDiagnostics)

	fileSet := source.NewFileSet()
	fileID, err := fileSet.Load(path)
	if err != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOLoadFileError,
			Message:  "failed to load file: " + err.Error(),
			Primary:  source.Span{},
		})
		return FixPathResult{Path: path, Bag: bag, Err: err}
	}
	file := fileSet.Get(fileID)

	key := FixCacheKey(file.Content, opts, reports)
	var payload DiskPayload
	if hit, err := cache.Get(key, &payload); err == nil && hit {
		return FixPathResult{
			Path: path,
			Result: &fix.Result{
				Path:    path,
				Applied: payload.Applied,
				Skipped: payload.Skipped,
				Output:  payload.Output,
				Changed: payload.Changed,
			},
			Bag:    bag,
			Cached: true,
		}
	}

	result, err := fix.Apply(file, reports, fix.Options{
		MaxLineLength: opts.MaxLineLength,
		IndentWord:    opts.IndentWord,
		HangClosing:   opts.HangClosing,
		Allow:         opts.Codes.Allowed,
	})
	if err != nil {
		// ErrNoFixes — штатный исход: файл уже в порядке
		result = &fix.Result{Path: path, Output: string(file.Content)}
	}

	_ = cache.Put(key, &DiskPayload{
		Schema:  diskCacheSchemaVersion,
		Path:    path,
		Output:  result.Output,
		Changed: result.Changed,
		Applied: result.Applied,
		Skipped: result.Skipped,
	})

	return FixPathResult{Path: path, Result: result, Bag: bag}
}
