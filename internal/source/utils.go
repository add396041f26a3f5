package source

import (
	"path/filepath"
	"slices"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены.
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- i < len(content) which fits uint32 for any source we accept
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// Если LineIdx пустой, то весь файл — одна строка.
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// Бинарный поиск первой позиции \n >= off.
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) / 2
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	return LineCol{
		Line: uint32(lo) + 1, // #nosec G115 -- lo <= len(lineIdx)
		Col:  off - lineIdx[lo-1],
	}
}

func normalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
