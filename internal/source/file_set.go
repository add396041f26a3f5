package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and provides span resolution.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags, encoding string) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:       id,
		Path:     normalizedPath,
		Content:  content,
		LineIdx:  lineIdx,
		Hash:     hash,
		Flags:    flags,
		Encoding: encoding,
	})
	// Всегда обновляем индекс на последнюю версию файла.
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a Python file from disk, normalizes BOM/CRLF, honours a PEP 263
// coding cookie, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}

	encoding := ""
	if name, ok := codingCookie(content); ok {
		decoded, decodeErr := decodeContent(content, name)
		if decodeErr != nil {
			return 0, fmt.Errorf("%s: %w", path, decodeErr)
		}
		content = decoded
		encoding = name
		flags |= FileRecoded
	}

	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags, encoding), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	return fileSet.Add(name, content, FileVirtual, "")
}

// Get returns the file for the given id, or nil if the id is unknown.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

// Lookup returns the most recent FileID registered under path.
func (fileSet *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Len returns the number of files in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve converts a span into start and end line/column positions.
func (fileSet *FileSet) Resolve(sp Span) (start, end LineCol) {
	f := fileSet.Get(sp.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, sp.Start), toLineCol(f.LineIdx, sp.End)
}

// Lines splits the file content into physical lines without trailing newlines.
// The returned slice is freshly allocated on every call.
func (f *File) Lines() []string {
	if len(f.Content) == 0 {
		return nil
	}
	s := string(f.Content)
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Line returns the 1-based physical line n without its newline, or "" when
// n is out of range.
func (f *File) Line(n int) string {
	if n < 1 {
		return ""
	}
	start := uint32(0)
	if n > 1 {
		if n-2 >= len(f.LineIdx) {
			return ""
		}
		start = f.LineIdx[n-2] + 1
	}
	end := uint32(len(f.Content)) // #nosec G115 -- content length fits uint32
	if n-1 < len(f.LineIdx) {
		end = f.LineIdx[n-1]
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// NumLines returns the number of physical lines in the file.
func (f *File) NumLines() int {
	if len(f.Content) == 0 {
		return 0
	}
	n := len(f.LineIdx)
	if f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}
