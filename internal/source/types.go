package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileRecoded indicates the content was transcoded to UTF-8 from the
	// encoding declared in a PEP 263 coding cookie.
	FileRecoded
)

// File captures metadata and content for a single Python source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
	// Encoding хранит имя кодировки из coding cookie ("" для чистого UTF-8).
	Encoding string
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
