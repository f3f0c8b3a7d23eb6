package source

type (
	// FileID uniquely identifies a source within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source.
	FileFlags uint8
)

const (
	// FileVirtual indicates the source was added from memory (a single
	// expression string, stdin, or a test) rather than loaded from disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source: either a logic
// file loaded from disk or a lone expression registered via AddVirtual.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
