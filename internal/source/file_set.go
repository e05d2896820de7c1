package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// FileSet owns every source buffer of one tally invocation.
type FileSet struct {
	files   []File
	baseDir string // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
	}
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir возвращает базовую директорию или текущую рабочую.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Len returns the number of files in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Add stores content, builds the line index and returns a new FileID.
// The same path added twice yields two IDs; both stay readable.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	name := path
	if flags&FileVirtual == 0 {
		name = cleanPath(path)
	}
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    name,
		Content: content,
		LineIdx: newlineOffsets(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return id
}

// Load reads a file from disk, strips a BOM, folds CRLF and NFC-normalises the text.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := stripBOM(content)
	content, hadCRLF := foldCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	if !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= FileNormalizedNFC
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory buffer; name is kept verbatim (e.g. "<stdin>").
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file for id.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		panic(fmt.Errorf("source: unknown file id %d", id))
	}
	return &fileSet.files[id]
}

// Resolve converts a span into 1-based line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	return span.Start.Human(), span.End.Human()
}

// LineCount returns the number of lines; an empty buffer has one line.
func (f *File) LineCount() uint32 {
	n, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	return n + 1
}

// LineText returns the text of a 0-based line without its newline.
// Out-of-range lines yield "".
func (f *File) LineText(line uint32) string {
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if line >= f.LineCount() {
		return ""
	}
	var start uint32
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	end := lenContent
	if int(line) < len(f.LineIdx) {
		end = f.LineIdx[line]
	}
	if start > lenContent {
		return ""
	}
	return string(f.Content[start:end])
}

// GetLine returns a 1-based line, kept for callers that think in editor lines.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	return f.LineText(lineNum - 1)
}

// PositionAt rebuilds a Position for a byte offset by walking runes from the line start.
// Offsets past the end clamp to the end of the buffer.
func (f *File) PositionAt(offset uint32) Position {
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	if offset > lenContent {
		offset = lenContent
	}
	// бинпоиск: количество '\n' строго до offset
	lo, hi := 0, len(f.LineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if f.LineIdx[mid] < offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line, err := safecast.Conv[uint32](lo)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	var start uint32
	if lo > 0 {
		start = f.LineIdx[lo-1] + 1
	}
	col, err := safecast.Conv[uint32](utf8.RuneCount(f.Content[start:offset]))
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return Position{Offset: offset, Line: line, Col: col}
}

// End returns the position just past the last byte.
func (f *File) End() Position {
	return f.PositionAt(uint32(len(f.Content))) // #nosec G115 -- bounded by PositionAt clamp
}

// FormatPath форматирует путь к файлу в зависимости от режима.
// mode: "absolute", "relative", "basename", "auto"
func (f *File) FormatPath(mode, baseDir string) string {
	if f.Flags&FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path

	case "basename":
		return BaseName(f.Path)

	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)

	default:
		return f.Path
	}
}
