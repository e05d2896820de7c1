package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.tly", []byte("1 + 2"), 0)
	id2 := fs.Add("main.tly", []byte("3 * 4"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	if got := string(fs.Get(id2).Content); got != "3 * 4" {
		t.Errorf("second version content = %q", got)
	}
	// Старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "1 + 2" {
		t.Errorf("first version content = %q", got)
	}
}

func TestAddVirtualKeepsName(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("<stdin>", []byte("var a = 1"))
	f := fs.Get(id)
	if f.Name() != "<stdin>" {
		t.Fatalf("virtual name changed: %q", f.Name())
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("virtual flag not set")
	}
	if got := f.FormatPath("absolute", ""); got != "<stdin>" {
		t.Fatalf("virtual file path should not be resolved, got %q", got)
	}
}

func TestLineText(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t", []byte("1 +\n  2\n\n3")))

	tests := []struct {
		line uint32
		want string
	}{
		{0, "1 +"},
		{1, "  2"},
		{2, ""},
		{3, "3"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.LineText(tt.line); got != tt.want {
			t.Errorf("LineText(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
	if f.LineCount() != 4 {
		t.Errorf("LineCount() = %d, want 4", f.LineCount())
	}
	if got := f.GetLine(2); got != "  2" {
		t.Errorf("GetLine(2) = %q", got)
	}
}

func TestPositionAtMatchesAdvance(t *testing.T) {
	text := "var x = 1\nпривет + 2\n\n(3)"
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("t", []byte(text)))

	var p Position
	for _, r := range text {
		if got := f.PositionAt(p.Offset); got != p {
			t.Fatalf("PositionAt(%d) = %+v, want %+v", p.Offset, got, p)
		}
		p = p.Advance(r)
	}
	if got := f.End(); got != p {
		t.Fatalf("End() = %+v, want %+v", got, p)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.tly")
	// BOM + CRLF + decomposed "é" (e + U+0301)
	raw := []byte("\xEF\xBB\xBFvar e\u0301 = 1\r\n2\r\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if want := "var \u00e9 = 1\n2\n"; string(f.Content) != want {
		t.Fatalf("content = %q, want %q", f.Content, want)
	}
	for _, flag := range []FileFlags{FileHadBOM, FileNormalizedCRLF, FileNormalizedNFC} {
		if f.Flags&flag == 0 {
			t.Errorf("flag %b not set (flags=%b)", flag, f.Flags)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.tly")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
