package source

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestStripBOM(t *testing.T) {
	got, ok := stripBOM([]byte("\ufeff1 + 2"))
	if !ok || string(got) != "1 + 2" {
		t.Fatalf("stripBOM = %q, %v", got, ok)
	}
	got, ok = stripBOM([]byte("1 + 2"))
	if ok || string(got) != "1 + 2" {
		t.Fatalf("stripBOM without BOM = %q, %v", got, ok)
	}
}

func TestFoldCRLF(t *testing.T) {
	tests := []struct {
		in, want string
		changed  bool
	}{
		{"1\r\n+ 2", "1\n+ 2", true},
		{"1\r+ 2", "1\r+ 2", false}, // одиночный \r не трогаем
		{"1\r\r\n2", "1\r\n2", true},
		{"", "", false},
	}
	for _, tt := range tests {
		got, changed := foldCRLF([]byte(tt.in))
		if string(got) != tt.want || changed != tt.changed {
			t.Errorf("foldCRLF(%q) = %q, %v; want %q, %v", tt.in, got, changed, tt.want, tt.changed)
		}
	}
}

func TestNewlineOffsets(t *testing.T) {
	tests := []struct {
		in   string
		want []uint32
	}{
		{"", []uint32{}},
		{"1 + 2", []uint32{}},
		{"1\n2\n", []uint32{1, 3}},
		{"\n\n", []uint32{0, 1}},
	}
	for _, tt := range tests {
		if got := newlineOffsets([]byte(tt.in)); !slices.Equal(got, tt.want) {
			t.Errorf("newlineOffsets(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	baseDir := filepath.Join(tmp, "base")
	if err := os.MkdirAll(filepath.Join(baseDir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"inside base", filepath.Join(baseDir, "nested", "prog.tly"), "nested/prog.tly"},
		{"outside base falls back to absolute", filepath.Join(tmp, "other", "prog.tly"), cleanPath(filepath.Join(tmp, "other", "prog.tly"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RelativePath(tt.target, baseDir)
			if err != nil {
				t.Fatalf("RelativePath: %v", err)
			}
			if got != tt.want {
				t.Fatalf("RelativePath = %q, want %q", got, tt.want)
			}
		})
	}
}
