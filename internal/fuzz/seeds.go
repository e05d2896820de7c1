package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addLanguageSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.tly файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".tly" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

var languageSeeds = []string{
	"",
	"42",
	"3.14",
	".5",
	"1.2.3",
	"2 + 3 * 4",
	"(2 + 3) * 4",
	"--5",
	"5 / 0",
	"1 / -0.0",
	"var a = var b = 3",
	"(var a = 2) * a",
	"x + 1",
	"9223372036854775807 + 1",
	"99999999999999999999",
	"(1 + 2",
	"1 2",
	"var = 1",
	"var x 1",
	"5 $",
	"\t1\r\n+\n2 ",
	"é",
	"\xff",
}

func addLanguageSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return bytes.Clone(src)
}
