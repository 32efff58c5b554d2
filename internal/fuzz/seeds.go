package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// languageSeeds cover every operator, literal form and diagnostic path.
var languageSeeds = []string{
	"",
	"let x = 1 + 2 * 3\nx\n",
	"let s = \"a\" + 1 / 3\n",
	"1 / 0\n1 % 0\n1.5 / 0\n",
	"!true && false || 1 < 2\n",
	"typeof -1.25e3\n",
	"extern n\nn + (2 - 3)\n",
	"a\nlet a = 1\nlet a = 2\n",
	"let x = (1 +\n)\n(1, 2)\n",
	"\tlet y = 'x\n",
	"let = 5\nlet 1 = 2\n",
	"1_000 * 0.5 = 500.0 != false\n",
	"# comment only\n\n\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.kl файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".kl" {
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

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

// clampInput copies input so harnesses never alias the fuzzer's buffer.
func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
