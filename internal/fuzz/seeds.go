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

var inlineSeeds = []string{
	"",
	"// file comment\nexports.foo({\n    // some comment\n    bar: 42,\n    baz: this\n});\n",
	"function add(a, b) {\n\treturn a + b;\n}\r\n",
	"var x = [1, 2, /* three */ 3], y = {a: 'b', \"c\": 1e3};\n",
	"if (a) b(); else { c = a ? -a : typeof a; }\n",
	"x = (a + b) * c\ny = new Foo\nreturn\n",
	"obj.method(function () {\n    return this.value;\n}, null, true);\n",
	"s = '\\u{1F600}\\x41\\n'; t = 1;\n",
	"function f(x) {\n  if (!x) throw new Error(\"no x\");\n  return x - -1;\n}\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata", "seeds")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.js файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".js" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src, maxSeedBytes))
		return nil
	})
}

func clamp(src []byte, limit int) []byte {
	if len(src) <= limit {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:limit]...)
}
