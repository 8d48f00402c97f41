package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidates_GlobsAndIgnore(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{
		"src/app.py", "src/app_test.py", "web/index.tsx",
		"scripts/seed.sql", "gen/api.gen.ts", "node_modules/lib/index.js",
	} {
		writeFile(t, dir, rel, "")
	}
	if err := os.WriteFile(filepath.Join(dir, ".latebindignore"), []byte("# fixtures\nscripts/seed.sql\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	all := []string{
		"src/app.py", "src/app_test.py", "web/index.tsx",
		"scripts/seed.sql", "gen/api.gen.ts", "node_modules/lib/index.js",
	}

	got := Candidates(Config{Root: dir, Paths: all})
	assert.Equal(t, []string{"src/app.py", "src/app_test.py", "web/index.tsx", "gen/api.gen.ts", "node_modules/lib/index.js"}, got)

	got = Candidates(Config{Root: dir, Paths: all, DefaultExcludes: true})
	assert.Equal(t, []string{"src/app.py", "src/app_test.py", "web/index.tsx"}, got)

	got = Candidates(Config{Root: dir, Paths: all, IncludeGlobs: "src/**", ExcludeGlobs: "*_test.py"})
	assert.Equal(t, []string{"src/app.py"}, got)
}

func TestAllowedByGlobs(t *testing.T) {
	cases := []struct {
		path, include, exclude string
		want                   bool
	}{
		{"a/b/c.py", "", "", true},
		{"a/b/c.py", "**/*.py", "", true},
		{"a/b/c.py", "*.sql", "", false},
		{"a/b/c.py", "", "a/**", false},
		{"a/b/c.py", "a/**", "**/c.py", false},
		{"a\\b\\c.py", "a/**", "", true},
	}
	for _, tc := range cases {
		got := allowedByGlobs(tc.path, Config{IncludeGlobs: tc.include, ExcludeGlobs: tc.exclude})
		assert.Equal(t, tc.want, got, "%s include=%q exclude=%q", tc.path, tc.include, tc.exclude)
	}
}

func TestScannable(t *testing.T) {
	for _, p := range []string{"a.py", "b.ts", "c.tsx", "d.sql", "e.js", "f.jsx"} {
		assert.True(t, Scannable(p), p)
	}
	for _, p := range []string{"a.md", "b.go", "Makefile", "c.PY", "d.json", "e.pyc"} {
		assert.False(t, Scannable(p), p)
	}
	assert.Equal(t, []string{".js", ".jsx", ".py", ".sql", ".ts", ".tsx"}, Extensions())
}

func TestIsDefaultExcluded(t *testing.T) {
	assert.True(t, isDefaultExcluded("node_modules/x/y.js"))
	assert.True(t, isDefaultExcluded("web/dist/app.js"))
	assert.True(t, isDefaultExcluded("static/vendor.min.js"))
	assert.True(t, isDefaultExcluded("types/index.d.ts"))
	assert.False(t, isDefaultExcluded("src/distance.py"))
	assert.False(t, isDefaultExcluded("build.py"))
}
