package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreMatch(t *testing.T) {
	dir := t.TempDir()
	ig := filepath.Join(dir, FileName)
	content := "node_modules/\n*.gen.ts\n# comment\n\nscripts/seed.sql\nmigrations/**/legacy_*.sql\n"
	if err := os.WriteFile(ig, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(ig)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"node_modules/pkg/index.js":       true,
		"web/node_modules/x/y.tsx":        true,
		"src/api.gen.ts":                  true,
		"scripts/seed.sql":                true,
		"migrations/2024/legacy_drop.sql": true,
		"migrations/2024/0001_init.sql":   false,
		"src/app.py":                      false,
		"other/scripts/seed.sql":          false,
	}
	for p, want := range cases {
		if got := m.Match(p); got != want {
			t.Fatalf("Match(%q)=%v want %v", p, got, want)
		}
	}
}

func TestLoad_MissingFileMatchesNothing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), FileName))
	if err == nil {
		t.Fatal("expected error for missing ignore file")
	}
	if m.Match("anything.py") {
		t.Fatal("zero matcher must not match")
	}
}
