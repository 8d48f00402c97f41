package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) (string, func(args ...string)) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, string(out))
		}
	}
	run("init", "-b", "main", ".")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "tester")
	run("config", "commit.gpgsign", "false")
	return dir, run
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func backends(dir string) map[string]Selector {
	return map[string]Selector{
		BackendCLI:     CLI{Root: dir},
		BackendLibrary: Library{Root: dir},
	}
}

func TestChangedFiles_AgainstBase(t *testing.T) {
	dir, run := initRepo(t)
	write(t, dir, "a.py", "a\n")
	run("add", ".")
	run("commit", "-m", "base")
	run("branch", "base")
	write(t, dir, "b.sql", "b\n")
	write(t, dir, "src/c.ts", "c\n")
	run("add", ".")
	run("commit", "-m", "feature")

	for name, sel := range backends(dir) {
		got, err := sel.ChangedFiles("base")
		require.NoError(t, err, name)
		assert.Equal(t, []string{"b.sql", "src/c.ts"}, got, name)
	}
}

func TestChangedFiles_FallsBackToLastCommit(t *testing.T) {
	dir, run := initRepo(t)
	write(t, dir, "a.py", "a\n")
	run("add", ".")
	run("commit", "-m", "one")
	write(t, dir, "b.py", "b\n")
	run("add", ".")
	run("commit", "-m", "two")

	for name, sel := range backends(dir) {
		got, err := sel.ChangedFiles("origin/does-not-exist")
		require.NoError(t, err, name)
		assert.Equal(t, []string{"b.py"}, got, name)
	}
}

func TestChangedFiles_FallsBackToStaged(t *testing.T) {
	dir, run := initRepo(t)
	write(t, dir, "a.py", "a\n")
	run("add", ".")
	run("commit", "-m", "root")
	write(t, dir, "new.js", "x\n")
	run("add", "new.js")

	for name, sel := range backends(dir) {
		got, err := sel.ChangedFiles("origin/main")
		require.NoError(t, err, name)
		assert.Equal(t, []string{"new.js"}, got, name)
	}
}

func TestTrackedFiles(t *testing.T) {
	dir, run := initRepo(t)
	write(t, dir, "z.py", "")
	write(t, dir, "a/b.sql", "")
	write(t, dir, "untracked.ts", "")
	run("add", "z.py", "a/b.sql")
	run("commit", "-m", "init")

	for name, sel := range backends(dir) {
		got, err := sel.TrackedFiles()
		require.NoError(t, err, name)
		assert.Equal(t, []string{"a/b.sql", "z.py"}, got, name)
	}
}

func TestSelectors_NotARepository(t *testing.T) {
	dir := t.TempDir()
	_, err := Library{Root: dir}.TrackedFiles()
	assert.Error(t, err)
	assert.Empty(t, Select(Library{Root: dir}, "origin/main", false, nil))
	assert.Empty(t, Select(CLI{Root: filepath.Join(dir, "missing")}, "", true, nil))
}

type stubSelector struct {
	changed, tracked []string
	err              error
}

func (s stubSelector) ChangedFiles(string) ([]string, error) { return s.changed, s.err }
func (s stubSelector) TrackedFiles() ([]string, error)       { return s.tracked, s.err }

func TestSelect(t *testing.T) {
	sel := stubSelector{changed: []string{"c.py"}, tracked: []string{"t.py"}}
	assert.Equal(t, []string{"c.py"}, Select(sel, "origin/main", false, nil))
	assert.Equal(t, []string{"t.py"}, Select(sel, "origin/main", true, nil))
	assert.Nil(t, Select(stubSelector{err: errors.New("boom")}, "x", false, nil))
}

func TestNewSelector(t *testing.T) {
	s, err := NewSelector("/repo", BackendLibrary)
	require.NoError(t, err)
	assert.Equal(t, Library{Root: "/repo"}, s)
	s, err = NewSelector("/repo", BackendCLI)
	require.NoError(t, err)
	assert.Equal(t, CLI{Root: "/repo"}, s)
	_, err = NewSelector("/repo", "svn")
	assert.Error(t, err)
	s, err = NewSelector("/repo", "")
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestRepoMetadataAndTopLevel(t *testing.T) {
	dir, run := initRepo(t)
	run("commit", "--allow-empty", "-m", "init")
	run("remote", "add", "origin", "git@github.com:acme/ledger.git")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	md := RepoMetadata(dir)
	assert.NotEmpty(t, md.Commit)
	assert.Equal(t, "main", md.Branch)
	assert.Equal(t, "acme/ledger", md.Repo)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(TopLevel(filepath.Join(dir, "sub")))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidateRoot(t *testing.T) {
	_, err := validateRoot("bad\x00path")
	assert.Error(t, err)
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	_, err = validateRoot(f)
	assert.Error(t, err)
}

func TestSelectors_NonASCIIPathsVerbatim(t *testing.T) {
	dir, run := initRepo(t)
	write(t, dir, "a.py", "a\n")
	run("add", ".")
	run("commit", "-m", "one")
	write(t, dir, "migrations/überweisung.sql", "DELETE FROM ledger;\n")
	write(t, dir, "src/with space.py", "x\n")
	run("add", ".")
	run("commit", "-m", "two")

	for name, sel := range backends(dir) {
		got, err := sel.ChangedFiles("origin/does-not-exist")
		require.NoError(t, err, name)
		assert.Equal(t, []string{"migrations/überweisung.sql", "src/with space.py"}, got, name)

		tracked, err := sel.TrackedFiles()
		require.NoError(t, err, name)
		assert.Contains(t, tracked, "migrations/überweisung.sql", name)
		for _, p := range got {
			_, statErr := os.Stat(filepath.Join(dir, p))
			assert.NoError(t, statErr, "%s: %s", name, p)
		}
	}
}

func TestSplitOutput(t *testing.T) {
	assert.Equal(t, []string{"a.py", "dir/ü b.sql"}, splitOutput([]byte("a.py\x00dir/ü b.sql\x00")))
	assert.Empty(t, splitOutput(nil))
}
