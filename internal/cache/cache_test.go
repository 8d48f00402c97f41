package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigests_Changed(t *testing.T) {
	d := New()
	assert.True(t, d.Changed("a.py", []byte("x = 1")))
	assert.False(t, d.Changed("a.py", []byte("x = 1")))
	assert.True(t, d.Changed("a.py", []byte("x = 2")))
	assert.Equal(t, 1, d.Len())

	d.Forget("a.py")
	assert.True(t, d.Changed("a.py", []byte("x = 2")))
}

func TestDigests_Filter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.py"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.sql"), []byte("b"), 0o644))

	d := New()
	assert.Equal(t, []string{"a.py", "b.sql"}, d.Filter(dir, []string{"a.py", "b.sql"}))
	assert.Empty(t, d.Filter(dir, []string{"a.py", "b.sql"}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.sql"), []byte("b2"), 0o644))
	assert.Equal(t, []string{"b.sql"}, d.Filter(dir, []string{"a.py", "b.sql"}))

	require.NoError(t, os.Remove(filepath.Join(dir, "a.py")))
	assert.Equal(t, []string{"a.py"}, d.Filter(dir, []string{"a.py"}))
	assert.Equal(t, 1, d.Len())
}
