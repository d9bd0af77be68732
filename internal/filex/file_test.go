package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_CreatesRelativeToCWD(t *testing.T) {
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	defer chdir(t, tmp)()

	got, err := EnsureDir("pdf")
	require.NoError(t, err)

	want := filepath.Join(tmp, "pdf")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_IdempotentAndNested(t *testing.T) {
	tmp := t.TempDir()
	nested := filepath.Join(tmp, "a", "b")

	first, err := EnsureDir(nested)
	require.NoError(t, err)
	second, err := EnsureDir(nested)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "pdf")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o660))

	_, err := EnsureDir(path)
	require.Error(t, err)
}

func TestUniquePath(t *testing.T) {
	tmp := t.TempDir()

	p, err := UniquePath(tmp, "scan.pdf")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "scan.pdf"), p)

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "scan.pdf"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "scan-1.pdf"), nil, 0o600))

	p, err = UniquePath(tmp, "scan.pdf")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "scan-2.pdf"), p)
}

func TestUniquePath_NoExtension(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "out"), nil, 0o600))

	p, err := UniquePath(tmp, "out")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "out-1"), p)
}

func TestWriteNew_NeverOverwrites(t *testing.T) {
	tmp := t.TempDir()

	first, err := WriteNew(tmp, "doc.pdf", []byte("one"))
	require.NoError(t, err)
	second, err := WriteNew(tmp, "doc.pdf", []byte("two"))
	require.NoError(t, err)

	require.Equal(t, filepath.Join(tmp, "doc.pdf"), first)
	require.Equal(t, filepath.Join(tmp, "doc-1.pdf"), second)

	b, err := os.ReadFile(first)
	require.NoError(t, err)
	require.Equal(t, "one", string(b))
	b, err = os.ReadFile(second)
	require.NoError(t, err)
	require.Equal(t, "two", string(b))
}

func TestWriteNew_MissingDir(t *testing.T) {
	_, err := WriteNew(filepath.Join(t.TempDir(), "absent"), "doc.pdf", []byte("x"))
	require.Error(t, err)
}
