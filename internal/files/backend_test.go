package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

func TestCreateNamespaceLayout(t *testing.T) {
	root := t.TempDir()
	b := NewBackend(root)

	_, err := b.CreateNamespace("brakes")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "brakes", "objects"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = b.CreateNamespace("brakes")
	assert.ErrorIs(t, err, types.ErrAlreadyExists)
}

func TestCreateNamespaceMakesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "projects")
	b := NewBackend(root)

	_, err := b.CreateNamespace("p")
	require.NoError(t, err)

	names, err := b.Namespaces()
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, names)
}

func TestOpenNamespace(t *testing.T) {
	root := t.TempDir()
	b := NewBackend(root)

	_, err := b.OpenNamespace("missing")
	assert.ErrorIs(t, err, types.ErrProjectNotFound)

	// A project directory without objects/ is not a project.
	require.NoError(t, os.Mkdir(filepath.Join(root, "bare"), 0o755))
	_, err = b.OpenNamespace("bare")
	assert.ErrorIs(t, err, types.ErrProjectNotFound)

	_, err = b.CreateNamespace("real")
	require.NoError(t, err)
	_, err = b.OpenNamespace("real")
	assert.NoError(t, err)
}

func TestNamespacesMissingRoot(t *testing.T) {
	b := NewBackend(filepath.Join(t.TempDir(), "absent"))
	names, err := b.Namespaces()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestNamespaceRecordLifecycle(t *testing.T) {
	root := t.TempDir()
	b := NewBackend(root)
	ns, err := b.CreateNamespace("p")
	require.NoError(t, err)

	_, err = ns.Get("REQ-1")
	assert.ErrorIs(t, err, types.ErrObjectNotFound)

	ok, err := ns.Exists("REQ-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ns.Put("REQ-1", []byte(`{"Title": "a"}`)))

	data, err := os.ReadFile(filepath.Join(root, "p", "objects", "REQ-1.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"Title": "a"}`, string(data))

	require.NoError(t, ns.Put("REQ-1", []byte(`{"Title": "b"}`)))
	got, err := ns.Get("REQ-1")
	require.NoError(t, err)
	assert.Equal(t, `{"Title": "b"}`, string(got))

	ok, err = ns.Exists("REQ-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNamespaceKeys(t *testing.T) {
	root := t.TempDir()
	b := NewBackend(root)
	ns, err := b.CreateNamespace("p")
	require.NoError(t, err)

	require.NoError(t, ns.Put("REQ-2", []byte(`{}`)))
	require.NoError(t, ns.Put("REQ-1", []byte(`{}`)))

	dir := filepath.Join(root, "p", "objects")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".record-123.tmp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "attachments.json"), 0o755))

	keys, err := ns.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"REQ-1", "REQ-2"}, keys)
}

func TestWriteFileAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rec.json")

	require.NoError(t, writeFileAtomic(path, []byte("one")))
	require.NoError(t, writeFileAtomic(path, []byte("two")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rec.json", entries[0].Name())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	err := writeFileAtomic(filepath.Join(t.TempDir(), "gone", "rec.json"), []byte("x"))
	assert.Error(t, err)
}
