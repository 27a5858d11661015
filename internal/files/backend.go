// Package files implements the flat-file storage backend.
//
// Layout under the projects root:
//
//	<root>/<project>/objects/<object_id>.json
//
// Each record is one JSON document. There is no index; listing a project
// reads its objects directory.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

const (
	objectsDirName = "objects"
	recordExt      = ".json"
)

var (
	_ types.Backend   = (*Backend)(nil)
	_ types.Namespace = (*namespace)(nil)
)

// Backend stores projects as directories under a root.
type Backend struct {
	root string
}

// NewBackend returns a backend rooted at root. The root is created lazily
// by CreateNamespace.
func NewBackend(root string) *Backend {
	return &Backend{root: root}
}

// Root returns the projects root directory.
func (b *Backend) Root() string { return b.root }

func (b *Backend) objectsDir(name string) string {
	return filepath.Join(b.root, name, objectsDirName)
}

// CreateNamespace creates <root>/<name>/objects. Returns ErrAlreadyExists
// when that directory is already present.
func (b *Backend) CreateNamespace(name string) (types.Namespace, error) {
	dir := b.objectsDir(name)
	if _, err := os.Stat(dir); err == nil {
		return nil, types.ErrAlreadyExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: stat %s: %w", types.ErrIO, dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", types.ErrIO, dir, err)
	}
	return &namespace{dir: dir}, nil
}

// OpenNamespace returns the namespace for name. Returns ErrProjectNotFound
// unless <root>/<name>/objects is a directory.
func (b *Backend) OpenNamespace(name string) (types.Namespace, error) {
	dir := b.objectsDir(name)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.ErrProjectNotFound
		}
		return nil, fmt.Errorf("%w: stat %s: %w", types.ErrIO, dir, err)
	}
	if !info.IsDir() {
		return nil, types.ErrProjectNotFound
	}
	return &namespace{dir: dir}, nil
}

// Namespaces lists the directories under the root. A missing root has no
// namespaces.
func (b *Backend) Namespaces() ([]string, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", types.ErrIO, b.root, err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Close is a no-op; the backend holds no open handles.
func (b *Backend) Close() error { return nil }

// namespace is one project's objects directory.
type namespace struct {
	dir string
}

func (n *namespace) path(key string) string {
	return filepath.Join(n.dir, key+recordExt)
}

func (n *namespace) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(n.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.ErrObjectNotFound
		}
		return nil, fmt.Errorf("%w: read %s: %w", types.ErrIO, n.path(key), err)
	}
	return data, nil
}

func (n *namespace) Put(key string, data []byte) error {
	if err := writeFileAtomic(n.path(key), data); err != nil {
		return fmt.Errorf("%w: write %s: %w", types.ErrIO, n.path(key), err)
	}
	return nil
}

func (n *namespace) Exists(key string) (bool, error) {
	info, err := os.Stat(n.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat %s: %w", types.ErrIO, n.path(key), err)
	}
	return info.Mode().IsRegular(), nil
}

// Keys lists record keys from *.json files, skipping hidden and temp files.
func (n *namespace) Keys() ([]string, error) {
	entries, err := os.ReadDir(n.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", types.ErrIO, n.dir, err)
	}
	keys := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, recordExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, recordExt))
	}
	sort.Strings(keys)
	return keys, nil
}
