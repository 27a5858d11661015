// Package memory provides an in-memory storage backend for tests and
// ephemeral use. Nothing is persisted.
package memory

import (
	"sort"
	"sync"

	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

var (
	_ types.Backend   = (*Backend)(nil)
	_ types.Namespace = (*namespace)(nil)
)

// Backend keeps projects in maps guarded by one mutex.
type Backend struct {
	mu       sync.RWMutex
	projects map[string]map[string][]byte
}

// NewBackend returns an empty backend.
func NewBackend() *Backend {
	return &Backend{projects: make(map[string]map[string][]byte)}
}

func (b *Backend) CreateNamespace(name string) (types.Namespace, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.projects[name]; ok {
		return nil, types.ErrAlreadyExists
	}
	b.projects[name] = make(map[string][]byte)
	return &namespace{backend: b, project: name}, nil
}

func (b *Backend) OpenNamespace(name string) (types.Namespace, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, ok := b.projects[name]; !ok {
		return nil, types.ErrProjectNotFound
	}
	return &namespace{backend: b, project: name}, nil
}

func (b *Backend) Namespaces() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.projects))
	for name := range b.projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (b *Backend) Close() error { return nil }

type namespace struct {
	backend *Backend
	project string
}

func (n *namespace) Get(key string) ([]byte, error) {
	n.backend.mu.RLock()
	defer n.backend.mu.RUnlock()

	data, ok := n.backend.projects[n.project][key]
	if !ok {
		return nil, types.ErrObjectNotFound
	}
	return append([]byte(nil), data...), nil
}

func (n *namespace) Put(key string, data []byte) error {
	n.backend.mu.Lock()
	defer n.backend.mu.Unlock()

	n.backend.projects[n.project][key] = append([]byte(nil), data...)
	return nil
}

func (n *namespace) Exists(key string) (bool, error) {
	n.backend.mu.RLock()
	defer n.backend.mu.RUnlock()

	_, ok := n.backend.projects[n.project][key]
	return ok, nil
}

func (n *namespace) Keys() ([]string, error) {
	n.backend.mu.RLock()
	defer n.backend.mu.RUnlock()

	records := n.backend.projects[n.project]
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
