package links

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reqmaster/internal/objects"
	"github.com/mesh-intelligence/reqmaster/internal/schema"
	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

func testRegistry() *schema.Registry {
	return schema.NewRegistry(types.NewSchema("requirement", []string{"Title", "Description"}))
}

// seed creates project p holding the given ids, titled "Title <id>".
func seed(t *testing.T, backend types.Backend, ids ...string) *objects.Store {
	t.Helper()
	s := objects.NewStore(testRegistry(), backend)
	require.NoError(t, s.CreateProject("p"))
	for _, id := range ids {
		_, err := s.CreateObject("p", "requirement", id, map[string]string{"Title": "Title " + id})
		require.NoError(t, err)
	}
	return s
}

func linksOf(t *testing.T, s *objects.Store, id string) []string {
	t.Helper()
	obj, err := s.GetObject("p", id)
	require.NoError(t, err)
	return obj.Links
}

// faultyBackend fails every Put of failKey.
type faultyBackend struct {
	types.Backend
	failKey string
}

func (f *faultyBackend) OpenNamespace(name string) (types.Namespace, error) {
	ns, err := f.Backend.OpenNamespace(name)
	if err != nil {
		return nil, err
	}
	return &faultyNamespace{Namespace: ns, failKey: f.failKey}, nil
}

type faultyNamespace struct {
	types.Namespace
	failKey string
}

func (f *faultyNamespace) Put(key string, data []byte) error {
	if key == f.failKey {
		return fmt.Errorf("%w: disk full", types.ErrIO)
	}
	return f.Namespace.Put(key, data)
}
