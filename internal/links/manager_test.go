package links

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reqmaster/internal/files"
	"github.com/mesh-intelligence/reqmaster/internal/memory"
	"github.com/mesh-intelligence/reqmaster/internal/objects"
	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

func TestCreateLinkIsSymmetric(t *testing.T) {
	s := seed(t, memory.NewBackend(), "REQ-1", "REQ-2")
	m := NewManager(s)

	tx, err := m.CreateLink("p", "REQ-1", "REQ-2")
	require.NoError(t, err)
	assert.Equal(t, PhaseCommitted, tx.Phase)
	assert.True(t, tx.WroteA)
	assert.True(t, tx.WroteB)
	assert.NotEmpty(t, tx.ID)

	assert.Equal(t, []string{"REQ-2"}, linksOf(t, s, "REQ-1"))
	assert.Equal(t, []string{"REQ-1"}, linksOf(t, s, "REQ-2"))
}

func TestCreateLinkIdempotent(t *testing.T) {
	s := seed(t, memory.NewBackend(), "REQ-1", "REQ-2")
	m := NewManager(s)

	_, err := m.CreateLink("p", "REQ-1", "REQ-2")
	require.NoError(t, err)

	tx, err := m.CreateLink("p", "REQ-1", "REQ-2")
	require.NoError(t, err)
	assert.False(t, tx.Changed(), "second call writes nothing")

	tx, err = m.CreateLink("p", "REQ-2", "REQ-1")
	require.NoError(t, err)
	assert.False(t, tx.Changed(), "reverse order is the same link")

	assert.Equal(t, []string{"REQ-2"}, linksOf(t, s, "REQ-1"))
	assert.Equal(t, []string{"REQ-1"}, linksOf(t, s, "REQ-2"))
}

func TestCreateLinkAppendsInOrder(t *testing.T) {
	s := seed(t, memory.NewBackend(), "A", "B", "C")
	m := NewManager(s)

	_, err := m.CreateLink("p", "A", "C")
	require.NoError(t, err)
	_, err = m.CreateLink("p", "A", "B")
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "B"}, linksOf(t, s, "A"))
	assert.Equal(t, []string{"A"}, linksOf(t, s, "B"))
	assert.Equal(t, []string{"A"}, linksOf(t, s, "C"))
}

func TestCreateLinkErrors(t *testing.T) {
	s := seed(t, memory.NewBackend(), "REQ-1", "REQ-2")
	m := NewManager(s)

	tests := []struct {
		name    string
		project string
		a, b    string
		wantErr error
		wantID  string
	}{
		{name: "first missing", project: "p", a: "REQ-404", b: "REQ-2", wantErr: types.ErrObjectNotFound, wantID: "REQ-404"},
		{name: "second missing", project: "p", a: "REQ-1", b: "REQ-404", wantErr: types.ErrObjectNotFound, wantID: "REQ-404"},
		{name: "missing project", project: "nope", a: "REQ-1", b: "REQ-2", wantErr: types.ErrProjectNotFound},
		{name: "self link", project: "p", a: "REQ-1", b: "REQ-1", wantErr: types.ErrSelfLink, wantID: "REQ-1"},
		{name: "invalid id", project: "p", a: "REQ-1", b: "../x", wantErr: types.ErrInvalidID, wantID: "../x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.CreateLink(tt.project, tt.a, tt.b)
			assert.ErrorIs(t, err, tt.wantErr)

			var opErr *types.OpError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, OpCreateLink, opErr.Op)
			assert.Equal(t, tt.wantID, opErr.ID)
		})
	}

	assert.Empty(t, linksOf(t, s, "REQ-1"), "failed calls write nothing")
	assert.Empty(t, linksOf(t, s, "REQ-2"))
}

func TestCreateLinkPartialFailure(t *testing.T) {
	backend := memory.NewBackend()
	plain := seed(t, backend, "REQ-1", "REQ-2")

	faulty := objects.NewStore(testRegistry(), &faultyBackend{Backend: backend, failKey: "REQ-2"})
	m := NewManager(faulty)

	tx, err := m.CreateLink("p", "REQ-1", "REQ-2")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrPartialLink)
	assert.ErrorIs(t, err, types.ErrIO)

	var partial *types.PartialLinkError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, "REQ-1", partial.Written)
	assert.Equal(t, "REQ-2", partial.Pending)
	assert.Equal(t, tx.ID, partial.TxID)
	assert.Equal(t, PhaseWroteA, tx.Phase)

	assert.Equal(t, []string{"REQ-2"}, linksOf(t, plain, "REQ-1"))
	assert.Empty(t, linksOf(t, plain, "REQ-2"))

	report, err := NewValidator(plain).ValidateLinks("p")
	require.NoError(t, err)
	assert.Empty(t, report.Broken)
	assert.Equal(t, []types.BrokenLink{{Source: "REQ-1", Target: "REQ-2"}}, report.OneSided)

	// Rerunning against healthy storage completes the pair.
	tx, err = NewManager(plain).CreateLink("p", "REQ-1", "REQ-2")
	require.NoError(t, err)
	assert.False(t, tx.WroteA)
	assert.True(t, tx.WroteB)
	assert.Equal(t, []string{"REQ-1"}, linksOf(t, plain, "REQ-2"))
}

func TestCreateLinkFirstWriteFailure(t *testing.T) {
	backend := memory.NewBackend()
	plain := seed(t, backend, "REQ-1", "REQ-2")

	m := NewManager(objects.NewStore(testRegistry(), &faultyBackend{Backend: backend, failKey: "REQ-1"}))

	_, err := m.CreateLink("p", "REQ-1", "REQ-2")
	assert.ErrorIs(t, err, types.ErrIO)
	assert.NotErrorIs(t, err, types.ErrPartialLink)

	assert.Empty(t, linksOf(t, plain, "REQ-1"))
	assert.Empty(t, linksOf(t, plain, "REQ-2"), "B is not written after A fails")
}

func TestListLinks(t *testing.T) {
	s := seed(t, memory.NewBackend(), "REQ-1", "REQ-2", "REQ-3")
	m := NewManager(s)

	_, err := m.CreateLink("p", "REQ-1", "REQ-2")
	require.NoError(t, err)
	_, err = m.CreateLink("p", "REQ-1", "REQ-3")
	require.NoError(t, err)

	listing, err := m.ListLinks("p", "REQ-1")
	require.NoError(t, err)
	assert.Equal(t, "Title REQ-1", listing.Title)
	assert.Equal(t, []types.LinkTarget{
		{ID: "REQ-2", Title: "Title REQ-2", Resolved: true},
		{ID: "REQ-3", Title: "Title REQ-3", Resolved: true},
	}, listing.Targets)
}

func TestListLinksNoLinks(t *testing.T) {
	s := seed(t, memory.NewBackend(), "REQ-1")

	listing, err := NewManager(s).ListLinks("p", "REQ-1")
	require.NoError(t, err)
	assert.Empty(t, listing.Targets)
	assert.NotNil(t, listing.Targets)
}

func TestListLinksErrors(t *testing.T) {
	s := seed(t, memory.NewBackend(), "REQ-1")
	m := NewManager(s)

	_, err := m.ListLinks("p", "REQ-404")
	assert.ErrorIs(t, err, types.ErrObjectNotFound)

	_, err = m.ListLinks("nope", "REQ-1")
	assert.ErrorIs(t, err, types.ErrProjectNotFound)
}

func TestListLinksRejectsPathIDs(t *testing.T) {
	s := seed(t, files.NewBackend(t.TempDir()), "REQ-1")
	require.NoError(t, s.CreateProject("b"))
	_, err := s.CreateObject("b", "requirement", "SECRET", map[string]string{"Title": "hidden"})
	require.NoError(t, err)
	m := NewManager(s)

	for _, id := range []string{"../../b/objects/SECRET", "..", "a\\b", ""} {
		_, err := m.ListLinks("p", id)
		assert.ErrorIs(t, err, types.ErrInvalidID, "id %q", id)
	}
}

func TestListLinksTargetOutsideProject(t *testing.T) {
	root := t.TempDir()
	s := seed(t, files.NewBackend(root), "REQ-1")
	require.NoError(t, s.CreateProject("b"))
	_, err := s.CreateObject("b", "requirement", "SECRET", map[string]string{"Title": "hidden"})
	require.NoError(t, err)

	// A stored link naming a path resolves to nothing.
	require.NoError(t, s.Update("p", func(p *objects.Project) error {
		obj, err := p.Get("REQ-1")
		if err != nil {
			return err
		}
		obj.AddLink("../../b/objects/SECRET")
		return p.Put(obj)
	}))

	listing, err := NewManager(s).ListLinks("p", "REQ-1")
	require.NoError(t, err)
	assert.Equal(t, []types.LinkTarget{{ID: "../../b/objects/SECRET", Title: types.NoTitle}}, listing.Targets)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "pending", PhasePending.String())
	assert.Equal(t, "committed", PhaseCommitted.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
