// Package links maintains the symmetric link relation between objects and
// checks it for consistency.
//
// A link is stored on both records: A's links list holds B and B's holds A.
// The Manager writes both sides; the Validator scans a project for entries
// whose target is gone or does not link back.
package links

import (
	"errors"

	"github.com/mesh-intelligence/reqmaster/internal/objects"
	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

// Operation names used in errors.
const (
	OpCreateLink    = "create-link"
	OpListLinks     = "list-links"
	OpValidateLinks = "validate-links"
)

// Manager creates and lists links through an object store.
type Manager struct {
	objects *objects.Store
}

// NewManager returns a Manager backed by store.
func NewManager(store *objects.Store) *Manager {
	return &Manager{objects: store}
}

// CreateLink links a and b in project. It is idempotent: a second call
// finds both sides linked and writes nothing.
//
// Fails with ErrObjectNotFound if either object is missing, before any
// write. A failure writing b after a was written returns a
// *types.PartialLinkError.
func (m *Manager) CreateLink(project, a, b string) (*Transaction, error) {
	tx := newTransaction(project, a, b)
	opErr := func(id string, err error) error {
		return &types.OpError{Op: OpCreateLink, Project: project, ID: id, Err: err}
	}

	if err := types.ValidateID(a); err != nil {
		return tx, opErr(a, err)
	}
	if err := types.ValidateID(b); err != nil {
		return tx, opErr(b, err)
	}
	if a == b {
		return tx, opErr(a, types.ErrSelfLink)
	}

	err := m.objects.Update(project, tx.run)
	if err != nil {
		var partial *types.PartialLinkError
		if errors.As(err, &partial) {
			return tx, err
		}
		return tx, opErr(tx.Failed, err)
	}
	return tx, nil
}

// ListLinks returns id's links with each target's title. Targets that are
// missing or unreadable are listed with NoTitle and Resolved false; they
// do not fail the call.
func (m *Manager) ListLinks(project, id string) (*types.LinkListing, error) {
	if err := types.ValidateID(id); err != nil {
		return nil, &types.OpError{Op: OpListLinks, Project: project, ID: id, Err: err}
	}
	var listing *types.LinkListing
	err := m.objects.View(project, func(p *objects.Project) error {
		obj, err := p.Get(id)
		if err != nil {
			return err
		}
		listing = &types.LinkListing{
			Project: project,
			ID:      id,
			Title:   obj.Title(),
			Targets: make([]types.LinkTarget, 0, len(obj.Links)),
		}
		for _, target := range obj.Links {
			listing.Targets = append(listing.Targets, resolveTarget(p, target))
		}
		return nil
	})
	if err != nil {
		return nil, &types.OpError{Op: OpListLinks, Project: project, ID: id, Err: err}
	}
	return listing, nil
}

func resolveTarget(p *objects.Project, id string) types.LinkTarget {
	obj, err := p.Get(id)
	if err != nil {
		return types.LinkTarget{ID: id, Title: types.NoTitle}
	}
	return types.LinkTarget{ID: id, Title: obj.Title(), Resolved: true}
}
