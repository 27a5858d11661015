package objects

import (
	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

// Project is an open project handed to Update and View callbacks. It
// decodes and encodes records; each Put is one durable write. Every
// identifier is checked with types.ValidateID before it reaches the
// namespace, so a record key cannot name a path outside the project.
type Project struct {
	name string
	ns   types.Namespace
}

// Name returns the project name.
func (p *Project) Name() string { return p.name }

// Get reads and decodes one record. Returns ErrInvalidID,
// ErrObjectNotFound, ErrMalformedRecord or ErrIO.
func (p *Project) Get(id string) (*types.Object, error) {
	if err := types.ValidateID(id); err != nil {
		return nil, err
	}
	data, err := p.ns.Get(id)
	if err != nil {
		return nil, err
	}
	return types.DecodeObject(id, data)
}

// Exists reports whether a record exists for id.
func (p *Project) Exists(id string) (bool, error) {
	if err := types.ValidateID(id); err != nil {
		return false, err
	}
	return p.ns.Exists(id)
}

// Put encodes obj and replaces its stored record.
func (p *Project) Put(obj *types.Object) error {
	if err := types.ValidateID(obj.ID); err != nil {
		return err
	}
	data, err := types.EncodeObject(obj)
	if err != nil {
		return err
	}
	return p.ns.Put(obj.ID, data)
}

// IDs lists the object identifiers in sorted order.
func (p *Project) IDs() ([]string, error) {
	return p.ns.Keys()
}
