// Package objects implements the object store: identifier-keyed create,
// read and update of schema-shaped records within projects.
//
// The store is the only writer of record state. Writes to one project are
// serialized; reads of a project may run together while no write is in
// progress.
package objects

import (
	"fmt"

	"github.com/mesh-intelligence/reqmaster/internal/schema"
	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

// Operation names used in errors.
const (
	OpCreateProject = "create-project"
	OpListProjects  = "list-projects"
	OpCreateObject  = "create-object"
	OpGetObject     = "get-object"
	OpListObjects   = "list-objects"
	OpEditObject    = "edit-object"
)

// Store provides object CRUD over a Backend.
type Store struct {
	schemas *schema.Registry
	backend types.Backend
	locks   *projectLocks
}

// NewStore returns a store that creates objects from schemas and persists
// them in backend.
func NewStore(schemas *schema.Registry, backend types.Backend) *Store {
	return &Store{
		schemas: schemas,
		backend: backend,
		locks:   newProjectLocks(),
	}
}

// Schemas returns the registry used for creation.
func (s *Store) Schemas() *schema.Registry { return s.schemas }

// CreateProject establishes an empty project. Returns ErrAlreadyExists if
// it is present; existing data is never touched.
func (s *Store) CreateProject(name string) error {
	if err := types.ValidateID(name); err != nil {
		return &types.OpError{Op: OpCreateProject, Project: name, Err: err}
	}
	unlock := s.locks.lock(name)
	defer unlock()

	if _, err := s.backend.CreateNamespace(name); err != nil {
		return &types.OpError{Op: OpCreateProject, Project: name, Err: err}
	}
	return nil
}

// ListProjects returns all project names in sorted order.
func (s *Store) ListProjects() ([]string, error) {
	names, err := s.backend.Namespaces()
	if err != nil {
		return nil, &types.OpError{Op: OpListProjects, Err: err}
	}
	return names, nil
}

// Update opens project under its writer lock and runs fn. Writes made
// through the Project are durable as soon as each Put returns.
func (s *Store) Update(project string, fn func(p *Project) error) error {
	unlock := s.locks.lock(project)
	defer unlock()
	return s.run(project, fn)
}

// View opens project under a reader lock and runs fn.
func (s *Store) View(project string, fn func(p *Project) error) error {
	unlock := s.locks.rlock(project)
	defer unlock()
	return s.run(project, fn)
}

func (s *Store) run(project string, fn func(p *Project) error) error {
	if err := types.ValidateID(project); err != nil {
		return err
	}
	ns, err := s.backend.OpenNamespace(project)
	if err != nil {
		return err
	}
	return fn(&Project{name: project, ns: ns})
}

// CreateObject creates object id of typeName in project. The record holds
// exactly the schema's fields, filled from attrs or "", plus the ID field.
// Attributes the schema does not declare are dropped.
//
// Fails with ErrUnknownType, ErrProjectNotFound or ErrDuplicateID before
// anything is written.
func (s *Store) CreateObject(project, typeName, id string, attrs map[string]string) (*types.Object, error) {
	opErr := func(err error) error {
		return &types.OpError{Op: OpCreateObject, Project: project, ID: id, Err: err}
	}

	if err := types.ValidateID(id); err != nil {
		return nil, opErr(err)
	}
	sch, ok := s.schemas.Lookup(typeName)
	if !ok {
		return nil, opErr(fmt.Errorf("%w %q", types.ErrUnknownType, typeName))
	}

	var obj *types.Object
	err := s.Update(project, func(p *Project) error {
		exists, err := p.Exists(id)
		if err != nil {
			return err
		}
		if exists {
			return types.ErrDuplicateID
		}
		obj = types.NewObjectFromSchema(sch, id, attrs)
		return p.Put(obj)
	})
	if err != nil {
		return nil, opErr(err)
	}
	return obj, nil
}

// GetObject reads one object.
func (s *Store) GetObject(project, id string) (*types.Object, error) {
	if err := types.ValidateID(id); err != nil {
		return nil, &types.OpError{Op: OpGetObject, Project: project, ID: id, Err: err}
	}
	var obj *types.Object
	err := s.View(project, func(p *Project) error {
		var err error
		obj, err = p.Get(id)
		return err
	})
	if err != nil {
		return nil, &types.OpError{Op: OpGetObject, Project: project, ID: id, Err: err}
	}
	return obj, nil
}

// ListObjectIDs returns every object identifier in project, sorted.
func (s *Store) ListObjectIDs(project string) ([]string, error) {
	var ids []string
	err := s.View(project, func(p *Project) error {
		var err error
		ids, err = p.IDs()
		return err
	})
	if err != nil {
		return nil, &types.OpError{Op: OpListObjects, Project: project, Err: err}
	}
	return ids, nil
}

// EditObject merges attrs into an existing record: supplied keys overwrite,
// other keys keep their values, new keys are appended. Any field may be
// overwritten, including the ID field; the links key is rejected with
// ErrReservedField. The record is read whole, changed in memory and written
// back in one Put.
func (s *Store) EditObject(project, id string, attrs map[string]string) (*types.Object, error) {
	opErr := func(err error) error {
		return &types.OpError{Op: OpEditObject, Project: project, ID: id, Err: err}
	}

	if err := types.ValidateID(id); err != nil {
		return nil, opErr(err)
	}
	if _, ok := attrs[types.FieldLinks]; ok {
		return nil, opErr(fmt.Errorf("%w %q: use create-link", types.ErrReservedField, types.FieldLinks))
	}

	var obj *types.Object
	err := s.Update(project, func(p *Project) error {
		var err error
		obj, err = p.Get(id)
		if err != nil {
			return err
		}
		for _, k := range sortedKeys(attrs) {
			obj.Set(k, attrs[k])
		}
		return p.Put(obj)
	})
	if err != nil {
		return nil, opErr(err)
	}
	return obj, nil
}
