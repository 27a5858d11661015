// Package reqmaster is the entry point for embedding the requirement store.
// Open selects a storage backend, loads schemas, and returns a Workspace
// that exposes every object and link operation.
//
// Example:
//
//	ws, err := reqmaster.Open(types.Config{
//	    Backend:     types.BackendFiles,
//	    SchemaDir:   "config",
//	    ProjectsDir: "projects",
//	})
//	if err != nil {
//	    return err
//	}
//	defer ws.Close()
package reqmaster

import (
	"path/filepath"

	"github.com/mesh-intelligence/reqmaster/internal/archive"
	"github.com/mesh-intelligence/reqmaster/internal/files"
	"github.com/mesh-intelligence/reqmaster/internal/links"
	"github.com/mesh-intelligence/reqmaster/internal/memory"
	"github.com/mesh-intelligence/reqmaster/internal/objects"
	"github.com/mesh-intelligence/reqmaster/internal/schema"
	"github.com/mesh-intelligence/reqmaster/internal/sqlite"
	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

// Workspace bundles the schema registry, object store, link manager and
// validator over one backend.
type Workspace struct {
	schemas   *schema.Registry
	backend   types.Backend
	objects   *objects.Store
	links     *links.Manager
	validator *links.Validator

	// SchemaProblems lists config units skipped while loading schemas.
	SchemaProblems []error
}

// Open validates cfg, opens its backend and loads schemas from
// cfg.SchemaDir. Schema load problems do not fail Open; they are kept in
// SchemaProblems.
func Open(cfg types.Config) (*Workspace, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}

	var (
		registry *schema.Registry
		problems []error
	)
	if cfg.SchemaDir != "" {
		registry, problems = schema.Load(cfg.SchemaDir)
	} else {
		registry = schema.NewRegistry()
	}

	return NewWorkspace(registry, backend, problems), nil
}

// NewWorkspace assembles a workspace from an existing registry and backend.
func NewWorkspace(registry *schema.Registry, backend types.Backend, problems []error) *Workspace {
	store := objects.NewStore(registry, backend)
	return &Workspace{
		schemas:        registry,
		backend:        backend,
		objects:        store,
		links:          links.NewManager(store),
		validator:      links.NewValidator(store),
		SchemaProblems: problems,
	}
}

func openBackend(cfg types.Config) (types.Backend, error) {
	switch cfg.Backend {
	case types.BackendSQLite:
		path := cfg.DatabasePath
		if path == "" {
			path = filepath.Join(cfg.ProjectsDir, sqlite.DefaultFileName)
		}
		return sqlite.Open(path)
	case types.BackendMemory:
		return memory.NewBackend(), nil
	default:
		return files.NewBackend(cfg.ProjectsDir), nil
	}
}

// Close releases the backend.
func (w *Workspace) Close() error { return w.backend.Close() }

// Types returns the registered object type names, sorted.
func (w *Workspace) Types() []string { return w.schemas.Types() }

// Schema returns the schema for typeName.
func (w *Workspace) Schema(typeName string) (types.Schema, bool) {
	return w.schemas.Lookup(typeName)
}

// CreateProject establishes an empty project.
func (w *Workspace) CreateProject(name string) error {
	return w.objects.CreateProject(name)
}

// ListProjects returns all project names, sorted.
func (w *Workspace) ListProjects() ([]string, error) {
	return w.objects.ListProjects()
}

// CreateObject creates an object shaped by typeName's schema.
func (w *Workspace) CreateObject(project, typeName, id string, attrs map[string]string) (*types.Object, error) {
	return w.objects.CreateObject(project, typeName, id, attrs)
}

// GetObject reads one object.
func (w *Workspace) GetObject(project, id string) (*types.Object, error) {
	return w.objects.GetObject(project, id)
}

// ListObjects returns every object identifier in project, sorted.
func (w *Workspace) ListObjects(project string) ([]string, error) {
	return w.objects.ListObjectIDs(project)
}

// EditObject merges attrs into an existing object.
func (w *Workspace) EditObject(project, id string, attrs map[string]string) (*types.Object, error) {
	return w.objects.EditObject(project, id, attrs)
}

// CreateLink links a and b symmetrically. The returned transaction ID
// appears in any *types.PartialLinkError.
func (w *Workspace) CreateLink(project, a, b string) (LinkResult, error) {
	tx, err := w.links.CreateLink(project, a, b)
	return LinkResult{TxID: tx.ID, Changed: tx.Changed()}, err
}

// LinkResult summarizes a CreateLink call.
type LinkResult struct {
	TxID string `json:"tx_id"`

	// Changed is false when both sides already held the link.
	Changed bool `json:"changed"`
}

// ListLinks returns id's links with target titles.
func (w *Workspace) ListLinks(project, id string) (*types.LinkListing, error) {
	return w.links.ListLinks(project, id)
}

// ValidateLinks scans project for broken and one-sided links.
func (w *Workspace) ValidateLinks(project string) (*types.ValidationReport, error) {
	return w.validator.ValidateLinks(project)
}

// ArchiveReport is the outcome of ExportProject or ImportProject.
type ArchiveReport = archive.Report

// ExportProject writes project's records to a JSONL file at path.
func (w *Workspace) ExportProject(project, path string) (*ArchiveReport, error) {
	return archive.Export(w.objects, project, path)
}

// ImportProject adds the records of the JSONL file at path to project,
// creating it if needed. Existing objects are never overwritten.
func (w *Workspace) ImportProject(project, path string) (*ArchiveReport, error) {
	return archive.Import(w.objects, project, path)
}
