package types

import "errors"

// Config holds backend selection and storage locations for reqmaster.Open.
type Config struct {
	Backend     string `json:"backend" yaml:"backend"`
	SchemaDir   string `json:"schema_dir" yaml:"schema_dir"`
	ProjectsDir string `json:"projects_dir" yaml:"projects_dir"`

	// DatabasePath is the SQLite file used by the sqlite backend.
	// Empty means <ProjectsDir>/reqmaster.db.
	DatabasePath string `json:"database,omitempty" yaml:"database,omitempty"`
}

// Supported backend names.
const (
	BackendFiles  = "files"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendFiles:  true,
	BackendSQLite: true,
	BackendMemory: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
