// Package schema loads object type schemas from config units.
//
// A config unit is a file named <type>_config with an optional .json,
// .yaml or .yml extension. It holds at least a "fields" list. Units that
// cannot be read or parsed are skipped and reported; loading never fails
// as a whole.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

// unitSuffix marks a schema config unit; the type name precedes it.
const unitSuffix = "_config"

var (
	errNotUnit       = errors.New("file name does not end in " + unitSuffix)
	errNoFields      = errors.New(`missing "fields" list`)
	errEmptyType     = errors.New("empty object type name")
	errDuplicateType = errors.New("object type already loaded")
	errUnknownFormat = errors.New("unsupported config file extension")
)

// unit is the decoded content of one config unit.
type unit struct {
	Fields *[]string `json:"fields" yaml:"fields"`
}

// Registry maps object type names to schemas. It is immutable after Load.
type Registry struct {
	schemas map[string]types.Schema
}

// NewRegistry builds a registry from already constructed schemas. A later
// schema replaces an earlier one with the same type name.
func NewRegistry(schemas ...types.Schema) *Registry {
	r := &Registry{schemas: make(map[string]types.Schema, len(schemas))}
	for _, s := range schemas {
		r.schemas[s.TypeName()] = s
	}
	return r
}

// Load reads every config unit in dir. It returns the registry of units
// that loaded and one *types.ConfigLoadError per unit that did not. A
// missing dir yields an empty registry and no errors.
func Load(dir string) (*Registry, []error) {
	r := NewRegistry()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return r, []error{&types.ConfigLoadError{Path: dir, Err: err}}
	}

	// os.ReadDir sorts by name, so duplicate resolution is deterministic.
	var problems []error
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir, name)

		s, err := loadUnit(path)
		if err != nil {
			problems = append(problems, &types.ConfigLoadError{Path: path, Err: err})
			continue
		}
		if _, ok := r.schemas[s.TypeName()]; ok {
			problems = append(problems, &types.ConfigLoadError{
				Path: path,
				Err:  fmt.Errorf("%w: %q", errDuplicateType, s.TypeName()),
			})
			continue
		}
		r.schemas[s.TypeName()] = s
	}
	return r, problems
}

// loadUnit reads and decodes one config unit.
func loadUnit(path string) (types.Schema, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	if !strings.HasSuffix(stem, unitSuffix) {
		return types.Schema{}, errNotUnit
	}
	typeName := strings.TrimSuffix(stem, unitSuffix)
	if typeName == "" {
		return types.Schema{}, errEmptyType
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Schema{}, err
	}

	var u unit
	switch strings.ToLower(ext) {
	case "", ".json":
		err = json.Unmarshal(data, &u)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &u)
	default:
		return types.Schema{}, fmt.Errorf("%w %q", errUnknownFormat, ext)
	}
	if err != nil {
		return types.Schema{}, fmt.Errorf("parse: %w", err)
	}
	if u.Fields == nil {
		return types.Schema{}, errNoFields
	}
	for _, f := range *u.Fields {
		if f == types.FieldLinks {
			return types.Schema{}, fmt.Errorf("%w %q: links are managed by create-link", types.ErrReservedField, f)
		}
	}
	return types.NewSchema(typeName, *u.Fields), nil
}

// Lookup returns the schema for typeName.
func (r *Registry) Lookup(typeName string) (types.Schema, bool) {
	s, ok := r.schemas[typeName]
	return s, ok
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return len(r.schemas) }
