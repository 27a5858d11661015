// Package archive moves whole projects in and out of JSONL files, one
// compact record per line. An archive written from one backend can be
// imported into another.
package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/reqmaster/internal/objects"
	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

// Operation names used in errors.
const (
	OpExport = "export-project"
	OpImport = "import-project"
)

// maxLineSize bounds one archived record.
const maxLineSize = 16 * 1024 * 1024

// Report is the outcome of an export or import.
type Report struct {
	Project string `json:"project"`

	// Records lists the identifiers written, in order.
	Records []string `json:"records"`

	// Skipped lists records left out, with the reason.
	Skipped []types.RecordError `json:"skipped"`
}

// Export writes every readable record of project to path in identifier
// order. Unreadable records are skipped and reported.
func Export(store *objects.Store, project, path string) (*Report, error) {
	report := &Report{Project: project, Records: []string{}, Skipped: []types.RecordError{}}
	var lines [][]byte

	err := store.View(project, func(p *objects.Project) error {
		ids, err := p.IDs()
		if err != nil {
			return err
		}
		for _, id := range ids {
			obj, err := p.Get(id)
			if err != nil {
				report.Skipped = append(report.Skipped, types.RecordError{ID: id, Err: err, Message: err.Error()})
				continue
			}
			data, err := encodeLine(obj)
			if err != nil {
				return err
			}
			lines = append(lines, data)
			report.Records = append(report.Records, id)
		}
		return nil
	})
	if err != nil {
		return nil, &types.OpError{Op: OpExport, Project: project, Err: err}
	}

	if err := writeJSONL(path, lines); err != nil {
		return nil, &types.OpError{Op: OpExport, Project: project, Err: fmt.Errorf("%w: %w", types.ErrIO, err)}
	}
	return report, nil
}

// Import adds the records in path to project, creating the project when it
// is missing. Each record's identifier comes from its Unique Requirement ID
// field. Existing objects are never overwritten: lines that are malformed,
// lack a valid identifier, or name an existing object are skipped and
// reported.
func Import(store *objects.Store, project, path string) (*Report, error) {
	lines, err := readJSONL(path)
	if err != nil {
		return nil, &types.OpError{Op: OpImport, Project: project, Err: fmt.Errorf("%w: %w", types.ErrIO, err)}
	}

	if err := store.CreateProject(project); err != nil && !errors.Is(err, types.ErrAlreadyExists) {
		return nil, err
	}

	report := &Report{Project: project, Records: []string{}, Skipped: []types.RecordError{}}
	skip := func(l line, id string, err error) {
		report.Skipped = append(report.Skipped, types.RecordError{ID: id, Line: l.n, Err: err, Message: err.Error()})
	}

	err = store.Update(project, func(p *objects.Project) error {
		for _, l := range lines {
			obj, err := types.DecodeObject("", l.data)
			if err != nil {
				skip(l, "", err)
				continue
			}
			id, _ := obj.Get(types.FieldID)
			if err := types.ValidateID(id); err != nil {
				skip(l, id, err)
				continue
			}
			exists, err := p.Exists(id)
			if err != nil {
				return err
			}
			if exists {
				skip(l, id, types.ErrDuplicateID)
				continue
			}
			obj.ID = id
			if err := p.Put(obj); err != nil {
				return err
			}
			report.Records = append(report.Records, id)
		}
		return nil
	})
	if err != nil {
		return report, &types.OpError{Op: OpImport, Project: project, Err: err}
	}
	return report, nil
}

// encodeLine serializes obj as one compact JSON line.
func encodeLine(obj *types.Object) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(obj); err != nil {
		return nil, fmt.Errorf("encoding object %q: %w", obj.ID, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
