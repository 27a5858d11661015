package links

import (
	"github.com/mesh-intelligence/reqmaster/internal/objects"
	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

// Validator scans projects for links that do not hold.
type Validator struct {
	objects *objects.Store
}

// NewValidator returns a Validator reading through store.
func NewValidator(store *objects.Store) *Validator {
	return &Validator{objects: store}
}

// ValidateLinks lists every identifier in project once, then checks each
// record's links against that set. A link whose target is absent is
// broken. A link whose target exists but does not list the source back is
// one-sided. Records that cannot be read are reported and skipped; only a
// missing project or an unreadable listing fails the call.
//
// Results follow sorted source order, then each record's link order.
func (v *Validator) ValidateLinks(project string) (*types.ValidationReport, error) {
	report := &types.ValidationReport{
		Project:  project,
		Broken:   []types.BrokenLink{},
		OneSided: []types.BrokenLink{},
		Errors:   []types.RecordError{},
	}

	err := v.objects.View(project, func(p *objects.Project) error {
		ids, err := p.IDs()
		if err != nil {
			return err
		}
		existing := make(map[string]bool, len(ids))
		for _, id := range ids {
			existing[id] = true
		}

		records := make(map[string]*types.Object, len(ids))
		for _, id := range ids {
			obj, err := p.Get(id)
			if err != nil {
				report.Errors = append(report.Errors, types.RecordError{ID: id, Err: err, Message: err.Error()})
				continue
			}
			records[id] = obj
		}
		report.Checked = len(records)

		for _, id := range ids {
			obj, ok := records[id]
			if !ok {
				continue
			}
			for _, target := range obj.Links {
				if !existing[target] {
					report.Broken = append(report.Broken, types.BrokenLink{Source: id, Target: target})
					continue
				}
				back, ok := records[target]
				if ok && !back.HasLink(id) {
					report.OneSided = append(report.OneSided, types.BrokenLink{Source: id, Target: target})
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, &types.OpError{Op: OpValidateLinks, Project: project, Err: err}
	}
	return report, nil
}
