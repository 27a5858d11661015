package types

import (
	"errors"
	"fmt"
)

// Storage and lookup errors.
var (
	ErrConfigLoad      = errors.New("schema config unit not loaded")
	ErrProjectNotFound = errors.New("project not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrUnknownType     = errors.New("unknown object type")
	ErrDuplicateID     = errors.New("object ID already exists")
	ErrObjectNotFound  = errors.New("object not found")
	ErrIO              = errors.New("storage I/O failure")
)

// Input and record errors.
var (
	ErrInvalidID       = errors.New("invalid identifier")
	ErrMalformedRecord = errors.New("malformed object record")
	ErrReservedField   = errors.New("reserved field")
	ErrSelfLink        = errors.New("object cannot link to itself")
	ErrPartialLink     = errors.New("link written on one side only")
)

// OpError records the operation, project and object that produced an error.
type OpError struct {
	Op      string
	Project string
	ID      string
	Err     error
}

func (e *OpError) Error() string {
	switch {
	case e.ID != "" && e.Project != "":
		return fmt.Sprintf("%s: object %q in project %q: %v", e.Op, e.ID, e.Project, e.Err)
	case e.Project != "":
		return fmt.Sprintf("%s: project %q: %v", e.Op, e.Project, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *OpError) Unwrap() error { return e.Err }

// ConfigLoadError reports a schema config unit that was skipped.
type ConfigLoadError struct {
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("load schema %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error { return e.Err }

// Is matches ErrConfigLoad.
func (e *ConfigLoadError) Is(target error) bool { return target == ErrConfigLoad }

// PartialLinkError reports a link that was written to Written but not to
// Pending. The stored state stays one-sided until create-link is rerun;
// validate-links reports it as a one-sided link.
type PartialLinkError struct {
	TxID    string
	Project string
	Written string
	Pending string
	Err     error
}

func (e *PartialLinkError) Error() string {
	return fmt.Sprintf("link %s in project %q: %q now links to %q but %q was not updated: %v",
		e.TxID, e.Project, e.Written, e.Pending, e.Pending, e.Err)
}

func (e *PartialLinkError) Unwrap() error { return e.Err }

// Is matches ErrPartialLink.
func (e *PartialLinkError) Is(target error) bool { return target == ErrPartialLink }
