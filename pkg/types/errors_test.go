package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpErrorMessage(t *testing.T) {
	err := &OpError{Op: "create-object", Project: "p", ID: "REQ-1", Err: ErrDuplicateID}
	assert.Equal(t, `create-object: object "REQ-1" in project "p": object ID already exists`, err.Error())
	assert.ErrorIs(t, err, ErrDuplicateID)

	err = &OpError{Op: "create-project", Project: "p", Err: ErrAlreadyExists}
	assert.Equal(t, `create-project: project "p": already exists`, err.Error())
}

func TestPartialLinkErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&PartialLinkError{TxID: "tx", Project: "p", Written: "A", Pending: "B", Err: cause})

	assert.ErrorIs(t, err, ErrPartialLink)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"A" now links to "B"`)
}

func TestConfigLoadErrorMatchesSentinel(t *testing.T) {
	err := error(&ConfigLoadError{Path: "config/x_config.json", Err: errors.New("bad json")})
	assert.ErrorIs(t, err, ErrConfigLoad)
	assert.Contains(t, err.Error(), "x_config.json")
}

func TestValidationReportValid(t *testing.T) {
	r := &ValidationReport{}
	assert.True(t, r.Valid())

	r.OneSided = append(r.OneSided, BrokenLink{Source: "A", Target: "B"})
	assert.False(t, r.Valid())
}
