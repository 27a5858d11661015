package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// idTag rejects characters that would escape a path component.
const idTag = "required,excludesall=/\\\x00,ne=.,ne=.."

// ValidateID checks that id can name a project or object. Identifiers
// become path components in the files backend.
func ValidateID(id string) error {
	if err := validate.Var(id, idTag); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidID, id)
	}
	return nil
}
