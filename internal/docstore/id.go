package docstore

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidID signals a malformed document identifier.
var ErrInvalidID = errors.New("invalid document id")

// ID is an opaque store-assigned document identifier. Its canonical form is
// a lowercase hyphenated UUID string.
type ID string

// NewID returns a fresh identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// ParseID validates a raw identifier. It fails closed: anything that is not
// a well-formed UUID is rejected before the store is ever touched.
func ParseID(raw string) (ID, error) {
	u, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return ID(u.String()), nil
}

func (id ID) String() string { return string(id) }
