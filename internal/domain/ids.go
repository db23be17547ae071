package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ParseID returns id in canonical UUID form. Anything that is not a UUID can
// never match a stored row, so it is reported as ErrNotFound.
func ParseID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("id %q: %w", id, ErrNotFound)
	}
	return u.String(), nil
}
