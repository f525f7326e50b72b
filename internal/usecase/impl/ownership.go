package impl

import (
	domainerrors "tasklist/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authorizeOwner is the single ownership enforcement point. It runs after the
// candidate row has already been fetched with the owner predicate in the
// query, so a mismatch here and a missing row are the same ErrTodoNotFound —
// never a distinct forbidden signal that would disclose the item exists.
func authorizeOwner(callerID, ownerID uuid.UUID) error {
	if callerID != ownerID {
		return errors.Wrap(domainerrors.ErrTodoNotFound, "caller does not own this todo")
	}

	return nil
}
