package domain

import (
	"errors"
	"fmt"
)

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// Expected business-rule failures. Services return these as values; anything
// outside this taxonomy is an unexpected fault and propagates untranslated.
var (
	// ErrNotAllowed signals a missing actor or insufficient
	// ownership/role/permission for the requested operation.
	ErrNotAllowed = errors.New("not allowed")

	// ErrAlreadyExists signals a uniqueness violation on create/update.
	ErrAlreadyExists = errors.New("already exists")

	// ErrIsUsed signals a deletion blocked by entries still referencing
	// the entity.
	ErrIsUsed = errors.New("still in use by existing entries")
)

// SimilarEntryExistsError is the entry-specific duplicate conflict: another
// entry already carries the same observation key. It carries the conflicting
// entry id so the caller can point the user at it.
type SimilarEntryExistsError struct {
	CorrespondingEntryID int64
}

func (e SimilarEntryExistsError) Error() string {
	return fmt.Sprintf("a similar entry already exists (entry %d)", e.CorrespondingEntryID)
}

// Is enables errors.Is matching regardless of the conflicting id.
func (e SimilarEntryExistsError) Is(target error) bool {
	_, ok := target.(SimilarEntryExistsError)
	if ok {
		return true
	}
	_, ok = target.(*SimilarEntryExistsError)
	return ok
}
