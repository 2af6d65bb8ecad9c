// Package policy decides whether a logged-in actor may act on a record,
// combining the admin role, record ownership and the fine-grained per-kind
// grants some deployments hand out.
package policy

import (
	"github.com/ornidex/ornidex/internal/domain"
)

// CanRead reports whether the actor may read records at all. Every listing
// and lookup requires a logged-in actor; there are no public read paths.
func CanRead(actor *domain.LoggedUser) bool {
	return actor != nil
}

// CanCreate reports whether the actor may create a record of the given kind.
// openCreation reproduces the per-kind legacy behavior where any logged-in
// user may create; otherwise an explicit canCreate grant (or admin) is
// required.
func CanCreate(actor *domain.LoggedUser, kind domain.EntityKind, openCreation bool) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() || openCreation {
		return true
	}
	return actor.Grant(kind).CanCreate
}

// CanUpdate reports whether the actor may mutate the existing record.
// Ownership is always evaluated against the stored owner, never a
// client-supplied value.
func CanUpdate(actor *domain.LoggedUser, kind domain.EntityKind, existing domain.Owned) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() || actor.Grant(kind).CanEdit {
		return true
	}
	return ownedBy(existing, actor.ID)
}

// CanDelete reports whether the actor may delete the existing record.
func CanDelete(actor *domain.LoggedUser, kind domain.EntityKind, existing domain.Owned) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() || actor.Grant(kind).CanDelete {
		return true
	}
	return ownedBy(existing, actor.ID)
}

// HasBlanketEdit reports whether the actor may skip the existing-row
// ownership lookup entirely on update.
func HasBlanketEdit(actor *domain.LoggedUser, kind domain.EntityKind) bool {
	return actor.IsAdmin() || actor.Grant(kind).CanEdit
}

// HasBlanketDelete is the deletion counterpart of HasBlanketEdit.
func HasBlanketDelete(actor *domain.LoggedUser, kind domain.EntityKind) bool {
	return actor.IsAdmin() || actor.Grant(kind).CanDelete
}

func ownedBy(existing domain.Owned, userID string) bool {
	if existing == nil {
		return false
	}
	owner := existing.Owner()
	return owner != nil && *owner == userID
}
