package usecase

import (
	"context"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/policy"
)

// ReferenceConfig is the thin per-entity configuration applied to the
// generic service.
type ReferenceConfig struct {
	Kind domain.EntityKind

	// OpenCreation lets any logged-in user create without an explicit
	// canCreate grant. Historical behavior preserved per entity kind.
	OpenCreation bool

	// GuardDeletion refuses deletion while entries still reference the row.
	GuardDeletion bool
}

// ParentLookup resolves a record from the id of a related child record,
// e.g. the department of a town or the town of a locality.
type ParentLookup[T any] func(ctx context.Context, childID int64) (*T, error)

// ReferenceService is the one generic implementation behind every
// reference-entity kind. Expected failures are returned as domain error
// values; unexpected storage faults pass through untranslated.
type ReferenceService[T domain.Owned] struct {
	repo    ReferenceRepository[T]
	cfg     ReferenceConfig
	ofChild ParentLookup[T]
}

func NewReferenceService[T domain.Owned](repo ReferenceRepository[T], cfg ReferenceConfig) *ReferenceService[T] {
	return &ReferenceService[T]{repo: repo, cfg: cfg}
}

// WithParentLookup wires the of-child resolution for kinds that sit above
// another kind in the geography/taxonomy hierarchy.
func (s *ReferenceService[T]) WithParentLookup(lookup ParentLookup[T]) *ReferenceService[T] {
	s.ofChild = lookup
	return s
}

// Kind returns the entity kind this instance serves.
func (s *ReferenceService[T]) Kind() domain.EntityKind {
	return s.cfg.Kind
}

// Find returns the record by id, nil when absent.
func (s *ReferenceService[T]) Find(ctx context.Context, id int64, actor *domain.LoggedUser) (*T, error) {
	if !policy.CanRead(actor) {
		return nil, domain.ErrNotAllowed
	}
	return s.repo.FindByID(ctx, id)
}

// FindOfChild resolves the record owning the given child record, nil when
// the kind has no configured hierarchy or the child is absent.
func (s *ReferenceService[T]) FindOfChild(ctx context.Context, childID int64, actor *domain.LoggedUser) (*T, error) {
	if !policy.CanRead(actor) {
		return nil, domain.ErrNotAllowed
	}
	if s.ofChild == nil {
		return nil, nil
	}
	return s.ofChild(ctx, childID)
}

// FindAll returns every record ordered by label. No authorization: reserved
// for internal collaborators such as the export pipeline.
func (s *ReferenceService[T]) FindAll(ctx context.Context) ([]T, error) {
	return s.repo.FindAll(ctx)
}

// FindPaginated returns a filtered page of records.
func (s *ReferenceService[T]) FindPaginated(ctx context.Context, actor *domain.LoggedUser, params domain.SearchParams) ([]T, error) {
	if !policy.CanRead(actor) {
		return nil, domain.ErrNotAllowed
	}
	return s.repo.Search(ctx, params)
}

// Count returns the number of records matching the optional text filter.
func (s *ReferenceService[T]) Count(ctx context.Context, actor *domain.LoggedUser, q *string) (int64, error) {
	if !policy.CanRead(actor) {
		return 0, domain.ErrNotAllowed
	}
	return s.repo.Count(ctx, q)
}

// EntryUsageCount returns how many entries reference the record. Gates
// deletion in the UI.
func (s *ReferenceService[T]) EntryUsageCount(ctx context.Context, id int64, actor *domain.LoggedUser) (int64, error) {
	if !policy.CanRead(actor) {
		return 0, domain.ErrNotAllowed
	}
	return s.repo.CountEntryUsage(ctx, id)
}

// Create inserts a record owned by the actor. Whatever owner the input
// carries is discarded.
func (s *ReferenceService[T]) Create(ctx context.Context, input T, actor *domain.LoggedUser) (*T, error) {
	if !policy.CanCreate(actor, s.cfg.Kind, s.cfg.OpenCreation) {
		return nil, domain.ErrNotAllowed
	}
	return s.repo.Create(ctx, input, &actor.ID)
}

// Update mutates an existing record. Ownership is checked against the
// stored row unless the actor holds a blanket edit grant.
func (s *ReferenceService[T]) Update(ctx context.Context, id int64, input T, actor *domain.LoggedUser) (*T, error) {
	if actor == nil {
		return nil, domain.ErrNotAllowed
	}
	if !policy.HasBlanketEdit(actor, s.cfg.Kind) {
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil || !policy.CanUpdate(actor, s.cfg.Kind, *existing) {
			return nil, domain.ErrNotAllowed
		}
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes a record, returning the deleted row, nil when it did not
// exist. Guarded kinds refuse while entries still reference the row.
func (s *ReferenceService[T]) Delete(ctx context.Context, id int64, actor *domain.LoggedUser) (*T, error) {
	if actor == nil {
		return nil, domain.ErrNotAllowed
	}
	if !policy.HasBlanketDelete(actor, s.cfg.Kind) {
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil || !policy.CanDelete(actor, s.cfg.Kind, *existing) {
			return nil, domain.ErrNotAllowed
		}
	}
	if s.cfg.GuardDeletion {
		used, err := s.repo.CountEntryUsage(ctx, id)
		if err != nil {
			return nil, err
		}
		if used > 0 {
			return nil, domain.ErrIsUsed
		}
	}
	return s.repo.DeleteByID(ctx, id)
}

// CreateMany bulk-inserts records stamped with the actor as owner. The
// caller is a trusted import context; rows are not authorized one by one.
func (s *ReferenceService[T]) CreateMany(ctx context.Context, inputs []T, actor *domain.LoggedUser) ([]T, error) {
	if actor == nil {
		return nil, domain.ErrNotAllowed
	}
	return s.repo.CreateMany(ctx, inputs, &actor.ID)
}
