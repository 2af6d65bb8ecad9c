package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/policy"
)

var tracer = otel.Tracer("usecase")

// EntryService handles the observation lifecycle. Entries carry no owner of
// their own: mutations are authorized through the owning inventory.
type EntryService struct {
	entries     EntryRepository
	inventories InventoryRepository
	signal      Signal
}

func NewEntryService(entries EntryRepository, inventories InventoryRepository, signal Signal) *EntryService {
	return &EntryService{
		entries:     entries,
		inventories: inventories,
		signal:      signal,
	}
}

// Find returns the entry by id, nil when absent.
func (s *EntryService) Find(ctx context.Context, id int64, actor *domain.LoggedUser) (*domain.Entry, error) {
	if !policy.CanRead(actor) {
		return nil, domain.ErrNotAllowed
	}
	return s.entries.FindByID(ctx, id)
}

// FindPaginated returns a page of entries. Non-privileged actors only ever
// see their own entries, independent of the mutation ownership checks.
func (s *EntryService) FindPaginated(ctx context.Context, actor *domain.LoggedUser, params domain.EntrySearchParams) ([]domain.Entry, error) {
	if !policy.CanRead(actor) {
		return nil, domain.ErrNotAllowed
	}
	return s.entries.Search(ctx, s.scope(actor, params))
}

// Count counts entries visible to the actor, same scoping as FindPaginated.
func (s *EntryService) Count(ctx context.Context, actor *domain.LoggedUser, params domain.EntrySearchParams) (int64, error) {
	if !policy.CanRead(actor) {
		return 0, domain.ErrNotAllowed
	}
	return s.entries.Count(ctx, s.scope(actor, params))
}

func (s *EntryService) scope(actor *domain.LoggedUser, params domain.EntrySearchParams) domain.EntrySearchCriteria {
	criteria := domain.EntrySearchCriteria{EntrySearchParams: params}
	if !actor.IsAdmin() {
		criteria.OwnerID = &actor.ID
	}
	return criteria
}

// NextGrouping allocates the next grouping number: one past the highest in
// use across all entries, 1 when none exists.
func (s *EntryService) NextGrouping(ctx context.Context, actor *domain.LoggedUser) (int, error) {
	if !policy.CanRead(actor) {
		return 0, domain.ErrNotAllowed
	}
	latest, err := s.entries.FindLatestGrouping(ctx)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 1, nil
	}
	return *latest + 1, nil
}

// Create inserts a new entry with its behavior/environment sets stored
// inline. A matching existing observation is a conflict.
func (s *EntryService) Create(ctx context.Context, input domain.Entry, actor *domain.LoggedUser) (*domain.Entry, error) {
	ctx, span := tracer.Start(ctx, "Entry.Service.Create")
	defer span.End()

	if actor == nil {
		return nil, domain.ErrNotAllowed
	}

	existing, err := s.entries.FindExisting(ctx, input.Key(), nil)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.SimilarEntryExistsError{CorrespondingEntryID: existing.ID}
	}

	created, err := s.entries.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventCreated, created.ID, actor)
	return created, nil
}

// Update rewrites an entry, replacing its behavior/environment sets
// entirely. Authorization goes through the owning inventory; a different
// entry carrying the same observation key is a conflict.
func (s *EntryService) Update(ctx context.Context, id int64, input domain.Entry, actor *domain.LoggedUser) (*domain.Entry, error) {
	ctx, span := tracer.Start(ctx, "Entry.Service.Update")
	defer span.End()

	if actor == nil {
		return nil, domain.ErrNotAllowed
	}
	if !actor.IsAdmin() {
		inventory, err := s.inventories.FindByEntryID(ctx, id)
		if err != nil {
			return nil, err
		}
		if inventory == nil || inventory.OwnerID == nil || *inventory.OwnerID != actor.ID {
			return nil, domain.ErrNotAllowed
		}
	}

	existing, err := s.entries.FindExisting(ctx, input.Key(), &id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.SimilarEntryExistsError{CorrespondingEntryID: existing.ID}
	}

	updated, err := s.entries.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		s.publish(ctx, domain.EventUpdated, id, actor)
	}
	return updated, nil
}

// Delete removes an entry. Admin deletes unconditionally; anyone else needs
// the owning inventory to exist and be theirs, otherwise the repository is
// never asked to delete.
func (s *EntryService) Delete(ctx context.Context, id int64, actor *domain.LoggedUser) (*domain.Entry, error) {
	ctx, span := tracer.Start(ctx, "Entry.Service.Delete")
	defer span.End()

	if actor == nil {
		return nil, domain.ErrNotAllowed
	}
	if !actor.IsAdmin() {
		inventory, err := s.inventories.FindByEntryID(ctx, id)
		if err != nil {
			return nil, err
		}
		if inventory == nil || inventory.OwnerID == nil || *inventory.OwnerID != actor.ID {
			return nil, domain.ErrNotAllowed
		}
	}

	deleted, err := s.entries.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted != nil {
		s.publish(ctx, domain.EventDeleted, id, actor)
	}
	return deleted, nil
}

// publish is best effort: a dead signal backend must not fail the write.
func (s *EntryService) publish(ctx context.Context, action string, id int64, actor *domain.LoggedUser) {
	if s.signal == nil {
		return
	}
	_ = s.signal.Publish(ctx, domain.Event{
		Action:    action,
		Kind:      domain.KindEntry,
		ID:        id,
		ActorID:   actor.ID,
		Timestamp: time.Now().UTC(),
	})
}
