package usecase

import (
	"context"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/policy"
)

// InventoryService handles field visits, the owning side of entries.
type InventoryService struct {
	repo InventoryRepository
}

func NewInventoryService(repo InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// Find returns the inventory by id, nil when absent.
func (s *InventoryService) Find(ctx context.Context, id int64, actor *domain.LoggedUser) (*domain.Inventory, error) {
	if !policy.CanRead(actor) {
		return nil, domain.ErrNotAllowed
	}
	return s.repo.FindByID(ctx, id)
}

// FindOfEntry returns the inventory owning the given entry, nil when
// absent.
func (s *InventoryService) FindOfEntry(ctx context.Context, entryID int64, actor *domain.LoggedUser) (*domain.Inventory, error) {
	if !policy.CanRead(actor) {
		return nil, domain.ErrNotAllowed
	}
	return s.repo.FindByEntryID(ctx, entryID)
}

// FindPaginated returns a page of inventories; non-privileged actors only
// see their own.
func (s *InventoryService) FindPaginated(ctx context.Context, actor *domain.LoggedUser, params domain.SearchParams) ([]domain.Inventory, error) {
	if !policy.CanRead(actor) {
		return nil, domain.ErrNotAllowed
	}
	return s.repo.Search(ctx, s.scope(actor, params))
}

// Count counts inventories visible to the actor.
func (s *InventoryService) Count(ctx context.Context, actor *domain.LoggedUser, params domain.SearchParams) (int64, error) {
	if !policy.CanRead(actor) {
		return 0, domain.ErrNotAllowed
	}
	return s.repo.Count(ctx, s.scope(actor, params))
}

func (s *InventoryService) scope(actor *domain.LoggedUser, params domain.SearchParams) domain.InventorySearchCriteria {
	criteria := domain.InventorySearchCriteria{SearchParams: params}
	if !actor.IsAdmin() {
		criteria.OwnerID = &actor.ID
	}
	return criteria
}

// Create inserts an inventory owned by the actor.
func (s *InventoryService) Create(ctx context.Context, input domain.Inventory, actor *domain.LoggedUser) (*domain.Inventory, error) {
	if actor == nil {
		return nil, domain.ErrNotAllowed
	}
	return s.repo.Create(ctx, input, &actor.ID)
}

// Update mutates an inventory after checking ownership on the stored row.
func (s *InventoryService) Update(ctx context.Context, id int64, input domain.Inventory, actor *domain.LoggedUser) (*domain.Inventory, error) {
	if actor == nil {
		return nil, domain.ErrNotAllowed
	}
	if !policy.HasBlanketEdit(actor, domain.KindInventory) {
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil || !policy.CanUpdate(actor, domain.KindInventory, *existing) {
			return nil, domain.ErrNotAllowed
		}
	}
	return s.repo.Update(ctx, id, input)
}

// Delete removes an inventory and, through the repository, its entries.
func (s *InventoryService) Delete(ctx context.Context, id int64, actor *domain.LoggedUser) (*domain.Inventory, error) {
	if actor == nil {
		return nil, domain.ErrNotAllowed
	}
	if !policy.HasBlanketDelete(actor, domain.KindInventory) {
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing == nil || !policy.CanDelete(actor, domain.KindInventory, *existing) {
			return nil, domain.ErrNotAllowed
		}
	}
	return s.repo.DeleteByID(ctx, id)
}
