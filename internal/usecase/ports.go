package usecase

import (
	"context"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/utils"
)

// ReferenceRepository defines storage for one kind of reference entity.
// Missing rows come back as (nil, nil); uniqueness violations come back as
// domain.ErrAlreadyExists. ownerID is stamped by the repository, overriding
// whatever the input carries.
type ReferenceRepository[T domain.Owned] interface {
	FindByID(ctx context.Context, id int64) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Search(ctx context.Context, params domain.SearchParams) ([]T, error)
	Count(ctx context.Context, q *string) (int64, error)
	CountEntryUsage(ctx context.Context, id int64) (int64, error)
	Create(ctx context.Context, input T, ownerID *string) (*T, error)
	Update(ctx context.Context, id int64, input T) (*T, error)
	DeleteByID(ctx context.Context, id int64) (*T, error)
	CreateMany(ctx context.Context, inputs []T, ownerID *string) ([]T, error)
}

// SpeciesRepository adds the species-specific filtered search.
type SpeciesRepository interface {
	ReferenceRepository[domain.Species]
	SearchFiltered(ctx context.Context, params domain.SpeciesSearchParams) ([]domain.Species, error)
	CountFiltered(ctx context.Context, params domain.SpeciesSearchParams) (int64, error)
}

// EntryRepository defines storage for observation entries.
type EntryRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Entry, error)
	Search(ctx context.Context, criteria domain.EntrySearchCriteria) ([]domain.Entry, error)
	Count(ctx context.Context, criteria domain.EntrySearchCriteria) (int64, error)
	FindLatestGrouping(ctx context.Context) (*int, error)
	FindExisting(ctx context.Context, key domain.DuplicateKey, excludeID *int64) (*domain.Entry, error)
	Create(ctx context.Context, input domain.Entry) (*domain.Entry, error)
	Update(ctx context.Context, id int64, input domain.Entry) (*domain.Entry, error)
	DeleteByID(ctx context.Context, id int64) (*domain.Entry, error)
}

// InventoryRepository defines storage for inventories. Deleting an inventory
// removes its entries as well.
type InventoryRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Inventory, error)
	FindByEntryID(ctx context.Context, entryID int64) (*domain.Inventory, error)
	Search(ctx context.Context, criteria domain.InventorySearchCriteria) ([]domain.Inventory, error)
	Count(ctx context.Context, criteria domain.InventorySearchCriteria) (int64, error)
	Create(ctx context.Context, input domain.Inventory, ownerID *string) (*domain.Inventory, error)
	Update(ctx context.Context, id int64, input domain.Inventory) (*domain.Inventory, error)
	DeleteByID(ctx context.Context, id int64) (*domain.Inventory, error)
}

// ExportStore stages generated export documents for later download, with an
// expiry policy owned by the store.
type ExportStore interface {
	Put(ctx context.Context, rows []utils.Row, sheetName string) (string, error)
	Get(ctx context.Context, id string) ([]byte, error)
}

// Signal publishes change events for the realtime feed. Implementations may
// drop events; delivery is best effort.
type Signal interface {
	Publish(ctx context.Context, event domain.Event) error
}
