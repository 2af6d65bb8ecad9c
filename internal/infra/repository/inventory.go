package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ornidex/ornidex/internal/domain"
)

// InventoryRepository stores field visits. An inventory and its entries go
// away together.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) FindByID(ctx context.Context, id int64) (*domain.Inventory, error) {
	var inventory domain.Inventory
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&inventory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *InventoryRepository) FindByEntryID(ctx context.Context, entryID int64) (*domain.Inventory, error) {
	var inventory domain.Inventory
	err := r.db.WithContext(ctx).
		Joins("JOIN entries ON entries.inventory_id = inventories.id").
		Where("entries.id = ?", entryID).
		Take(&inventory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inventory, nil
}

func (r *InventoryRepository) Search(ctx context.Context, criteria domain.InventorySearchCriteria) ([]domain.Inventory, error) {
	db := r.db.WithContext(ctx).Model(&domain.Inventory{})
	if criteria.OwnerID != nil {
		db = db.Where("owner_id = ?", *criteria.OwnerID)
	}

	direction := "DESC"
	if criteria.SortOrder != nil && *criteria.SortOrder == domain.SortAsc {
		direction = "ASC"
	}
	orderBy := "date"
	if criteria.OrderBy != nil {
		orderBy = *criteria.OrderBy
	}
	db = db.Order(orderBy + " " + direction)

	offset, limit := criteria.OffsetLimit()
	if offset != nil {
		db = db.Offset(*offset)
	}
	if limit != nil {
		db = db.Limit(*limit)
	}

	var inventories []domain.Inventory
	if err := db.Find(&inventories).Error; err != nil {
		return nil, err
	}
	return inventories, nil
}

func (r *InventoryRepository) Count(ctx context.Context, criteria domain.InventorySearchCriteria) (int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Inventory{})
	if criteria.OwnerID != nil {
		db = db.Where("owner_id = ?", *criteria.OwnerID)
	}
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *InventoryRepository) Create(ctx context.Context, input domain.Inventory, ownerID *string) (*domain.Inventory, error) {
	input.OwnerID = ownerID
	if err := r.db.WithContext(ctx).Create(&input).Error; err != nil {
		return nil, err
	}
	return &input, nil
}

func (r *InventoryRepository) Update(ctx context.Context, id int64, input domain.Inventory) (*domain.Inventory, error) {
	err := r.db.WithContext(ctx).Model(&domain.Inventory{}).
		Where("id = ?", id).
		Select("*").Omit("id", "owner_id", "creation_date").
		Updates(&input).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *InventoryRepository) DeleteByID(ctx context.Context, id int64) (*domain.Inventory, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.Entry{}, "inventory_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Inventory{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}
