package repository

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/ornidex/ornidex/internal/domain"
)

// EntryRepository stores observation entries. Behavior and environment sets
// live inline on the row; updates replace them wholesale.
type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) FindByID(ctx context.Context, id int64) (*domain.Entry, error) {
	var entry domain.Entry
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *EntryRepository) Search(ctx context.Context, criteria domain.EntrySearchCriteria) ([]domain.Entry, error) {
	db := r.filtered(ctx, criteria)

	direction := "ASC"
	if criteria.SortOrder != nil && *criteria.SortOrder == domain.SortDesc {
		direction = "DESC"
	}
	orderBy := "entries.id"
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

	var entries []domain.Entry
	if err := db.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *EntryRepository) Count(ctx context.Context, criteria domain.EntrySearchCriteria) (int64, error) {
	var count int64
	if err := r.filtered(ctx, criteria).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EntryRepository) filtered(ctx context.Context, criteria domain.EntrySearchCriteria) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&domain.Entry{})

	needsInventory := criteria.OwnerID != nil ||
		criteria.FromDate != nil || criteria.ToDate != nil ||
		len(criteria.LocalityIDs) > 0
	if needsInventory {
		db = db.Joins("JOIN inventories ON inventories.id = entries.inventory_id")
	}
	if criteria.OwnerID != nil {
		db = db.Where("inventories.owner_id = ?", *criteria.OwnerID)
	}
	if criteria.FromDate != nil {
		db = db.Where("inventories.date >= ?", *criteria.FromDate)
	}
	if criteria.ToDate != nil {
		db = db.Where("inventories.date <= ?", *criteria.ToDate)
	}
	if len(criteria.LocalityIDs) > 0 {
		db = db.Where("inventories.locality_id IN ?", criteria.LocalityIDs)
	}
	if criteria.InventoryID != nil {
		db = db.Where("entries.inventory_id = ?", *criteria.InventoryID)
	}
	if len(criteria.SpeciesIDs) > 0 {
		db = db.Where("entries.species_id IN ?", criteria.SpeciesIDs)
	}
	if len(criteria.ClassIDs) > 0 {
		db = db.Where(
			"entries.species_id IN (?)",
			r.db.Model(&domain.Species{}).Select("id").Where("class_id IN ?", criteria.ClassIDs),
		)
	}
	if criteria.Number != nil {
		db = db.Where("entries.number = ?", *criteria.Number)
	}
	if criteria.Grouping != nil {
		db = db.Where("entries.regroupement = ?", *criteria.Grouping)
	}
	if criteria.Comment != nil && *criteria.Comment != "" {
		db = db.Where("entries.comment ILIKE ?", "%"+*criteria.Comment+"%")
	}
	for _, id := range criteria.BehaviorIDs {
		db = db.Where("entries.behavior_ids @> ?::jsonb", strconv.FormatInt(id, 10))
	}
	for _, id := range criteria.EnvironmentIDs {
		db = db.Where("entries.environment_ids @> ?::jsonb", strconv.FormatInt(id, 10))
	}
	if criteria.OnlyBreeders {
		db = db.Where(
			"EXISTS (SELECT 1 FROM behaviors b WHERE b.nicheur IS NOT NULL AND entries.behavior_ids @> to_jsonb(b.id))",
		)
	}
	return db
}

func (r *EntryRepository) FindLatestGrouping(ctx context.Context) (*int, error) {
	var latest *int
	err := r.db.WithContext(ctx).Model(&domain.Entry{}).
		Select("MAX(regroupement)").
		Scan(&latest).Error
	if err != nil {
		return nil, err
	}
	return latest, nil
}

// FindExisting locates an entry carrying the same observation key,
// optionally excluding one id (the entry being updated). NULL-able key
// parts compare NULL-safely.
func (r *EntryRepository) FindExisting(ctx context.Context, key domain.DuplicateKey, excludeID *int64) (*domain.Entry, error) {
	db := r.db.WithContext(ctx).
		Where("inventory_id = ?", key.InventoryID).
		Where("species_id = ?", key.SpeciesID).
		Where("sex_id = ?", key.SexID).
		Where("age_id = ?", key.AgeID).
		Where("number_estimate_id = ?", key.NumberEstimateID).
		Where("number IS NOT DISTINCT FROM ?", key.Number).
		Where("distance_estimate_id IS NOT DISTINCT FROM ?", key.DistanceEstimateID).
		Where("distance IS NOT DISTINCT FROM ?", key.Distance).
		Where("comment IS NOT DISTINCT FROM ?", key.Comment)
	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}

	var entry domain.Entry
	err := db.Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *EntryRepository) Create(ctx context.Context, input domain.Entry) (*domain.Entry, error) {
	if err := r.db.WithContext(ctx).Create(&input).Error; err != nil {
		return nil, err
	}
	return &input, nil
}

func (r *EntryRepository) Update(ctx context.Context, id int64, input domain.Entry) (*domain.Entry, error) {
	err := r.db.WithContext(ctx).Model(&domain.Entry{}).
		Where("id = ?", id).
		Select("*").Omit("id", "creation_date").
		Updates(&input).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *EntryRepository) DeleteByID(ctx context.Context, id int64) (*domain.Entry, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&domain.Entry{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return existing, nil
}
