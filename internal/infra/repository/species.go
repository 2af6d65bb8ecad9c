package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ornidex/ornidex/internal/domain"
)

// SpeciesRepository widens the generic reference repository with the
// class-filtered search over code and both vernacular/scientific names.
type SpeciesRepository struct {
	*Reference[domain.Species]

	db *gorm.DB
}

func NewSpeciesRepository(db *gorm.DB) *SpeciesRepository {
	return &SpeciesRepository{
		Reference: NewReference[domain.Species](db, TableConfig{
			LabelColumn:   "code",
			SearchColumns: []string{"code", "nom_francais", "nom_latin"},
			EntryFK:       "species_id",
		}),
		db: db,
	}
}

func (r *SpeciesRepository) SearchFiltered(ctx context.Context, params domain.SpeciesSearchParams) ([]domain.Species, error) {
	db := r.filtered(ctx, params)
	db = r.orderFiltered(db, params)

	offset, limit := params.OffsetLimit()
	if offset != nil {
		db = db.Offset(*offset)
	}
	if limit != nil {
		db = db.Limit(*limit)
	}

	var records []domain.Species
	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *SpeciesRepository) CountFiltered(ctx context.Context, params domain.SpeciesSearchParams) (int64, error) {
	var count int64
	if err := r.filtered(ctx, params).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SpeciesRepository) filtered(ctx context.Context, params domain.SpeciesSearchParams) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&domain.Species{})
	if len(params.ClassIDs) > 0 {
		db = db.Where("class_id IN ?", params.ClassIDs)
	}
	if params.Q != nil && *params.Q != "" {
		contains := "%" + *params.Q + "%"
		db = db.Where(
			"code ILIKE ? OR nom_francais ILIKE ? OR nom_latin ILIKE ?",
			contains, contains, contains,
		)
	}
	return db
}

func (r *SpeciesRepository) orderFiltered(db *gorm.DB, params domain.SpeciesSearchParams) *gorm.DB {
	direction := "ASC"
	if params.SortOrder != nil && *params.SortOrder == domain.SortDesc {
		direction = "DESC"
	}
	if params.OrderBy != nil {
		return db.Order(*params.OrderBy + " " + direction)
	}
	if params.Q != nil && *params.Q != "" {
		return db.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "(code ILIKE ?) DESC, code " + direction,
			Vars:               []any{*params.Q + "%"},
			WithoutParentheses: true,
		}})
	}
	return db.Order("code " + direction)
}
