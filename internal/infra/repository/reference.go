// Package repository implements the usecase storage ports on gorm/postgres.
// Missing rows come back as (nil, nil); unique violations come back as
// domain.ErrAlreadyExists. Everything else passes through untranslated.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ornidex/ornidex/internal/domain"
)

// UsageCounter overrides how entry usage is counted for kinds entries do
// not reference with a plain column (array membership, geography chains).
type UsageCounter func(ctx context.Context, db *gorm.DB, id int64) (int64, error)

// TableConfig maps one reference-entity kind onto its table.
type TableConfig struct {
	// LabelColumn is the default ordering and text-search column.
	LabelColumn string

	// SearchColumns widens the text search beyond the label; defaults to
	// just LabelColumn.
	SearchColumns []string

	// EntryFK is the entries column referencing this kind, for the default
	// usage count.
	EntryFK string

	// CountUsage, when set, replaces the EntryFK-based usage count.
	CountUsage UsageCounter
}

// Reference is the one generic gorm repository behind every reference
// entity.
type Reference[T domain.Owned] struct {
	db  *gorm.DB
	cfg TableConfig
}

func NewReference[T domain.Owned](db *gorm.DB, cfg TableConfig) *Reference[T] {
	if len(cfg.SearchColumns) == 0 {
		cfg.SearchColumns = []string{cfg.LabelColumn}
	}
	return &Reference[T]{db: db, cfg: cfg}
}

func (r *Reference[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Reference[T]) FindAll(ctx context.Context) ([]T, error) {
	var records []T
	err := r.db.WithContext(ctx).
		Order(fmt.Sprintf("%s ASC", r.cfg.LabelColumn)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Reference[T]) Search(ctx context.Context, params domain.SearchParams) ([]T, error) {
	db := r.db.WithContext(ctx).Model(new(T))
	db = r.applyQuery(db, params.Q)
	db = r.applyOrder(db, params)

	offset, limit := params.OffsetLimit()
	if offset != nil {
		db = db.Offset(*offset)
	}
	if limit != nil {
		db = db.Limit(*limit)
	}

	var records []T
	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Reference[T]) Count(ctx context.Context, q *string) (int64, error) {
	db := r.db.WithContext(ctx).Model(new(T))
	db = r.applyQuery(db, q)

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Reference[T]) CountEntryUsage(ctx context.Context, id int64) (int64, error) {
	if r.cfg.CountUsage != nil {
		return r.cfg.CountUsage(ctx, r.db, id)
	}
	if r.cfg.EntryFK == "" {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Entry{}).
		Where(fmt.Sprintf("%s = ?", r.cfg.EntryFK), id).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Reference[T]) Create(ctx context.Context, input T, ownerID *string) (*T, error) {
	stampOwner(&input, ownerID)
	err := r.db.WithContext(ctx).Create(&input).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, domain.ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return &input, nil
}

func (r *Reference[T]) Update(ctx context.Context, id int64, input T) (*T, error) {
	// Full replace of every column except the identity and the stored
	// owner, which clients never mutate.
	err := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", id).
		Select("*").Omit("id", "owner_id").
		Updates(&input).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, domain.ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *Reference[T]) DeleteByID(ctx context.Context, id int64) (*T, error) {
	existing, err := r.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *Reference[T]) CreateMany(ctx context.Context, inputs []T, ownerID *string) ([]T, error) {
	for i := range inputs {
		stampOwner(&inputs[i], ownerID)
	}
	if len(inputs) == 0 {
		return inputs, nil
	}
	if err := r.db.WithContext(ctx).Create(&inputs).Error; err != nil {
		return nil, err
	}
	return inputs, nil
}

func (r *Reference[T]) applyQuery(db *gorm.DB, q *string) *gorm.DB {
	if q == nil || *q == "" {
		return db
	}
	contains := "%" + *q + "%"
	cond := db.Session(&gorm.Session{NewDB: true})
	for i, col := range r.cfg.SearchColumns {
		if i == 0 {
			cond = cond.Where(fmt.Sprintf("%s ILIKE ?", col), contains)
		} else {
			cond = cond.Or(fmt.Sprintf("%s ILIKE ?", col), contains)
		}
	}
	return db.Where(cond)
}

// applyOrder ranks prefix matches first when a text query is present and no
// explicit ordering was requested, then falls back to the label.
func (r *Reference[T]) applyOrder(db *gorm.DB, params domain.SearchParams) *gorm.DB {
	direction := "ASC"
	if params.SortOrder != nil && *params.SortOrder == domain.SortDesc {
		direction = "DESC"
	}
	if params.OrderBy != nil {
		return db.Order(fmt.Sprintf("%s %s", *params.OrderBy, direction))
	}
	if params.Q != nil && *params.Q != "" {
		return db.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                fmt.Sprintf("(%s ILIKE ?) DESC, %s %s", r.cfg.LabelColumn, r.cfg.LabelColumn, direction),
			Vars:               []any{*params.Q + "%"},
			WithoutParentheses: true,
		}})
	}
	return db.Order(fmt.Sprintf("%s %s", r.cfg.LabelColumn, direction))
}

func stampOwner(record any, ownerID *string) {
	if settable, ok := record.(domain.OwnerSettable); ok {
		settable.SetOwner(ownerID)
	}
}
