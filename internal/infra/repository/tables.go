package repository

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/ornidex/ornidex/internal/domain"
)

// Per-kind repository constructors. The generic Reference does the work;
// these only pin down columns and how entry usage is counted.

func NewObserverRepository(db *gorm.DB) *Reference[domain.Observer] {
	return NewReference[domain.Observer](db, TableConfig{
		LabelColumn: "libelle",
		CountUsage:  countEntriesByInventory("inventories.observer_id = ?"),
	})
}

func NewDepartmentRepository(db *gorm.DB) *Reference[domain.Department] {
	return NewReference[domain.Department](db, TableConfig{
		LabelColumn: "code",
		CountUsage: func(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
			var count int64
			err := db.WithContext(ctx).Model(&domain.Entry{}).
				Joins("JOIN inventories ON inventories.id = entries.inventory_id").
				Joins("JOIN localities ON localities.id = inventories.locality_id").
				Joins("JOIN towns ON towns.id = localities.town_id").
				Where("towns.department_id = ?", id).
				Count(&count).Error
			return count, err
		},
	})
}

func NewTownRepository(db *gorm.DB) *Reference[domain.Town] {
	return NewReference[domain.Town](db, TableConfig{
		LabelColumn: "nom",
		CountUsage: func(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
			var count int64
			err := db.WithContext(ctx).Model(&domain.Entry{}).
				Joins("JOIN inventories ON inventories.id = entries.inventory_id").
				Joins("JOIN localities ON localities.id = inventories.locality_id").
				Where("localities.town_id = ?", id).
				Count(&count).Error
			return count, err
		},
	})
}

func NewLocalityRepository(db *gorm.DB) *Reference[domain.Locality] {
	return NewReference[domain.Locality](db, TableConfig{
		LabelColumn: "nom",
		CountUsage:  countEntriesByInventory("inventories.locality_id = ?"),
	})
}

func NewWeatherRepository(db *gorm.DB) *Reference[domain.Weather] {
	return NewReference[domain.Weather](db, TableConfig{
		LabelColumn: "libelle",
		CountUsage: func(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
			var count int64
			err := db.WithContext(ctx).Model(&domain.Entry{}).
				Joins("JOIN inventories ON inventories.id = entries.inventory_id").
				Where("inventories.weather_ids @> ?::jsonb", strconv.FormatInt(id, 10)).
				Count(&count).Error
			return count, err
		},
	})
}

func NewSpeciesClassRepository(db *gorm.DB) *Reference[domain.SpeciesClass] {
	return NewReference[domain.SpeciesClass](db, TableConfig{
		LabelColumn: "libelle",
		CountUsage: func(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
			var count int64
			err := db.WithContext(ctx).Model(&domain.Entry{}).
				Joins("JOIN species ON species.id = entries.species_id").
				Where("species.class_id = ?", id).
				Count(&count).Error
			return count, err
		},
	})
}

func NewAgeRepository(db *gorm.DB) *Reference[domain.Age] {
	return NewReference[domain.Age](db, TableConfig{
		LabelColumn: "libelle",
		EntryFK:     "age_id",
	})
}

func NewSexRepository(db *gorm.DB) *Reference[domain.Sex] {
	return NewReference[domain.Sex](db, TableConfig{
		LabelColumn: "libelle",
		EntryFK:     "sex_id",
	})
}

func NewBehaviorRepository(db *gorm.DB) *Reference[domain.Behavior] {
	return NewReference[domain.Behavior](db, TableConfig{
		LabelColumn:   "libelle",
		SearchColumns: []string{"libelle", "code"},
		CountUsage:    countEntriesByMembership("behavior_ids"),
	})
}

func NewEnvironmentRepository(db *gorm.DB) *Reference[domain.Environment] {
	return NewReference[domain.Environment](db, TableConfig{
		LabelColumn:   "libelle",
		SearchColumns: []string{"libelle", "code"},
		CountUsage:    countEntriesByMembership("environment_ids"),
	})
}

func NewDistanceEstimateRepository(db *gorm.DB) *Reference[domain.DistanceEstimate] {
	return NewReference[domain.DistanceEstimate](db, TableConfig{
		LabelColumn: "libelle",
		EntryFK:     "distance_estimate_id",
	})
}

func NewNumberEstimateRepository(db *gorm.DB) *Reference[domain.NumberEstimate] {
	return NewReference[domain.NumberEstimate](db, TableConfig{
		LabelColumn: "libelle",
		EntryFK:     "number_estimate_id",
	})
}

func countEntriesByInventory(condition string) UsageCounter {
	return func(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
		var count int64
		err := db.WithContext(ctx).Model(&domain.Entry{}).
			Joins("JOIN inventories ON inventories.id = entries.inventory_id").
			Where(condition, id).
			Count(&count).Error
		return count, err
	}
}

func countEntriesByMembership(column string) UsageCounter {
	return func(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
		var count int64
		err := db.WithContext(ctx).Model(&domain.Entry{}).
			Where(column+" @> ?::jsonb", strconv.FormatInt(id, 10)).
			Count(&count).Error
		return count, err
	}
}

// Hierarchy lookups wired into the services' of-child resolution.

func DepartmentOfTown(db *gorm.DB) func(ctx context.Context, townID int64) (*domain.Department, error) {
	return func(ctx context.Context, townID int64) (*domain.Department, error) {
		var department domain.Department
		err := db.WithContext(ctx).
			Joins("JOIN towns ON towns.department_id = departments.id").
			Where("towns.id = ?", townID).
			Take(&department).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &department, nil
	}
}

func TownOfLocality(db *gorm.DB) func(ctx context.Context, localityID int64) (*domain.Town, error) {
	return func(ctx context.Context, localityID int64) (*domain.Town, error) {
		var town domain.Town
		err := db.WithContext(ctx).
			Joins("JOIN localities ON localities.town_id = towns.id").
			Where("localities.id = ?", localityID).
			Take(&town).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &town, nil
	}
}

func SpeciesClassOfSpecies(db *gorm.DB) func(ctx context.Context, speciesID int64) (*domain.SpeciesClass, error) {
	return func(ctx context.Context, speciesID int64) (*domain.SpeciesClass, error) {
		var class domain.SpeciesClass
		err := db.WithContext(ctx).
			Joins("JOIN species ON species.class_id = species_classes.id").
			Where("species.id = ?", speciesID).
			Take(&class).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &class, nil
	}
}
