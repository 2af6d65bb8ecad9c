package domain

import "time"

// Int64List is a set of foreign keys stored inline on the owning row.
// Order is irrelevant; updates replace the whole list.
type Int64List []int64

// Contains reports membership, since the list is used as a set.
func (l Int64List) Contains(id int64) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Inventory is a recorded field visit. It owns its entries: entry
// authorization is delegated to the inventory's owner.
type Inventory struct {
	ID           int64     `gorm:"primaryKey" json:"id,string"`
	ObserverID   int64     `gorm:"index;not null" json:"observerId,string"`
	AssociateIDs Int64List `gorm:"column:associate_ids;type:jsonb;serializer:json" json:"associateIds"`
	Date         time.Time `gorm:"not null" json:"date"`
	Time         *string   `json:"heure,omitempty"`
	Duration     *string   `json:"duree,omitempty"`
	LocalityID   int64     `gorm:"index;not null" json:"localityId,string"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Altitude     *int      `json:"altitude,omitempty"`
	Temperature  *int      `json:"temperature,omitempty"`
	WeatherIDs   Int64List `gorm:"column:weather_ids;type:jsonb;serializer:json" json:"weatherIds"`
	OwnerID      *string   `gorm:"column:owner_id" json:"ownerId"`
	CreationDate time.Time `gorm:"autoCreateTime" json:"creationDate"`
}

func (i Inventory) Owner() *string { return i.OwnerID }

func (i *Inventory) SetOwner(owner *string) { i.OwnerID = owner }

// HasCustomCoordinates reports whether the visit overrides the locality
// coordinates.
func (i Inventory) HasCustomCoordinates() bool {
	return i.Latitude != nil && i.Longitude != nil
}

// Entry is a single species observation inside an inventory.
type Entry struct {
	ID                 int64     `gorm:"primaryKey" json:"id,string"`
	InventoryID        int64     `gorm:"index;not null" json:"inventoryId,string"`
	SpeciesID          int64     `gorm:"index;not null" json:"speciesId,string"`
	SexID              int64     `gorm:"not null" json:"sexId,string"`
	AgeID              int64     `gorm:"not null" json:"ageId,string"`
	NumberEstimateID   int64     `gorm:"not null" json:"numberEstimateId,string"`
	Number             *int      `json:"number,omitempty"`
	DistanceEstimateID *int64    `json:"distanceEstimateId,omitempty"`
	Distance           *int      `json:"distance,omitempty"`
	BehaviorIDs        Int64List `gorm:"column:behavior_ids;type:jsonb;serializer:json" json:"behaviorIds"`
	EnvironmentIDs     Int64List `gorm:"column:environment_ids;type:jsonb;serializer:json" json:"environmentIds"`
	Comment            *string   `json:"comment,omitempty"`
	Grouping           *int      `gorm:"column:regroupement" json:"regroupment,omitempty"`
	CreationDate       time.Time `gorm:"autoCreateTime" json:"creationDate"`
}

// DuplicateKey is the tuple deciding whether two entries describe the same
// observation. Behaviors and environments are deliberately excluded.
type DuplicateKey struct {
	InventoryID        int64
	SpeciesID          int64
	SexID              int64
	AgeID              int64
	NumberEstimateID   int64
	Number             *int
	DistanceEstimateID *int64
	Distance           *int
	Comment            *string
}

// Key extracts the duplicate-detection tuple from an entry.
func (e Entry) Key() DuplicateKey {
	return DuplicateKey{
		InventoryID:        e.InventoryID,
		SpeciesID:          e.SpeciesID,
		SexID:              e.SexID,
		AgeID:              e.AgeID,
		NumberEstimateID:   e.NumberEstimateID,
		Number:             e.Number,
		DistanceEstimateID: e.DistanceEstimateID,
		Distance:           e.Distance,
		Comment:            e.Comment,
	}
}
