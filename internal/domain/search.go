package domain

import "time"

// SortOrder is the direction of an ordered listing.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchParams are the common listing parameters coming from the HTTP layer.
// Absent values stay nil and pass through to the repository untouched.
type SearchParams struct {
	Q          *string
	OrderBy    *string
	SortOrder  *SortOrder
	PageNumber *int
	PageSize   *int
}

// OffsetLimit converts page-based parameters to the offset/limit the
// repositories consume. Both are nil unless page number and size are set.
func (p SearchParams) OffsetLimit() (offset *int, limit *int) {
	if p.PageNumber == nil || p.PageSize == nil {
		return nil, nil
	}
	o := (*p.PageNumber - 1) * *p.PageSize
	l := *p.PageSize
	return &o, &l
}

// SpeciesSearchParams extends the common parameters with the class filter.
// The text query matches code, French and Latin names.
type SpeciesSearchParams struct {
	SearchParams

	ClassIDs []int64
}

// InventorySearchCriteria is what the inventory repository receives: common
// parameters plus the visibility scope decided by the service.
type InventorySearchCriteria struct {
	SearchParams

	// OwnerID restricts results to inventories of this user. Nil means
	// unrestricted (privileged actors).
	OwnerID *string
}

// EntrySearchParams extends the common parameters with entry filters.
type EntrySearchParams struct {
	SearchParams

	InventoryID    *int64
	SpeciesIDs     []int64
	ClassIDs       []int64
	LocalityIDs    []int64
	Number         *int
	OnlyBreeders   bool
	FromDate       *time.Time
	ToDate         *time.Time
	Comment        *string
	Grouping       *int
	BehaviorIDs    []int64
	EnvironmentIDs []int64
}

// EntrySearchCriteria is what the entry repository actually receives: the
// filters plus the visibility scope decided by the service.
type EntrySearchCriteria struct {
	EntrySearchParams

	// OwnerID restricts results to entries whose inventory belongs to this
	// user. Nil means unrestricted (privileged actors).
	OwnerID *string
}
