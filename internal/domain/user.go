package domain

// EntityKind identifies a kind of record for permission lookups.
type EntityKind string

const (
	KindAge              EntityKind = "age"
	KindBehavior         EntityKind = "behavior"
	KindDepartment       EntityKind = "department"
	KindDistanceEstimate EntityKind = "distanceEstimate"
	KindEnvironment      EntityKind = "environment"
	KindEntry            EntityKind = "entry"
	KindInventory        EntityKind = "inventory"
	KindLocality         EntityKind = "locality"
	KindNumberEstimate   EntityKind = "numberEstimate"
	KindObserver         EntityKind = "observer"
	KindSex              EntityKind = "sex"
	KindSpecies          EntityKind = "species"
	KindSpeciesClass     EntityKind = "speciesClass"
	KindTown             EntityKind = "town"
	KindWeather          EntityKind = "weather"
)

// RoleAdmin bypasses every ownership and permission check.
const RoleAdmin = "admin"

// Permission is the fine-grained grant a user may hold for one entity kind.
type Permission struct {
	CanCreate bool `json:"canCreate,omitempty"`
	CanEdit   bool `json:"canEdit,omitempty"`
	CanDelete bool `json:"canDelete,omitempty"`
}

// LoggedUser is the authenticated actor attached to a request. A nil
// *LoggedUser means the request is anonymous.
type LoggedUser struct {
	ID          string                    `json:"id"`
	Role        string                    `json:"role"`
	Permissions map[EntityKind]Permission `json:"permissions,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *LoggedUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Grant returns the fine-grained permission held for kind, zero when absent.
func (u *LoggedUser) Grant(kind EntityKind) Permission {
	if u == nil || u.Permissions == nil {
		return Permission{}
	}
	return u.Permissions[kind]
}

// RequesterCtxKey carries the *LoggedUser through the request context.
const RequesterCtxKey = "ornidex-requester"
