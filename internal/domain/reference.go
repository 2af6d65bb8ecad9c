package domain

// Reference entities are the lookup tables entries point at. The structs
// double as gorm models; junction tables and column mapping stay in the
// storage layer configuration, not here.

// Owned is implemented by every record subject to ownership checks.
type Owned interface {
	Owner() *string
}

// OwnerSettable is the mutation side of Owned; repositories use it to stamp
// the creating user, overriding any client-supplied owner.
type OwnerSettable interface {
	SetOwner(*string)
}

// Observer is a person who records inventories.
type Observer struct {
	ID      int64   `gorm:"primaryKey" json:"id,string"`
	Label   string  `gorm:"column:libelle;uniqueIndex;not null" json:"libelle"`
	OwnerID *string `gorm:"column:owner_id" json:"ownerId"`
}

func (o Observer) Owner() *string { return o.OwnerID }

// Department is an administrative area grouping towns.
type Department struct {
	ID      int64   `gorm:"primaryKey" json:"id,string"`
	Code    string  `gorm:"uniqueIndex;not null" json:"code"`
	OwnerID *string `gorm:"column:owner_id" json:"ownerId"`
}

func (d Department) Owner() *string { return d.OwnerID }

// Town belongs to a department and groups localities.
type Town struct {
	ID           int64   `gorm:"primaryKey" json:"id,string"`
	DepartmentID int64   `gorm:"index;not null" json:"departmentId,string"`
	Code         int     `gorm:"uniqueIndex:idx_towns_dep_code;not null" json:"code"`
	Label        string  `gorm:"column:nom;not null" json:"nom"`
	OwnerID      *string `gorm:"column:owner_id" json:"ownerId"`
}

func (t Town) Owner() *string { return t.OwnerID }

// Locality is the precise place an inventory happened.
type Locality struct {
	ID        int64   `gorm:"primaryKey" json:"id,string"`
	TownID    int64   `gorm:"index;not null" json:"townId,string"`
	Label     string  `gorm:"column:nom;not null" json:"nom"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  int     `json:"altitude"`
	OwnerID   *string `gorm:"column:owner_id" json:"ownerId"`
}

func (l Locality) Owner() *string { return l.OwnerID }

// Weather describes sky/precipitation conditions of an inventory.
type Weather struct {
	ID      int64   `gorm:"primaryKey" json:"id,string"`
	Label   string  `gorm:"column:libelle;uniqueIndex;not null" json:"libelle"`
	OwnerID *string `gorm:"column:owner_id" json:"ownerId"`
}

func (w Weather) Owner() *string { return w.OwnerID }

// SpeciesClass is a taxonomic class (birds, bats...).
type SpeciesClass struct {
	ID      int64   `gorm:"primaryKey" json:"id,string"`
	Label   string  `gorm:"column:libelle;uniqueIndex;not null" json:"libelle"`
	OwnerID *string `gorm:"column:owner_id" json:"ownerId"`
}

func (c SpeciesClass) Owner() *string { return c.OwnerID }

// Species is an observable species within a class.
type Species struct {
	ID         int64   `gorm:"primaryKey" json:"id,string"`
	ClassID    int64   `gorm:"index;not null" json:"classId,string"`
	Code       string  `gorm:"uniqueIndex;not null" json:"code"`
	NameFrench string  `gorm:"column:nom_francais;uniqueIndex;not null" json:"nomFrancais"`
	NameLatin  string  `gorm:"column:nom_latin;uniqueIndex;not null" json:"nomLatin"`
	OwnerID    *string `gorm:"column:owner_id" json:"ownerId"`
}

func (s Species) Owner() *string { return s.OwnerID }

// Age is the age class of the observed individuals.
type Age struct {
	ID      int64   `gorm:"primaryKey" json:"id,string"`
	Label   string  `gorm:"column:libelle;uniqueIndex;not null" json:"libelle"`
	OwnerID *string `gorm:"column:owner_id" json:"ownerId"`
}

func (a Age) Owner() *string { return a.OwnerID }

// Sex is the sex of the observed individuals.
type Sex struct {
	ID      int64   `gorm:"primaryKey" json:"id,string"`
	Label   string  `gorm:"column:libelle;uniqueIndex;not null" json:"libelle"`
	OwnerID *string `gorm:"column:owner_id" json:"ownerId"`
}

func (s Sex) Owner() *string { return s.OwnerID }

// BreederLevel ranks breeding evidence carried by a behavior.
type BreederLevel string

const (
	BreederPossible BreederLevel = "possible"
	BreederProbable BreederLevel = "probable"
	BreederCertain  BreederLevel = "certain"
)

// Behavior is an observed activity, optionally carrying breeding evidence.
type Behavior struct {
	ID      int64         `gorm:"primaryKey" json:"id,string"`
	Code    string        `gorm:"uniqueIndex;not null" json:"code"`
	Label   string        `gorm:"column:libelle;uniqueIndex;not null" json:"libelle"`
	Breeder *BreederLevel `gorm:"column:nicheur" json:"nicheur,omitempty"`
	OwnerID *string       `gorm:"column:owner_id" json:"ownerId"`
}

func (b Behavior) Owner() *string { return b.OwnerID }

// Environment describes the surroundings of an observation.
type Environment struct {
	ID      int64   `gorm:"primaryKey" json:"id,string"`
	Code    string  `gorm:"uniqueIndex;not null" json:"code"`
	Label   string  `gorm:"column:libelle;uniqueIndex;not null" json:"libelle"`
	OwnerID *string `gorm:"column:owner_id" json:"ownerId"`
}

func (e Environment) Owner() *string { return e.OwnerID }

// DistanceEstimate qualifies how the observation distance was measured.
type DistanceEstimate struct {
	ID      int64   `gorm:"primaryKey" json:"id,string"`
	Label   string  `gorm:"column:libelle;uniqueIndex;not null" json:"libelle"`
	OwnerID *string `gorm:"column:owner_id" json:"ownerId"`
}

func (d DistanceEstimate) Owner() *string { return d.OwnerID }

// NumberEstimate qualifies how the observed count was estimated.
type NumberEstimate struct {
	ID         int64   `gorm:"primaryKey" json:"id,string"`
	Label      string  `gorm:"column:libelle;uniqueIndex;not null" json:"libelle"`
	NonCounted bool    `gorm:"column:non_compte" json:"nonCompte"`
	OwnerID    *string `gorm:"column:owner_id" json:"ownerId"`
}

func (n NumberEstimate) Owner() *string { return n.OwnerID }

func (o *Observer) SetOwner(owner *string)         { o.OwnerID = owner }
func (d *Department) SetOwner(owner *string)       { d.OwnerID = owner }
func (t *Town) SetOwner(owner *string)             { t.OwnerID = owner }
func (l *Locality) SetOwner(owner *string)         { l.OwnerID = owner }
func (w *Weather) SetOwner(owner *string)          { w.OwnerID = owner }
func (c *SpeciesClass) SetOwner(owner *string)     { c.OwnerID = owner }
func (s *Species) SetOwner(owner *string)          { s.OwnerID = owner }
func (a *Age) SetOwner(owner *string)              { a.OwnerID = owner }
func (s *Sex) SetOwner(owner *string)              { s.OwnerID = owner }
func (b *Behavior) SetOwner(owner *string)         { b.OwnerID = owner }
func (e *Environment) SetOwner(owner *string)      { e.OwnerID = owner }
func (d *DistanceEstimate) SetOwner(owner *string) { d.OwnerID = owner }
func (n *NumberEstimate) SetOwner(owner *string)   { n.OwnerID = owner }
