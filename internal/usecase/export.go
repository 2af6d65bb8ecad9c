package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/utils"
)

const (
	exportSheetName        = "Donnees"
	exportBehaviorSlots    = 6
	exportEnvironmentSlots = 4
)

var exportHeaders = buildExportHeaders()

func buildExportHeaders() []string {
	headers := []string{
		"ID",
		"Observateur",
		"Observateurs associés",
		"Date",
		"Heure",
		"Durée",
		"Département",
		"Code commune",
		"Nom commune",
		"Lieu-dit",
		"Latitude",
		"Longitude",
		"Altitude",
		"Température",
		"Météo",
		"Classe",
		"Code espèce",
		"Nom francais",
		"Nom latin",
		"Nombre",
		"Estimation du nombre",
		"Sexe",
		"Âge",
		"Estimation de la distance",
		"Distance (mètres)",
		"Regroupement",
	}
	for i := 1; i <= exportBehaviorSlots; i++ {
		headers = append(headers, "Comportement "+strconv.Itoa(i))
	}
	for i := 1; i <= exportEnvironmentSlots; i++ {
		headers = append(headers, "Milieu "+strconv.Itoa(i))
	}
	return append(headers, "Nicheur", "Commentaires")
}

// ExportService flattens entries into denormalized report rows and stages
// them in the export store. It runs only for authenticated callers and is
// trusted to unwrap the authorized lookups it fans out to.
type ExportService struct {
	entries      *EntryService
	inventories  *InventoryService
	observers    *ReferenceService[domain.Observer]
	departments  *ReferenceService[domain.Department]
	towns        *ReferenceService[domain.Town]
	localities   *ReferenceService[domain.Locality]
	weathers     *ReferenceService[domain.Weather]
	classes      *ReferenceService[domain.SpeciesClass]
	species      *SpeciesService
	ages         *ReferenceService[domain.Age]
	sexes        *ReferenceService[domain.Sex]
	numbers      *ReferenceService[domain.NumberEstimate]
	distances    *ReferenceService[domain.DistanceEstimate]
	behaviors    *ReferenceService[domain.Behavior]
	environments *ReferenceService[domain.Environment]
	store        ExportStore
}

// ExportDeps lists the collaborators the export pipeline fans out to.
type ExportDeps struct {
	Entries      *EntryService
	Inventories  *InventoryService
	Observers    *ReferenceService[domain.Observer]
	Departments  *ReferenceService[domain.Department]
	Towns        *ReferenceService[domain.Town]
	Localities   *ReferenceService[domain.Locality]
	Weathers     *ReferenceService[domain.Weather]
	Classes      *ReferenceService[domain.SpeciesClass]
	Species      *SpeciesService
	Ages         *ReferenceService[domain.Age]
	Sexes        *ReferenceService[domain.Sex]
	Numbers      *ReferenceService[domain.NumberEstimate]
	Distances    *ReferenceService[domain.DistanceEstimate]
	Behaviors    *ReferenceService[domain.Behavior]
	Environments *ReferenceService[domain.Environment]
	Store        ExportStore
}

func NewExportService(deps ExportDeps) *ExportService {
	return &ExportService{
		entries:      deps.Entries,
		inventories:  deps.Inventories,
		observers:    deps.Observers,
		departments:  deps.Departments,
		towns:        deps.Towns,
		localities:   deps.Localities,
		weathers:     deps.Weathers,
		classes:      deps.Classes,
		species:      deps.Species,
		ages:         deps.Ages,
		sexes:        deps.Sexes,
		numbers:      deps.Numbers,
		distances:    deps.Distances,
		behaviors:    deps.Behaviors,
		environments: deps.Environments,
		store:        deps.Store,
	}
}

// GenerateEntriesExport builds the flattened report for the actor's visible
// entries and stages it, returning the export id for later download.
func (s *ExportService) GenerateEntriesExport(ctx context.Context, actor *domain.LoggedUser, params domain.EntrySearchParams) (string, error) {
	ctx, span := tracer.Start(ctx, "Export.Service.GenerateEntriesExport")
	defer span.End()

	entries, err := s.entries.FindPaginated(ctx, actor, params)
	if err != nil {
		return "", err
	}

	rows := make([]utils.Row, 0, len(entries))
	for _, entry := range entries {
		row, err := s.buildRow(ctx, actor, entry)
		if err != nil {
			return "", err
		}
		rows = append(rows, row)
	}

	return s.store.Put(ctx, rows, exportSheetName)
}

// GetExport returns the staged document, nil when expired or unknown.
func (s *ExportService) GetExport(ctx context.Context, id string) ([]byte, error) {
	return s.store.Get(ctx, id)
}

func (s *ExportService) buildRow(ctx context.Context, actor *domain.LoggedUser, entry domain.Entry) (utils.Row, error) {
	inventory, err := s.inventories.FindOfEntry(ctx, entry.ID, actor)
	if err != nil {
		return nil, err
	}
	if inventory == nil {
		return nil, domain.NotFoundError{Resource: "inventory"}
	}

	observer, err := s.observers.Find(ctx, inventory.ObserverID, actor)
	if err != nil {
		return nil, err
	}

	associates := make([]string, 0, len(inventory.AssociateIDs))
	for _, id := range inventory.AssociateIDs {
		a, err := s.observers.Find(ctx, id, actor)
		if err != nil {
			return nil, err
		}
		if a != nil {
			associates = append(associates, a.Label)
		}
	}

	weathers := make([]string, 0, len(inventory.WeatherIDs))
	for _, id := range inventory.WeatherIDs {
		w, err := s.weathers.Find(ctx, id, actor)
		if err != nil {
			return nil, err
		}
		if w != nil {
			weathers = append(weathers, w.Label)
		}
	}

	locality, err := s.localities.Find(ctx, inventory.LocalityID, actor)
	if err != nil {
		return nil, err
	}
	var town *domain.Town
	var department *domain.Department
	if locality != nil {
		town, err = s.towns.Find(ctx, locality.TownID, actor)
		if err != nil {
			return nil, err
		}
	}
	if town != nil {
		department, err = s.departments.Find(ctx, town.DepartmentID, actor)
		if err != nil {
			return nil, err
		}
	}

	sp, err := s.species.Find(ctx, entry.SpeciesID, actor)
	if err != nil {
		return nil, err
	}
	var class *domain.SpeciesClass
	if sp != nil {
		class, err = s.classes.Find(ctx, sp.ClassID, actor)
		if err != nil {
			return nil, err
		}
	}

	age, err := s.ages.Find(ctx, entry.AgeID, actor)
	if err != nil {
		return nil, err
	}
	sex, err := s.sexes.Find(ctx, entry.SexID, actor)
	if err != nil {
		return nil, err
	}
	numberEstimate, err := s.numbers.Find(ctx, entry.NumberEstimateID, actor)
	if err != nil {
		return nil, err
	}
	var distanceEstimate *domain.DistanceEstimate
	if entry.DistanceEstimateID != nil {
		distanceEstimate, err = s.distances.Find(ctx, *entry.DistanceEstimateID, actor)
		if err != nil {
			return nil, err
		}
	}

	behaviors := make([]domain.Behavior, 0, len(entry.BehaviorIDs))
	for _, id := range entry.BehaviorIDs {
		b, err := s.behaviors.Find(ctx, id, actor)
		if err != nil {
			return nil, err
		}
		if b != nil {
			behaviors = append(behaviors, *b)
		}
	}

	environments := make([]domain.Environment, 0, len(entry.EnvironmentIDs))
	for _, id := range entry.EnvironmentIDs {
		e, err := s.environments.Find(ctx, id, actor)
		if err != nil {
			return nil, err
		}
		if e != nil {
			environments = append(environments, *e)
		}
	}

	latitude, longitude, altitude := coordinates(inventory, locality)

	values := []any{
		entry.ID,
		labelOrEmpty(observer != nil, func() string { return observer.Label }),
		strings.Join(associates, ", "),
		inventory.Date.Format("02/01/2006"),
		deref(inventory.Time),
		deref(inventory.Duration),
		labelOrEmpty(department != nil, func() string { return department.Code }),
		codeOrEmpty(town),
		labelOrEmpty(town != nil, func() string { return town.Label }),
		labelOrEmpty(locality != nil, func() string { return locality.Label }),
		latitude,
		longitude,
		altitude,
		numberOrEmpty(inventory.Temperature),
		strings.Join(weathers, ", "),
		labelOrEmpty(class != nil, func() string { return class.Label }),
		labelOrEmpty(sp != nil, func() string { return sp.Code }),
		labelOrEmpty(sp != nil, func() string { return sp.NameFrench }),
		labelOrEmpty(sp != nil, func() string { return sp.NameLatin }),
		numberOrEmpty(entry.Number),
		labelOrEmpty(numberEstimate != nil, func() string { return numberEstimate.Label }),
		labelOrEmpty(sex != nil, func() string { return sex.Label }),
		labelOrEmpty(age != nil, func() string { return age.Label }),
		labelOrEmpty(distanceEstimate != nil, func() string { return distanceEstimate.Label }),
		numberOrEmpty(entry.Distance),
		numberOrEmpty(entry.Grouping),
	}

	// Fixed-width association columns: missing slots are empty, never an
	// error.
	for i := 0; i < exportBehaviorSlots; i++ {
		if i < len(behaviors) {
			values = append(values, behaviors[i].Label)
		} else {
			values = append(values, "")
		}
	}
	for i := 0; i < exportEnvironmentSlots; i++ {
		if i < len(environments) {
			values = append(values, environments[i].Label)
		} else {
			values = append(values, "")
		}
	}

	values = append(values, domain.BreedingStatus(behaviors), deref(entry.Comment))

	return utils.NewRow(exportHeaders, values), nil
}

// coordinates prefers the inventory's customized coordinates over the
// locality's.
func coordinates(inventory *domain.Inventory, locality *domain.Locality) (any, any, any) {
	if inventory.HasCustomCoordinates() {
		altitude := any("")
		if inventory.Altitude != nil {
			altitude = *inventory.Altitude
		}
		return *inventory.Latitude, *inventory.Longitude, altitude
	}
	if locality != nil {
		return locality.Latitude, locality.Longitude, locality.Altitude
	}
	return "", "", ""
}

func labelOrEmpty(ok bool, label func() string) string {
	if !ok {
		return ""
	}
	return label()
}

func codeOrEmpty(town *domain.Town) any {
	if town == nil {
		return ""
	}
	return town.Code
}

func numberOrEmpty[N int | int64](n *N) any {
	if n == nil {
		return ""
	}
	return *n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
