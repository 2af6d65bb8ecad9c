package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/utils"
)

// --- mocks ---

type mockSpeciesRepo struct {
	mockRefRepo[domain.Species]
}

func (m *mockSpeciesRepo) SearchFiltered(ctx context.Context, params domain.SpeciesSearchParams) ([]domain.Species, error) {
	return nil, nil
}

func (m *mockSpeciesRepo) CountFiltered(ctx context.Context, params domain.SpeciesSearchParams) (int64, error) {
	return 0, nil
}

type mockExportStore struct {
	rows  []utils.Row
	sheet string
}

func (m *mockExportStore) Put(ctx context.Context, rows []utils.Row, sheetName string) (string, error) {
	m.rows = rows
	m.sheet = sheetName
	return "export-id", nil
}

func (m *mockExportStore) Get(ctx context.Context, id string) ([]byte, error) {
	return nil, nil
}

func refService[T domain.Owned](kind domain.EntityKind, byID map[int64]T) *ReferenceService[T] {
	return NewReferenceService[T](&mockRefRepo[T]{byID: byID}, ReferenceConfig{Kind: kind})
}

// --- tests ---

func TestGenerateEntriesExportFlattensRows(t *testing.T) {
	certain := domain.BreederCertain
	entry := domain.Entry{
		ID:                 77,
		InventoryID:        11,
		SpeciesID:          2,
		SexID:              3,
		AgeID:              4,
		NumberEstimateID:   5,
		Number:             ptr(2),
		DistanceEstimateID: ptr(int64(6)),
		Distance:           ptr(120),
		BehaviorIDs:        domain.Int64List{8, 9},
		EnvironmentIDs:     domain.Int64List{20},
		Comment:            ptr("au bord du lac"),
		Grouping:           ptr(4),
	}
	inventory := domain.Inventory{
		ID:           11,
		ObserverID:   1,
		AssociateIDs: domain.Int64List{30},
		Date:         time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC),
		Time:         ptr("08:15"),
		LocalityID:   40,
		Latitude:     ptr(47.21),
		Longitude:    ptr(-1.55),
		Altitude:     ptr(12),
		Temperature:  ptr(18),
		WeatherIDs:   domain.Int64List{50},
		OwnerID:      ptr("alice"),
	}

	entryRepo := &mockEntryRepo{byID: map[int64]domain.Entry{77: entry}}
	inventoryRepo := &mockInventoryRepo{
		byID:      map[int64]domain.Inventory{11: inventory},
		byEntryID: map[int64]domain.Inventory{77: inventory},
	}
	speciesRepo := &mockSpeciesRepo{mockRefRepo[domain.Species]{byID: map[int64]domain.Species{
		2: {ID: 2, ClassID: 60, Code: "MARPEC", NameFrench: "Martin-pêcheur d'Europe", NameLatin: "Alcedo atthis"},
	}}}
	store := &mockExportStore{}

	svc := NewExportService(ExportDeps{
		Entries:     NewEntryService(entryRepo, inventoryRepo, nil),
		Inventories: NewInventoryService(inventoryRepo),
		Observers: refService(domain.KindObserver, map[int64]domain.Observer{
			1:  {ID: 1, Label: "Dupont"},
			30: {ID: 30, Label: "Durand"},
		}),
		Departments: refService(domain.KindDepartment, map[int64]domain.Department{
			70: {ID: 70, Code: "44"},
		}),
		Towns: refService(domain.KindTown, map[int64]domain.Town{
			41: {ID: 41, DepartmentID: 70, Code: 109, Label: "Nantes"},
		}),
		Localities: refService(domain.KindLocality, map[int64]domain.Locality{
			40: {ID: 40, TownID: 41, Label: "Petite Amazonie", Latitude: 47.22, Longitude: -1.53, Altitude: 8},
		}),
		Weathers: refService(domain.KindWeather, map[int64]domain.Weather{
			50: {ID: 50, Label: "Dégagé"},
		}),
		Classes: refService(domain.KindSpeciesClass, map[int64]domain.SpeciesClass{
			60: {ID: 60, Label: "Oiseaux"},
		}),
		Species: NewSpeciesService(speciesRepo, ReferenceConfig{Kind: domain.KindSpecies}),
		Ages: refService(domain.KindAge, map[int64]domain.Age{
			4: {ID: 4, Label: "Adulte"},
		}),
		Sexes: refService(domain.KindSex, map[int64]domain.Sex{
			3: {ID: 3, Label: "Mâle"},
		}),
		Numbers: refService(domain.KindNumberEstimate, map[int64]domain.NumberEstimate{
			5: {ID: 5, Label: "Compté"},
		}),
		Distances: refService(domain.KindDistanceEstimate, map[int64]domain.DistanceEstimate{
			6: {ID: 6, Label: "Estimée"},
		}),
		Behaviors: refService(domain.KindBehavior, map[int64]domain.Behavior{
			8: {ID: 8, Code: "CH", Label: "Chante"},
			9: {ID: 9, Code: "NID", Label: "Construit un nid", Breeder: &certain},
		}),
		Environments: refService(domain.KindEnvironment, map[int64]domain.Environment{
			20: {ID: 20, Code: "RIP", Label: "Ripisylve"},
		}),
		Store: store,
	})

	id, err := svc.GenerateEntriesExport(context.Background(), plainUser("alice"), domain.EntrySearchParams{})
	if err != nil {
		t.Fatalf("GenerateEntriesExport failed: %v", err)
	}
	if id != "export-id" {
		t.Fatalf("expected staged export id, got %q", id)
	}
	if store.sheet != "Donnees" {
		t.Fatalf("expected sheet Donnees, got %q", store.sheet)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected one row, got %d", len(store.rows))
	}

	row := store.rows[0]
	if got := len(row.Keys()); got != len(exportHeaders) {
		t.Fatalf("expected %d columns, got %d", len(exportHeaders), got)
	}

	expect := map[string]any{
		"Observateur":               "Dupont",
		"Observateurs associés":     "Durand",
		"Date":                      "17/05/2024",
		"Heure":                     "08:15",
		"Département":               "44",
		"Code commune":              109,
		"Nom commune":               "Nantes",
		"Lieu-dit":                  "Petite Amazonie",
		"Latitude":                  47.21,
		"Longitude":                 -1.55,
		"Altitude":                  12,
		"Température":               18,
		"Météo":                     "Dégagé",
		"Classe":                    "Oiseaux",
		"Code espèce":               "MARPEC",
		"Nom francais":              "Martin-pêcheur d'Europe",
		"Nom latin":                 "Alcedo atthis",
		"Nombre":                    2,
		"Estimation du nombre":      "Compté",
		"Sexe":                      "Mâle",
		"Âge":                       "Adulte",
		"Estimation de la distance": "Estimée",
		"Distance (mètres)":         120,
		"Regroupement":              4,
		"Comportement 1":            "Chante",
		"Comportement 2":            "Construit un nid",
		"Comportement 3":            "",
		"Comportement 6":            "",
		"Milieu 1":                  "Ripisylve",
		"Milieu 2":                  "",
		"Nicheur":                   "Nicheur certain",
		"Commentaires":              "au bord du lac",
	}
	for column, want := range expect {
		if got := row[column].Value; got != want {
			t.Fatalf("column %q: expected %v, got %v", column, want, got)
		}
	}
}

func TestExportCoordinatesPreferInventoryOverrides(t *testing.T) {
	inventory := &domain.Inventory{Latitude: ptr(47.21), Longitude: ptr(-1.55)}
	locality := &domain.Locality{Latitude: 47.22, Longitude: -1.53, Altitude: 8}

	lat, lon, alt := coordinates(inventory, locality)
	if lat != 47.21 || lon != -1.55 {
		t.Fatalf("expected inventory coordinates, got %v %v", lat, lon)
	}
	if alt != "" {
		t.Fatalf("expected empty altitude when not overridden, got %v", alt)
	}

	lat, lon, alt = coordinates(&domain.Inventory{}, locality)
	if lat != 47.22 || lon != -1.53 || alt != 8 {
		t.Fatalf("expected locality coordinates, got %v %v %v", lat, lon, alt)
	}

	lat, lon, alt = coordinates(&domain.Inventory{}, nil)
	if lat != "" || lon != "" || alt != "" {
		t.Fatalf("expected empty coordinates, got %v %v %v", lat, lon, alt)
	}
}
