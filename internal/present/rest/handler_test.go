package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ornidex/ornidex/internal/domain"
	"github.com/ornidex/ornidex/internal/usecase"
)

// --- mocks ---

type fakeRefRepo[T domain.Owned] struct {
	byID map[int64]T
}

func (f *fakeRefRepo[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	record, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (f *fakeRefRepo[T]) FindAll(ctx context.Context) ([]T, error) { return nil, nil }

func (f *fakeRefRepo[T]) Search(ctx context.Context, params domain.SearchParams) ([]T, error) {
	records := make([]T, 0, len(f.byID))
	for _, r := range f.byID {
		records = append(records, r)
	}
	return records, nil
}

func (f *fakeRefRepo[T]) Count(ctx context.Context, q *string) (int64, error) {
	return int64(len(f.byID)), nil
}

func (f *fakeRefRepo[T]) CountEntryUsage(ctx context.Context, id int64) (int64, error) {
	return 0, nil
}

func (f *fakeRefRepo[T]) Create(ctx context.Context, input T, ownerID *string) (*T, error) {
	return &input, nil
}

func (f *fakeRefRepo[T]) Update(ctx context.Context, id int64, input T) (*T, error) {
	return &input, nil
}

func (f *fakeRefRepo[T]) DeleteByID(ctx context.Context, id int64) (*T, error) { return nil, nil }

func (f *fakeRefRepo[T]) CreateMany(ctx context.Context, inputs []T, ownerID *string) ([]T, error) {
	return inputs, nil
}

type fakeSpeciesRepo struct {
	fakeRefRepo[domain.Species]
}

func (f *fakeSpeciesRepo) SearchFiltered(ctx context.Context, params domain.SpeciesSearchParams) ([]domain.Species, error) {
	return nil, nil
}

func (f *fakeSpeciesRepo) CountFiltered(ctx context.Context, params domain.SpeciesSearchParams) (int64, error) {
	return 0, nil
}

type fakeEntryRepo struct {
	existing *domain.Entry
}

func (f *fakeEntryRepo) FindByID(ctx context.Context, id int64) (*domain.Entry, error) {
	return nil, nil
}

func (f *fakeEntryRepo) Search(ctx context.Context, criteria domain.EntrySearchCriteria) ([]domain.Entry, error) {
	return nil, nil
}

func (f *fakeEntryRepo) Count(ctx context.Context, criteria domain.EntrySearchCriteria) (int64, error) {
	return 0, nil
}

func (f *fakeEntryRepo) FindLatestGrouping(ctx context.Context) (*int, error) { return nil, nil }

func (f *fakeEntryRepo) FindExisting(ctx context.Context, key domain.DuplicateKey, excludeID *int64) (*domain.Entry, error) {
	return f.existing, nil
}

func (f *fakeEntryRepo) Create(ctx context.Context, input domain.Entry) (*domain.Entry, error) {
	input.ID = 101
	return &input, nil
}

func (f *fakeEntryRepo) Update(ctx context.Context, id int64, input domain.Entry) (*domain.Entry, error) {
	input.ID = id
	return &input, nil
}

func (f *fakeEntryRepo) DeleteByID(ctx context.Context, id int64) (*domain.Entry, error) {
	return nil, nil
}

type fakeInventoryRepo struct{}

func (f *fakeInventoryRepo) FindByID(ctx context.Context, id int64) (*domain.Inventory, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) FindByEntryID(ctx context.Context, entryID int64) (*domain.Inventory, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) Search(ctx context.Context, criteria domain.InventorySearchCriteria) ([]domain.Inventory, error) {
	return nil, nil
}

func (f *fakeInventoryRepo) Count(ctx context.Context, criteria domain.InventorySearchCriteria) (int64, error) {
	return 0, nil
}

func (f *fakeInventoryRepo) Create(ctx context.Context, input domain.Inventory, ownerID *string) (*domain.Inventory, error) {
	return &input, nil
}

func (f *fakeInventoryRepo) Update(ctx context.Context, id int64, input domain.Inventory) (*domain.Inventory, error) {
	return &input, nil
}

func (f *fakeInventoryRepo) DeleteByID(ctx context.Context, id int64) (*domain.Inventory, error) {
	return nil, nil
}

func refSvc[T domain.Owned](kind domain.EntityKind, byID map[int64]T) *usecase.ReferenceService[T] {
	return usecase.NewReferenceService[T](&fakeRefRepo[T]{byID: byID}, usecase.ReferenceConfig{
		Kind:         kind,
		OpenCreation: true,
	})
}

func newTestServer(entryRepo *fakeEntryRepo, observers map[int64]domain.Observer) *echo.Echo {
	return newTestServerWithFeed(entryRepo, observers, nil)
}

func newTestServerWithFeed(entryRepo *fakeEntryRepo, observers map[int64]domain.Observer, feed RealtimeFeed) *echo.Echo {
	inventories := usecase.NewInventoryService(&fakeInventoryRepo{})
	entries := usecase.NewEntryService(entryRepo, &fakeInventoryRepo{}, nil)
	species := usecase.NewSpeciesService(&fakeSpeciesRepo{}, usecase.ReferenceConfig{Kind: domain.KindSpecies})

	towns := refSvc[domain.Town](domain.KindTown, nil).
		WithParentLookup(func(ctx context.Context, localityID int64) (*domain.Town, error) {
			if localityID != 4 {
				return nil, nil
			}
			return &domain.Town{ID: 2, DepartmentID: 1, Code: 46, Label: "Cahors"}, nil
		})

	h := NewHandler(HandlerDeps{
		Observers:    refSvc(domain.KindObserver, observers),
		Departments:  refSvc[domain.Department](domain.KindDepartment, nil),
		Towns:        towns,
		Localities:   refSvc[domain.Locality](domain.KindLocality, nil),
		Weathers:     refSvc[domain.Weather](domain.KindWeather, nil),
		Classes:      refSvc[domain.SpeciesClass](domain.KindSpeciesClass, nil),
		Species:      species,
		Ages:         refSvc[domain.Age](domain.KindAge, nil),
		Sexes:        refSvc[domain.Sex](domain.KindSex, nil),
		Behaviors:    refSvc[domain.Behavior](domain.KindBehavior, nil),
		Environments: refSvc[domain.Environment](domain.KindEnvironment, nil),
		Distances:    refSvc[domain.DistanceEstimate](domain.KindDistanceEstimate, nil),
		Numbers:      refSvc[domain.NumberEstimate](domain.KindNumberEstimate, nil),
		Inventories:  inventories,
		Entries:      entries,
		Signal:       feed,
	})

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func asUser(req *http.Request, user *domain.LoggedUser) *http.Request {
	ctx := context.WithValue(req.Context(), domain.RequesterCtxKey, user)
	return req.WithContext(ctx)
}

// --- tests ---

func TestAnonymousListIsForbidden(t *testing.T) {
	e := newTestServer(&fakeEntryRepo{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/observers", nil)
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}

func TestAuthenticatedListSucceeds(t *testing.T) {
	e := newTestServer(&fakeEntryRepo{}, map[int64]domain.Observer{7: {ID: 7, Label: "Dupont"}})

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/observers", nil), &domain.LoggedUser{ID: "alice"})
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var records []domain.Observer
	if err := json.Unmarshal(res.Body.Bytes(), &records); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(records) != 1 || records[0].Label != "Dupont" {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestGetMissingObserverIsNotFound(t *testing.T) {
	e := newTestServer(&fakeEntryRepo{}, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/observers/99", nil), &domain.LoggedUser{ID: "alice"})
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestTownOfLocality(t *testing.T) {
	e := newTestServer(&fakeEntryRepo{}, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/towns/of-locality/4", nil), &domain.LoggedUser{ID: "alice"})
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var town domain.Town
	if err := json.Unmarshal(res.Body.Bytes(), &town); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if town.ID != 2 || town.Label != "Cahors" {
		t.Fatalf("unexpected town %+v", town)
	}
}

func TestTownOfUnknownLocalityIsNotFound(t *testing.T) {
	e := newTestServer(&fakeEntryRepo{}, nil)

	req := asUser(httptest.NewRequest(http.MethodGet, "/api/v1/towns/of-locality/99", nil), &domain.LoggedUser{ID: "alice"})
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestCreateEntryConflictCarriesConflictingID(t *testing.T) {
	e := newTestServer(&fakeEntryRepo{existing: &domain.Entry{ID: 55}}, nil)

	body, _ := json.Marshal(domain.Entry{InventoryID: 11, SpeciesID: 2, SexID: 3, AgeID: 4, NumberEstimateID: 5})
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body)), &domain.LoggedUser{ID: "alice"})
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	if res.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", res.Code)
	}

	var payload conflictResponse
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if payload.Type != "similarEntryAlreadyExists" {
		t.Fatalf("unexpected conflict type %q", payload.Type)
	}
	if payload.CorrespondingEntryFound != "55" {
		t.Fatalf("expected conflicting entry 55, got %q", payload.CorrespondingEntryFound)
	}
}

func TestCreateEntrySucceeds(t *testing.T) {
	e := newTestServer(&fakeEntryRepo{}, nil)

	body, _ := json.Marshal(domain.Entry{InventoryID: 11, SpeciesID: 2, SexID: 3, AgeID: 4, NumberEstimateID: 5})
	req := asUser(httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body)), &domain.LoggedUser{ID: "alice"})
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res := httptest.NewRecorder()

	e.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var created domain.Entry
	if err := json.Unmarshal(res.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if created.ID != 101 {
		t.Fatalf("expected created entry 101, got %+v", created)
	}
}
