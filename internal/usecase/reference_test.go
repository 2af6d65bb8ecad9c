package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/ornidex/ornidex/internal/domain"
)

// --- mocks ---

type mockRefRepo[T domain.Owned] struct {
	byID  map[int64]T
	usage int64

	findCalls    int
	created      []T
	createdOwner *string
	updatedID    *int64
	deletedID    *int64
	calls        int
}

func (m *mockRefRepo[T]) FindByID(ctx context.Context, id int64) (*T, error) {
	m.calls++
	m.findCalls++
	record, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *mockRefRepo[T]) FindAll(ctx context.Context) ([]T, error) {
	m.calls++
	return nil, nil
}

func (m *mockRefRepo[T]) Search(ctx context.Context, params domain.SearchParams) ([]T, error) {
	m.calls++
	return nil, nil
}

func (m *mockRefRepo[T]) Count(ctx context.Context, q *string) (int64, error) {
	m.calls++
	return 0, nil
}

func (m *mockRefRepo[T]) CountEntryUsage(ctx context.Context, id int64) (int64, error) {
	m.calls++
	return m.usage, nil
}

func (m *mockRefRepo[T]) Create(ctx context.Context, input T, ownerID *string) (*T, error) {
	m.calls++
	m.created = append(m.created, input)
	m.createdOwner = ownerID
	return &input, nil
}

func (m *mockRefRepo[T]) Update(ctx context.Context, id int64, input T) (*T, error) {
	m.calls++
	m.updatedID = &id
	return &input, nil
}

func (m *mockRefRepo[T]) DeleteByID(ctx context.Context, id int64) (*T, error) {
	m.calls++
	m.deletedID = &id
	record, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *mockRefRepo[T]) CreateMany(ctx context.Context, inputs []T, ownerID *string) ([]T, error) {
	m.calls++
	m.created = append(m.created, inputs...)
	m.createdOwner = ownerID
	return inputs, nil
}

func ptr[T any](v T) *T { return &v }

func plainUser(id string) *domain.LoggedUser {
	return &domain.LoggedUser{ID: id, Role: "user"}
}

func adminUser(id string) *domain.LoggedUser {
	return &domain.LoggedUser{ID: id, Role: domain.RoleAdmin}
}

func observerService(repo *mockRefRepo[domain.Observer], open bool, guard bool) *ReferenceService[domain.Observer] {
	return NewReferenceService[domain.Observer](repo, ReferenceConfig{
		Kind:          domain.KindObserver,
		OpenCreation:  open,
		GuardDeletion: guard,
	})
}

// --- tests ---

func TestReferenceAnonymousIsRejectedWithoutRepositoryCalls(t *testing.T) {
	repo := &mockRefRepo[domain.Observer]{}
	svc := observerService(repo, true, true)
	ctx := context.Background()

	if _, err := svc.Find(ctx, 1, nil); !errors.Is(err, domain.ErrNotAllowed) {
		t.Fatalf("Find: expected ErrNotAllowed, got %v", err)
	}
	if _, err := svc.FindPaginated(ctx, nil, domain.SearchParams{}); !errors.Is(err, domain.ErrNotAllowed) {
		t.Fatalf("FindPaginated: expected ErrNotAllowed, got %v", err)
	}
	if _, err := svc.Create(ctx, domain.Observer{Label: "x"}, nil); !errors.Is(err, domain.ErrNotAllowed) {
		t.Fatalf("Create: expected ErrNotAllowed, got %v", err)
	}
	if _, err := svc.Update(ctx, 1, domain.Observer{}, nil); !errors.Is(err, domain.ErrNotAllowed) {
		t.Fatalf("Update: expected ErrNotAllowed, got %v", err)
	}
	if _, err := svc.Delete(ctx, 1, nil); !errors.Is(err, domain.ErrNotAllowed) {
		t.Fatalf("Delete: expected ErrNotAllowed, got %v", err)
	}
	if _, err := svc.CreateMany(ctx, []domain.Observer{{Label: "x"}}, nil); !errors.Is(err, domain.ErrNotAllowed) {
		t.Fatalf("CreateMany: expected ErrNotAllowed, got %v", err)
	}

	if repo.calls != 0 {
		t.Fatalf("expected zero repository calls, got %d", repo.calls)
	}
}

func TestReferenceCreateStampsActorAsOwner(t *testing.T) {
	repo := &mockRefRepo[domain.Observer]{}
	svc := observerService(repo, true, false)

	other := "someone-else"
	created, err := svc.Create(context.Background(), domain.Observer{Label: "Dupont", OwnerID: &other}, plainUser("alice"))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created == nil {
		t.Fatal("expected a created record")
	}
	if repo.createdOwner == nil || *repo.createdOwner != "alice" {
		t.Fatalf("expected owner stamp alice, got %v", repo.createdOwner)
	}
}

func TestReferenceCreateHonorsClosedCreation(t *testing.T) {
	repo := &mockRefRepo[domain.Observer]{}
	svc := observerService(repo, false, false)
	ctx := context.Background()

	if _, err := svc.Create(ctx, domain.Observer{Label: "x"}, plainUser("alice")); !errors.Is(err, domain.ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed for ungranted user, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("repository must not be asked to create")
	}

	granted := plainUser("bob")
	granted.Permissions = map[domain.EntityKind]domain.Permission{
		domain.KindObserver: {CanCreate: true},
	}
	if _, err := svc.Create(ctx, domain.Observer{Label: "y"}, granted); err != nil {
		t.Fatalf("granted user should create: %v", err)
	}

	if _, err := svc.Create(ctx, domain.Observer{Label: "z"}, adminUser("root")); err != nil {
		t.Fatalf("admin should create: %v", err)
	}
}

func TestReferenceUpdateChecksStoredOwnership(t *testing.T) {
	repo := &mockRefRepo[domain.Observer]{
		byID: map[int64]domain.Observer{
			7: {ID: 7, Label: "Dupont", OwnerID: ptr("alice")},
		},
	}
	svc := observerService(repo, true, false)
	ctx := context.Background()

	if _, err := svc.Update(ctx, 7, domain.Observer{Label: "Durand"}, plainUser("bob")); !errors.Is(err, domain.ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed for non-owner, got %v", err)
	}
	if repo.updatedID != nil {
		t.Fatal("repository must not be asked to update")
	}

	if _, err := svc.Update(ctx, 7, domain.Observer{Label: "Durand"}, plainUser("alice")); err != nil {
		t.Fatalf("owner should update: %v", err)
	}
}

func TestReferenceUpdateAdminSkipsOwnershipLookup(t *testing.T) {
	repo := &mockRefRepo[domain.Observer]{}
	svc := observerService(repo, true, false)

	if _, err := svc.Update(context.Background(), 7, domain.Observer{Label: "Durand"}, adminUser("root")); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if repo.findCalls != 0 {
		t.Fatalf("admin update should not look up the stored row, got %d lookups", repo.findCalls)
	}
}

func TestReferenceUpdateMissingRecordIsRejected(t *testing.T) {
	repo := &mockRefRepo[domain.Observer]{}
	svc := observerService(repo, true, false)

	if _, err := svc.Update(context.Background(), 99, domain.Observer{Label: "x"}, plainUser("alice")); !errors.Is(err, domain.ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed for missing record, got %v", err)
	}
}

func TestReferenceDeleteGuardsUsedRecords(t *testing.T) {
	repo := &mockRefRepo[domain.Observer]{
		byID: map[int64]domain.Observer{
			7: {ID: 7, Label: "Dupont", OwnerID: ptr("alice")},
		},
		usage: 3,
	}
	svc := observerService(repo, true, true)
	ctx := context.Background()

	if _, err := svc.Delete(ctx, 7, plainUser("alice")); !errors.Is(err, domain.ErrIsUsed) {
		t.Fatalf("expected ErrIsUsed, got %v", err)
	}
	if repo.deletedID != nil {
		t.Fatal("repository must not be asked to delete")
	}

	repo.usage = 0
	deleted, err := svc.Delete(ctx, 7, plainUser("alice"))
	if err != nil {
		t.Fatalf("unused record should delete: %v", err)
	}
	if deleted == nil || deleted.ID != 7 {
		t.Fatalf("expected deleted record 7, got %+v", deleted)
	}
}

func TestReferenceCreateManyStampsAndPreservesOrder(t *testing.T) {
	repo := &mockRefRepo[domain.Observer]{}
	svc := observerService(repo, false, false)

	inputs := []domain.Observer{{Label: "a"}, {Label: "b"}, {Label: "c"}}
	created, err := svc.CreateMany(context.Background(), inputs, plainUser("alice"))
	if err != nil {
		t.Fatalf("CreateMany failed: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 created, got %d", len(created))
	}
	for i, want := range []string{"a", "b", "c"} {
		if repo.created[i].Label != want {
			t.Fatalf("row %d: expected %q, got %q", i, want, repo.created[i].Label)
		}
	}
	if repo.createdOwner == nil || *repo.createdOwner != "alice" {
		t.Fatalf("expected owner stamp alice, got %v", repo.createdOwner)
	}
}

func TestReferenceFindOfChildUsesWiredLookup(t *testing.T) {
	repo := &mockRefRepo[domain.Department]{}
	svc := NewReferenceService[domain.Department](repo, ReferenceConfig{Kind: domain.KindDepartment}).
		WithParentLookup(func(ctx context.Context, townID int64) (*domain.Department, error) {
			if townID != 42 {
				return nil, nil
			}
			return &domain.Department{ID: 1, Code: "44"}, nil
		})
	ctx := context.Background()

	dep, err := svc.FindOfChild(ctx, 42, plainUser("alice"))
	if err != nil {
		t.Fatalf("FindOfChild failed: %v", err)
	}
	if dep == nil || dep.Code != "44" {
		t.Fatalf("expected department 44, got %+v", dep)
	}

	missing, err := svc.FindOfChild(ctx, 43, plainUser("alice"))
	if err != nil {
		t.Fatalf("FindOfChild failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown child, got %+v", missing)
	}
}
