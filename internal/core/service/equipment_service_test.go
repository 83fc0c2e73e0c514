package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/silverharvest/harvest-system/internal/core/domain"
	"github.com/silverharvest/harvest-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubEquipmentRepo struct {
	items     map[string]*domain.Equipment
	creates   int
	createErr error
}

func newStubEquipmentRepo() *stubEquipmentRepo {
	return &stubEquipmentRepo{items: make(map[string]*domain.Equipment)}
}

func (r *stubEquipmentRepo) Create(_ context.Context, e *domain.Equipment) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.items[e.ID]; ok {
		return domain.ErrDuplicateEquipment
	}
	clone := *e
	r.items[e.ID] = &clone
	return nil
}

func (r *stubEquipmentRepo) FindByID(_ context.Context, id string) (*domain.Equipment, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrEquipmentNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEquipmentRepo) List(_ context.Context) ([]*domain.Equipment, error) {
	out := make([]*domain.Equipment, 0, len(r.items))
	for _, e := range r.items {
		clone := *e
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubEquipmentRepo) Update(_ context.Context, e *domain.Equipment) error {
	if _, ok := r.items[e.ID]; !ok {
		return domain.ErrEquipmentNotFound
	}
	clone := *e
	r.items[e.ID] = &clone
	return nil
}

func (r *stubEquipmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrEquipmentNotFound
	}
	delete(r.items, id)
	return nil
}

type stubIdempotency struct {
	keys        map[string]string
	recallErr   error
	rememberErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Recall(_ context.Context, scope, key string) (string, error) {
	if s.recallErr != nil {
		return "", s.recallErr
	}
	return s.keys[scope+":"+key], nil
}

func (s *stubIdempotency) Remember(_ context.Context, scope, key, id string) error {
	if s.rememberErr != nil {
		return s.rememberErr
	}
	s.keys[scope+":"+key] = id
	return nil
}

func tractor() ports.EquipmentInput {
	return ports.EquipmentInput{
		ID:        "EQ-001",
		Name:      "Tractor",
		Type:      "Heavy",
		Status:    "Active",
		StaffID:   "S-1",
		FieldCode: "F-1",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestEquipmentService_Create_Success(t *testing.T) {
	repo := newStubEquipmentRepo()
	svc := NewEquipmentService(repo, nil, zerolog.Nop())

	e, replayed, err := svc.Create(context.Background(), tractor(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if replayed {
		t.Fatalf("fresh create reported as replay")
	}
	if e.ID != "EQ-001" || e.Status != domain.EquipmentActive {
		t.Fatalf("unexpected equipment: %+v", e)
	}
	if e.CreatedAt.IsZero() || !e.CreatedAt.Equal(e.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %v / %v", e.CreatedAt, e.UpdatedAt)
	}
	if _, ok := repo.items["EQ-001"]; !ok {
		t.Fatalf("equipment not persisted")
	}
}

func TestEquipmentService_Create_GeneratesID(t *testing.T) {
	svc := NewEquipmentService(newStubEquipmentRepo(), nil, zerolog.Nop())

	in := tractor()
	in.ID = ""
	in.Status = ""
	e, _, err := svc.Create(context.Background(), in, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(e.ID) != 36 {
		t.Fatalf("expected generated uuid, got %q", e.ID)
	}
	if e.Status != domain.EquipmentActive {
		t.Fatalf("expected default status Active, got %q", e.Status)
	}
}

func TestEquipmentService_Create_InvalidStatus(t *testing.T) {
	repo := newStubEquipmentRepo()
	svc := NewEquipmentService(repo, nil, zerolog.Nop())

	in := tractor()
	in.Status = "Broken"
	if _, _, err := svc.Create(context.Background(), in, ""); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if repo.creates != 0 {
		t.Fatalf("nothing should be written")
	}
}

func TestEquipmentService_Create_Duplicate(t *testing.T) {
	svc := NewEquipmentService(newStubEquipmentRepo(), nil, zerolog.Nop())

	if _, _, err := svc.Create(context.Background(), tractor(), ""); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, _, err := svc.Create(context.Background(), tractor(), ""); err != domain.ErrDuplicateEquipment {
		t.Fatalf("expected ErrDuplicateEquipment, got %v", err)
	}
}

func TestEquipmentService_Create_RepoError(t *testing.T) {
	repo := newStubEquipmentRepo()
	repo.createErr = errors.New("db down")
	svc := NewEquipmentService(repo, nil, zerolog.Nop())

	_, _, err := svc.Create(context.Background(), tractor(), "")
	if !errors.Is(err, repo.createErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestEquipmentService_Create_IdempotentReplay(t *testing.T) {
	repo := newStubEquipmentRepo()
	idem := newStubIdempotency()
	svc := NewEquipmentService(repo, idem, zerolog.Nop())

	in := tractor()
	in.ID = ""
	first, replayed, err := svc.Create(context.Background(), in, "key-1")
	if err != nil || replayed {
		t.Fatalf("first create: replayed=%v err=%v", replayed, err)
	}

	second, replayed, err := svc.Create(context.Background(), in, "key-1")
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !replayed {
		t.Fatalf("expected replayed=true")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same id, got %s vs %s", second.ID, first.ID)
	}
	if repo.creates != 1 {
		t.Fatalf("expected exactly one write, got %d", repo.creates)
	}
}

func TestEquipmentService_Create_IdempotencyStoreDown(t *testing.T) {
	repo := newStubEquipmentRepo()
	idem := newStubIdempotency()
	idem.recallErr = errors.New("redis unavailable")
	idem.rememberErr = errors.New("redis unavailable")
	svc := NewEquipmentService(repo, idem, zerolog.Nop())

	if _, replayed, err := svc.Create(context.Background(), tractor(), "key-1"); err != nil || replayed {
		t.Fatalf("store failures must not fail the request: replayed=%v err=%v", replayed, err)
	}
}

func TestEquipmentService_Update(t *testing.T) {
	repo := newStubEquipmentRepo()
	svc := NewEquipmentService(repo, nil, zerolog.Nop())

	created, _, _ := svc.Create(context.Background(), tractor(), "")

	in := tractor()
	in.ID = "ignored"
	in.Name = "Tractor Mk2"
	in.Status = ""
	updated, err := svc.Update(context.Background(), "EQ-001", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != "EQ-001" || updated.Name != "Tractor Mk2" {
		t.Fatalf("unexpected update: %+v", updated)
	}
	if updated.Status != domain.EquipmentActive {
		t.Fatalf("empty status should keep the current one, got %q", updated.Status)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at must not change")
	}

	in.Status = "Maintenance"
	updated, err = svc.Update(context.Background(), "EQ-001", in)
	if err != nil || updated.Status != domain.EquipmentMaintenance {
		t.Fatalf("expected Maintenance, got %+v, %v", updated, err)
	}
}

func TestEquipmentService_NotFound(t *testing.T) {
	svc := NewEquipmentService(newStubEquipmentRepo(), nil, zerolog.Nop())

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "missing", tractor()); !errors.Is(err, domain.ErrEquipmentNotFound) {
		t.Fatalf("Update: expected ErrEquipmentNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrEquipmentNotFound) {
		t.Fatalf("Delete: expected ErrEquipmentNotFound, got %v", err)
	}
}

func TestEquipmentService_ListAndDelete(t *testing.T) {
	svc := NewEquipmentService(newStubEquipmentRepo(), nil, zerolog.Nop())

	_, _, _ = svc.Create(context.Background(), tractor(), "")
	other := tractor()
	other.ID = "EQ-002"
	_, _, _ = svc.Create(context.Background(), other, "")

	items, err := svc.List(context.Background())
	if err != nil || len(items) != 2 {
		t.Fatalf("expected 2 items, got %d (%v)", len(items), err)
	}

	if err := svc.Delete(context.Background(), "EQ-001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, _ = svc.List(context.Background())
	if len(items) != 1 || items[0].ID != "EQ-002" {
		t.Fatalf("unexpected items after delete: %+v", items)
	}
}
