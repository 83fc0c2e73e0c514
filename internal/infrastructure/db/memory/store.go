// Package memory is a process-local store for local runs and tests. Records
// are copied on the way in and out so callers never share state with the maps.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/silverharvest/harvest-system/internal/core/domain"
)

// Store holds users, equipment and vehicles behind a single RWMutex.
type Store struct {
	mu        sync.RWMutex
	users     map[string]domain.User // keyed by email
	userIDs   map[string]struct{}
	equipment map[string]domain.Equipment
	vehicles  map[string]domain.Vehicle
	plates    map[string]string // licence plate -> vehicle code
}

func NewStore() *Store {
	return &Store{
		users:     make(map[string]domain.User),
		userIDs:   make(map[string]struct{}),
		equipment: make(map[string]domain.Equipment),
		vehicles:  make(map[string]domain.Vehicle),
		plates:    make(map[string]string),
	}
}

// Ping always succeeds; it lets the store sit in the readiness checks.
func (s *Store) Ping(context.Context) error { return nil }

// Users returns the store as a ports.UserRepository.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Equipment returns the store as a ports.EquipmentRepository.
func (s *Store) Equipment() *EquipmentRepository { return &EquipmentRepository{s: s} }

// Vehicles returns the store as a ports.VehicleRepository.
func (s *Store) Vehicles() *VehicleRepository { return &VehicleRepository{s: s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.users[email]
	return ok, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.Email]; ok {
		return nil, domain.ErrDuplicateEmail
	}
	if _, ok := r.s.userIDs[user.ID]; ok {
		return nil, domain.ErrUserExists
	}
	r.s.users[user.Email] = *user
	r.s.userIDs[user.ID] = struct{}{}
	created := *user
	return &created, nil
}

type EquipmentRepository struct{ s *Store }

func (r *EquipmentRepository) Create(_ context.Context, e *domain.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[e.ID]; ok {
		return domain.ErrDuplicateEquipment
	}
	r.s.equipment[e.ID] = *e
	return nil
}

func (r *EquipmentRepository) FindByID(_ context.Context, id string) (*domain.Equipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.equipment[id]
	if !ok {
		return nil, domain.ErrEquipmentNotFound
	}
	return &e, nil
}

// List returns equipment ordered by creation time, then id.
func (r *EquipmentRepository) List(_ context.Context) ([]*domain.Equipment, error) {
	r.s.mu.RLock()
	out := make([]*domain.Equipment, 0, len(r.s.equipment))
	for _, e := range r.s.equipment {
		e := e
		out = append(out, &e)
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *EquipmentRepository) Update(_ context.Context, e *domain.Equipment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[e.ID]; !ok {
		return domain.ErrEquipmentNotFound
	}
	r.s.equipment[e.ID] = *e
	return nil
}

func (r *EquipmentRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.equipment[id]; !ok {
		return domain.ErrEquipmentNotFound
	}
	delete(r.s.equipment, id)
	return nil
}

type VehicleRepository struct{ s *Store }

func (r *VehicleRepository) Create(_ context.Context, v *domain.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.vehicles[v.Code]; ok {
		return domain.ErrDuplicateVehicle
	}
	if _, taken := r.s.plates[v.LicensePlateNumber]; taken {
		return domain.ErrDuplicateVehicle
	}
	r.s.vehicles[v.Code] = *v
	r.s.plates[v.LicensePlateNumber] = v.Code
	return nil
}

func (r *VehicleRepository) FindByCode(_ context.Context, code string) (*domain.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.vehicles[code]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	return &v, nil
}

// List returns vehicles ordered by creation time, then code.
func (r *VehicleRepository) List(_ context.Context) ([]*domain.Vehicle, error) {
	r.s.mu.RLock()
	out := make([]*domain.Vehicle, 0, len(r.s.vehicles))
	for _, v := range r.s.vehicles {
		v := v
		out = append(out, &v)
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Code < out[j].Code
	})
	return out, nil
}

func (r *VehicleRepository) Update(_ context.Context, v *domain.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.vehicles[v.Code]
	if !ok {
		return domain.ErrVehicleNotFound
	}
	if owner, taken := r.s.plates[v.LicensePlateNumber]; taken && owner != v.Code {
		return domain.ErrDuplicateVehicle
	}
	delete(r.s.plates, current.LicensePlateNumber)
	r.s.plates[v.LicensePlateNumber] = v.Code
	r.s.vehicles[v.Code] = *v
	return nil
}

func (r *VehicleRepository) Delete(_ context.Context, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vehicles[code]
	if !ok {
		return domain.ErrVehicleNotFound
	}
	delete(r.s.plates, v.LicensePlateNumber)
	delete(r.s.vehicles, code)
	return nil
}
