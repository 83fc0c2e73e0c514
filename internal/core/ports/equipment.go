package ports

import (
	"context"

	"github.com/silverharvest/harvest-system/internal/core/domain"
)

// EquipmentRepository persists equipment records.
type EquipmentRepository interface {
	// Create returns domain.ErrDuplicateEquipment when the id is taken.
	Create(ctx context.Context, e *domain.Equipment) error
	// FindByID returns domain.ErrEquipmentNotFound on a miss.
	FindByID(ctx context.Context, id string) (*domain.Equipment, error)
	List(ctx context.Context) ([]*domain.Equipment, error)
	// Update replaces the stored record with the same id.
	Update(ctx context.Context, e *domain.Equipment) error
	Delete(ctx context.Context, id string) error
}

// EquipmentInput is the DTO passed from the transport layer.
type EquipmentInput struct {
	ID        string
	Name      string
	Type      string
	Status    string
	StaffID   string
	FieldCode string
}

// EquipmentService defines the equipment use cases.
type EquipmentService interface {
	// Create reports replayed=true when idempotencyKey matched an earlier create.
	Create(ctx context.Context, input EquipmentInput, idempotencyKey string) (equipment *domain.Equipment, replayed bool, err error)
	Get(ctx context.Context, id string) (*domain.Equipment, error)
	List(ctx context.Context) ([]*domain.Equipment, error)
	Update(ctx context.Context, id string, input EquipmentInput) (*domain.Equipment, error)
	Delete(ctx context.Context, id string) error
}
