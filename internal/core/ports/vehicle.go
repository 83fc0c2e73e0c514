package ports

import (
	"context"

	"github.com/silverharvest/harvest-system/internal/core/domain"
)

// VehicleRepository persists vehicles keyed by vehicle code.
type VehicleRepository interface {
	// Create returns domain.ErrDuplicateVehicle when the code is taken.
	Create(ctx context.Context, v *domain.Vehicle) error
	// FindByCode returns domain.ErrVehicleNotFound on a miss.
	FindByCode(ctx context.Context, code string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, code string) error
}

type VehicleInput struct {
	Code               string
	LicensePlateNumber string
	Category           string
	FuelType           string
	Status             string
	StaffID            string
}

type VehicleService interface {
	Create(ctx context.Context, input VehicleInput, idempotencyKey string) (vehicle *domain.Vehicle, replayed bool, err error)
	Get(ctx context.Context, code string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Update(ctx context.Context, code string, input VehicleInput) (*domain.Vehicle, error)
	Delete(ctx context.Context, code string) error
}
