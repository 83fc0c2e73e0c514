package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/silverharvest/harvest-system/internal/core/domain"
	"github.com/silverharvest/harvest-system/internal/core/ports"
)

const vehicleScope = "vehicle"

type VehicleService struct {
	repo   ports.VehicleRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
}

func NewVehicleService(repo ports.VehicleRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *VehicleService {
	return &VehicleService{repo: repo, idem: idem, logger: logger}
}

// Create registers a vehicle, generating a code when none is supplied.
func (s *VehicleService) Create(ctx context.Context, input ports.VehicleInput, idempotencyKey string) (*domain.Vehicle, bool, error) {
	if existing := s.replay(ctx, idempotencyKey); existing != nil {
		return existing, true, nil
	}

	code := input.Code
	if code == "" {
		code = uuid.NewString()
	}

	now := time.Now().UTC()
	vehicle := &domain.Vehicle{
		Code:               code,
		LicensePlateNumber: input.LicensePlateNumber,
		Category:           input.Category,
		FuelType:           input.FuelType,
		Status:             input.Status,
		StaffID:            input.StaffID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, domain.ErrDuplicateVehicle) {
			return nil, false, err
		}
		s.logger.Error().Err(err).Str("vehicle_code", code).Msg("failed to create vehicle")
		return nil, false, fmt.Errorf("create vehicle: %w", err)
	}

	if idempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, vehicleScope, idempotencyKey, code); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("idempotency key not stored")
		}
	}

	s.logger.Info().Str("vehicle_code", code).Msg("vehicle created")
	return vehicle, false, nil
}

func (s *VehicleService) replay(ctx context.Context, key string) *domain.Vehicle {
	if key == "" || s.idem == nil {
		return nil
	}
	code, err := s.idem.Recall(ctx, vehicleScope, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed")
		return nil
	}
	if code == "" {
		return nil
	}
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("vehicle_code", code).Msg("idempotent replay")
	return existing
}

func (s *VehicleService) Get(ctx context.Context, code string) (*domain.Vehicle, error) {
	return s.repo.FindByCode(ctx, code)
}

func (s *VehicleService) List(ctx context.Context) ([]*domain.Vehicle, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return items, nil
}

func (s *VehicleService) Update(ctx context.Context, code string, input ports.VehicleInput) (*domain.Vehicle, error) {
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	existing.LicensePlateNumber = input.LicensePlateNumber
	existing.Category = input.Category
	existing.FuelType = input.FuelType
	if input.Status != "" {
		existing.Status = input.Status
	}
	existing.StaffID = input.StaffID
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.logger.Info().Str("vehicle_code", code).Msg("vehicle updated")
	return existing, nil
}

func (s *VehicleService) Delete(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return err
	}
	s.logger.Info().Str("vehicle_code", code).Msg("vehicle deleted")
	return nil
}
