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

const equipmentScope = "equipment"

type EquipmentService struct {
	repo   ports.EquipmentRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
}

// NewEquipmentService builds the service. idem may be nil, in which case
// Idempotency-Key headers are ignored.
func NewEquipmentService(repo ports.EquipmentRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *EquipmentService {
	return &EquipmentService{repo: repo, idem: idem, logger: logger}
}

// Create stores a new piece of equipment. If an idempotency key is provided and
// already seen, the previously created record is returned without side effects.
func (s *EquipmentService) Create(ctx context.Context, input ports.EquipmentInput, idempotencyKey string) (*domain.Equipment, bool, error) {
	if existing := s.replay(ctx, idempotencyKey); existing != nil {
		return existing, true, nil
	}

	status, err := domain.ParseEquipmentStatus(input.Status)
	if err != nil {
		return nil, false, err
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now().UTC()
	equipment := &domain.Equipment{
		ID:        id,
		Name:      input.Name,
		Type:      input.Type,
		Status:    status,
		StaffID:   input.StaffID,
		FieldCode: input.FieldCode,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, equipment); err != nil {
		if errors.Is(err, domain.ErrDuplicateEquipment) {
			return nil, false, err
		}
		s.logger.Error().Err(err).Str("equipment_id", id).Msg("failed to create equipment")
		return nil, false, fmt.Errorf("create equipment: %w", err)
	}

	if idempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, equipmentScope, idempotencyKey, id); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("idempotency key not stored")
		}
	}

	s.logger.Info().Str("equipment_id", id).Msg("equipment created")
	return equipment, false, nil
}

// replay returns the record an earlier request with the same key produced, or
// nil when the key is unseen or the record has since been removed.
func (s *EquipmentService) replay(ctx context.Context, key string) *domain.Equipment {
	if key == "" || s.idem == nil {
		return nil
	}
	id, err := s.idem.Recall(ctx, equipmentScope, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed")
		return nil
	}
	if id == "" {
		return nil
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("equipment_id", id).Msg("idempotent replay")
	return existing
}

func (s *EquipmentService) Get(ctx context.Context, id string) (*domain.Equipment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EquipmentService) List(ctx context.Context) ([]*domain.Equipment, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return items, nil
}

// Update replaces the mutable fields of an existing record. The id is taken
// from the path and an empty status keeps the current one.
func (s *EquipmentService) Update(ctx context.Context, id string, input ports.EquipmentInput) (*domain.Equipment, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := existing.Status
	if input.Status != "" {
		if status, err = domain.ParseEquipmentStatus(input.Status); err != nil {
			return nil, err
		}
	}

	existing.Name = input.Name
	existing.Type = input.Type
	existing.Status = status
	existing.StaffID = input.StaffID
	existing.FieldCode = input.FieldCode
	existing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.logger.Info().Str("equipment_id", id).Msg("equipment updated")
	return existing, nil
}

func (s *EquipmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("equipment_id", id).Msg("equipment deleted")
	return nil
}
