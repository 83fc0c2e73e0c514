package handler

import (
	"github.com/silverharvest/harvest-system/internal/core/domain"
	"github.com/silverharvest/harvest-system/internal/core/ports"
)

const idempotencyHeader = "Idempotency-Key"

type equipmentRequest struct {
	EquipmentID string `json:"equipmentId"`
	Name        string `json:"name"      validate:"required"`
	Type        string `json:"type"      validate:"required"`
	Status      string `json:"status"    validate:"omitempty,oneof=Active Inactive Maintenance"`
	StaffID     string `json:"staffId"`
	FieldCode   string `json:"fieldCode"`
}

func (r equipmentRequest) toInput() ports.EquipmentInput {
	return ports.EquipmentInput{
		ID:        r.EquipmentID,
		Name:      r.Name,
		Type:      r.Type,
		Status:    r.Status,
		StaffID:   r.StaffID,
		FieldCode: r.FieldCode,
	}
}

type vehicleRequest struct {
	VehicleCode        string `json:"vehicleCode"`
	LicensePlateNumber string `json:"licensePlateNumber" validate:"required"`
	VehicleCategory    string `json:"vehicleCategory"    validate:"required"`
	FuelType           string `json:"fuelType"           validate:"required"`
	Status             string `json:"status"`
	StaffID            string `json:"staffId"`
}

func (r vehicleRequest) toInput() ports.VehicleInput {
	return ports.VehicleInput{
		Code:               r.VehicleCode,
		LicensePlateNumber: r.LicensePlateNumber,
		Category:           r.VehicleCategory,
		FuelType:           r.FuelType,
		Status:             r.Status,
		StaffID:            r.StaffID,
	}
}

// swag needs named types for the list responses.
type (
	equipmentList []*domain.Equipment
	vehicleList   []*domain.Vehicle
)
