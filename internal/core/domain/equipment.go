package domain

import (
	"fmt"
	"time"
)

// EquipmentStatus is the operational state of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentActive      EquipmentStatus = "Active"
	EquipmentInactive    EquipmentStatus = "Inactive"
	EquipmentMaintenance EquipmentStatus = "Maintenance"
)

// ParseEquipmentStatus defaults an empty status to Active.
func ParseEquipmentStatus(s string) (EquipmentStatus, error) {
	switch st := EquipmentStatus(s); st {
	case "":
		return EquipmentActive, nil
	case EquipmentActive, EquipmentInactive, EquipmentMaintenance:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Equipment is a tracked farm implement, optionally assigned to a staff
// member and a field.
type Equipment struct {
	ID        string          `json:"equipmentId" bson:"_id"`
	Name      string          `json:"name" bson:"name"`
	Type      string          `json:"type" bson:"type"`
	Status    EquipmentStatus `json:"status" bson:"status"`
	StaffID   string          `json:"staffId,omitempty" bson:"staff_id,omitempty"`
	FieldCode string          `json:"fieldCode,omitempty" bson:"field_code,omitempty"`
	CreatedAt time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" bson:"updated_at"`
}
