package domain

import "time"

// Vehicle is a registered farm vehicle identified by its vehicle code.
type Vehicle struct {
	Code               string    `json:"vehicleCode" bson:"_id"`
	LicensePlateNumber string    `json:"licensePlateNumber" bson:"license_plate_number"`
	Category           string    `json:"vehicleCategory" bson:"vehicle_category"`
	FuelType           string    `json:"fuelType" bson:"fuel_type"`
	Status             string    `json:"status" bson:"status"`
	StaffID            string    `json:"staffId,omitempty" bson:"staff_id,omitempty"`
	CreatedAt          time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updated_at"`
}
