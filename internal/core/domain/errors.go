package domain

import (
	"errors"
	"fmt"
)

// Authentication and account errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("access forbidden")
)

// ErrNotFound is matched by every resource lookup miss.
var ErrNotFound = errors.New("not found")

// Resource errors.
var (
	ErrEquipmentNotFound  = fmt.Errorf("equipment %w", ErrNotFound)
	ErrVehicleNotFound    = fmt.Errorf("vehicle %w", ErrNotFound)
	ErrDuplicateEquipment = errors.New("equipment already exists")
	ErrDuplicateVehicle   = errors.New("vehicle already exists")
	ErrInvalidStatus      = errors.New("invalid status")
)

// ErrInvalidInput marks a request the caller must correct before retrying.
var ErrInvalidInput = errors.New("invalid input")
