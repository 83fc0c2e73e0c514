// Package authz decides whether a role may perform an operation. Allowed
// roles are declared per operation in an explicit table; membership is an
// exact match with no hierarchy between roles.
package authz

import (
	"fmt"

	"github.com/silverharvest/harvest-system/internal/core/domain"
)

// Operation names a protected action.
type Operation string

const (
	EquipmentCreate Operation = "equipment:create"
	EquipmentRead   Operation = "equipment:read"
	EquipmentList   Operation = "equipment:list"
	EquipmentUpdate Operation = "equipment:update"
	EquipmentDelete Operation = "equipment:delete"

	VehicleCreate Operation = "vehicle:create"
	VehicleRead   Operation = "vehicle:read"
	VehicleList   Operation = "vehicle:list"
	VehicleUpdate Operation = "vehicle:update"
	VehicleDelete Operation = "vehicle:delete"
)

// RoleSet is an unordered set of role names.
type RoleSet map[string]struct{}

// NewRoleSet builds a RoleSet from roles.
func NewRoleSet(roles ...domain.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[string(r)] = struct{}{}
	}
	return set
}

// Contains reports whether role is in the set.
func (s RoleSet) Contains(role string) bool {
	_, ok := s[role]
	return ok
}

// Policy maps each operation to the roles allowed to perform it.
type Policy map[Operation]RoleSet

// DefaultPolicy is the route table of the service.
func DefaultPolicy() Policy {
	fieldStaff := NewRoleSet(domain.RoleManager, domain.RoleScientist)
	fleet := NewRoleSet(domain.RoleManager, domain.RoleAdministrative, domain.RoleOther)

	return Policy{
		EquipmentCreate: fieldStaff,
		EquipmentRead:   fieldStaff,
		EquipmentList:   fieldStaff,
		EquipmentUpdate: fieldStaff,
		EquipmentDelete: fieldStaff,

		VehicleCreate: fleet,
		VehicleRead:   fleet,
		VehicleList:   fleet,
		VehicleUpdate: fleet,
		VehicleDelete: fleet,
	}
}

// Authorize reports whether role is a member of allowed.
func Authorize(role string, allowed RoleSet) bool {
	return allowed.Contains(role)
}

// Gate checks roles against a fixed Policy. It is read-only after
// construction and safe for concurrent use.
type Gate struct {
	policy Policy
}

// NewGate copies policy into a new Gate.
func NewGate(policy Policy) *Gate {
	copied := make(Policy, len(policy))
	for op, roles := range policy {
		set := make(RoleSet, len(roles))
		for r := range roles {
			set[r] = struct{}{}
		}
		copied[op] = set
	}
	return &Gate{policy: copied}
}

// Check returns nil when role may perform op, and an error wrapping
// domain.ErrForbidden otherwise. Operations absent from the policy are denied.
func (g *Gate) Check(role string, op Operation) error {
	allowed, ok := g.policy[op]
	if !ok || !Authorize(role, allowed) {
		return fmt.Errorf("%w: role %q cannot perform %s", domain.ErrForbidden, role, op)
	}
	return nil
}

// Allowed returns the roles permitted for op, or nil when op is unknown.
func (g *Gate) Allowed(op Operation) []string {
	set, ok := g.policy[op]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	return out
}
