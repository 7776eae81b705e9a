package identity

import (
	"github.com/estoquesaude/backend/internal/domain/facility"
	"github.com/estoquesaude/backend/internal/domain/stock"
	"github.com/google/uuid"
)

// AccessPolicy is computed once per authenticated actor and consulted by every
// query and operation. All role logic lives here; callers never re-derive
// role/association conditionals.
//
// Scope precedence:
//  1. admin and central_operator see and edit everything.
//  2. an actor with an associated unit sees only that unit's buckets.
//  3. an actor with an associated hospital (no unit) sees all of that
//     hospital's units plus its general-stock bucket.
//  4. everyone else sees only the central views, read-only.
type AccessPolicy struct {
	role       Role
	hospitalID *uuid.UUID
	unitID     *uuid.UUID
}

// NewAccessPolicy derives the policy for a profile
func NewAccessPolicy(profile *UserProfile) AccessPolicy {
	return AccessPolicy{
		role:       profile.Role,
		hospitalID: profile.HospitalID,
		unitID:     profile.UnitID,
	}
}

// Role returns the actor's role
func (p AccessPolicy) Role() Role {
	return p.role
}

// SeesEverything returns true for roles without location scoping
func (p AccessPolicy) SeesEverything() bool {
	return p.role == RoleAdmin || p.role == RoleCentralOperator
}

// CanViewLocation reports whether the actor may see data tied to the given
// stock location.
func (p AccessPolicy) CanViewLocation(kind stock.LocationKind, unitID, hospitalID *uuid.UUID) bool {
	if p.SeesEverything() {
		return true
	}
	switch kind {
	case stock.LocationCentral:
		// Central views are visible to every authenticated actor.
		return true
	case stock.LocationUnit:
		if p.unitID != nil {
			return unitID != nil && *unitID == *p.unitID
		}
		if p.hospitalID != nil {
			return hospitalID != nil && *hospitalID == *p.hospitalID
		}
		return false
	case stock.LocationUBSGeneral:
		// An actor pinned to a specific unit never sees the general bucket.
		if p.unitID != nil {
			return false
		}
		if p.hospitalID != nil {
			return hospitalID != nil && *hospitalID == *p.hospitalID
		}
		return false
	}
	return false
}

// CanRecordMovementAt reports whether the actor may write a movement at the
// given stock location.
func (p AccessPolicy) CanRecordMovementAt(kind stock.LocationKind, unitID, hospitalID *uuid.UUID) bool {
	if p.SeesEverything() {
		return true
	}
	if p.role == RoleUser {
		return false
	}
	if kind == stock.LocationCentral {
		// Only central roles touch the central counter.
		return false
	}
	return p.CanViewLocation(kind, unitID, hospitalID)
}

// VisibleConfigs filters stock configurations down to what the actor may see.
// Pure function over an already-fetched collection.
func (p AccessPolicy) VisibleConfigs(configs []stock.Config) []stock.Config {
	if p.SeesEverything() {
		return configs
	}
	visible := make([]stock.Config, 0, len(configs))
	for _, cfg := range configs {
		if p.CanViewLocation(cfg.LocationKind, cfg.UnitID, cfg.HospitalID) {
			visible = append(visible, cfg)
		}
	}
	return visible
}

// VisibleUnits filters served units down to what the actor may see
func (p AccessPolicy) VisibleUnits(units []facility.ServedUnit) []facility.ServedUnit {
	if p.SeesEverything() {
		return units
	}
	visible := make([]facility.ServedUnit, 0, len(units))
	for _, unit := range units {
		unitID := unit.ID
		hospitalID := unit.HospitalID
		if p.CanViewLocation(stock.LocationUnit, &unitID, &hospitalID) {
			visible = append(visible, unit)
		}
	}
	return visible
}

// VisibleMovements filters ledger entries down to what the actor may see
func (p AccessPolicy) VisibleMovements(movements []stock.Movement) []stock.Movement {
	if p.SeesEverything() {
		return movements
	}
	visible := make([]stock.Movement, 0, len(movements))
	for _, m := range movements {
		kind := stock.LocationCentral
		if m.UnitID != nil {
			kind = stock.LocationUnit
		} else if m.HospitalID != nil {
			kind = stock.LocationUBSGeneral
		}
		if p.CanViewLocation(kind, m.UnitID, m.HospitalID) {
			visible = append(visible, m)
		}
	}
	return visible
}
