package identity

import (
	"strings"
	"time"

	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role scopes what a user may view and edit
type Role string

const (
	// RoleAdmin has unrestricted access
	RoleAdmin Role = "admin"
	// RoleCentralOperator manages the central warehouse and sees everything
	RoleCentralOperator Role = "central_operator"
	// RoleHospitalOperator manages one hospital (all its units and, for
	// primary-care facilities, the general bucket)
	RoleHospitalOperator Role = "hospital_operator"
	// RoleUBSOperator manages one primary-care facility
	RoleUBSOperator Role = "ubs_operator"
	// RoleUser has read access to the central views only
	RoleUser Role = "user"
)

// IsValid returns true if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCentralOperator, RoleHospitalOperator, RoleUBSOperator, RoleUser:
		return true
	}
	return false
}

// Status is the activation state of a profile
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// UserProfile maps an identity-provider subject to an application role and an
// optional hospital/unit association. The ID equals the IdP subject, so the
// profile is resolved with a direct key lookup.
type UserProfile struct {
	ID           string     `gorm:"type:varchar(128);primaryKey"`
	Name         string     `gorm:"type:varchar(200);not null"`
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	Role         Role       `gorm:"type:varchar(30);not null;default:'user'"`
	Status       Status     `gorm:"type:varchar(10);not null;default:'active'"`
	HospitalID   *uuid.UUID `gorm:"type:uuid;index"`
	UnitID       *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (UserProfile) TableName() string {
	return "user_profiles"
}

// NewUserProfile creates a profile for an identity-provider subject
func NewUserProfile(subjectID, name, email string, role Role) (*UserProfile, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Subject ID is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Profile name is required")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Profile email is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown role")
	}

	now := time.Now()
	return &UserProfile{
		ID:        subjectID,
		Name:      name,
		Email:     email,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsActive returns true if the profile may use the application
func (p *UserProfile) IsActive() bool {
	return p.Status == StatusActive
}

// Associate ties the profile to a hospital and optionally one of its units
func (p *UserProfile) Associate(hospitalID, unitID *uuid.UUID) {
	p.HospitalID = hospitalID
	p.UnitID = unitID
	p.UpdatedAt = time.Now()
}

// Deactivate marks the profile inactive; inactive profiles are denied on login
func (p *UserProfile) Deactivate() {
	p.Status = StatusInactive
	p.UpdatedAt = time.Now()
}
