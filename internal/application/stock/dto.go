package stock

import (
	"time"

	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/estoquesaude/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Actor identifies who is performing an operation and what they may touch.
// Services receive the actor explicitly; they never reach into ambient state
// to find out who is calling.
type Actor struct {
	SubjectID string
	Policy    identity.AccessPolicy
}

// MovementInput is a proposed stock movement before validation
type MovementInput struct {
	ItemID     uuid.UUID
	Type       stock.MovementType
	Quantity   decimal.Decimal
	Date       time.Time
	UnitID     *uuid.UUID
	HospitalID *uuid.UUID
	PatientID  *uuid.UUID
	Notes      string
}

// MovementReceipt reports a committed movement back to the caller
type MovementReceipt struct {
	MovementID    uuid.UUID       `json:"movement_id"`
	ConfigKey     string          `json:"config_key"`
	QuantityAfter decimal.Decimal `json:"quantity_after"`
}
