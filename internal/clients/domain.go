package clients

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-ca/meridian/internal/compliance"
	"github.com/meridian-ca/meridian/internal/shared"
	"github.com/meridian-ca/meridian/internal/taxid"
)

// Status enumerates client lifecycle states.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Client is a practice client record.
type Client struct {
	ID           uuid.UUID               `json:"id"`
	Name         string                  `json:"name"`
	Email        string                  `json:"email"`
	Phone        string                  `json:"phone"`
	BusinessType compliance.BusinessType `json:"business_type"`
	GSTIN        *string                 `json:"gstin,omitempty"`
	PAN          *string                 `json:"pan,omitempty"`
	TAN          *string                 `json:"tan,omitempty"`
	CIN          *string                 `json:"cin,omitempty"`
	Turnover     *float64                `json:"turnover,omitempty"`
	Status       Status                  `json:"status"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// CreateInput groups the fields accepted when registering a client.
type CreateInput struct {
	Name         string   `json:"name" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        string   `json:"phone" validate:"required"`
	BusinessType string   `json:"business_type" validate:"required"`
	GSTIN        *string  `json:"gstin,omitempty"`
	PAN          *string  `json:"pan,omitempty"`
	TAN          *string  `json:"tan,omitempty"`
	CIN          *string  `json:"cin,omitempty"`
	Turnover     *float64 `json:"turnover,omitempty" validate:"omitempty,gte=0"`
}

// UpdateInput carries mutable client fields; nil values are untouched.
type UpdateInput struct {
	Name     *string  `json:"name,omitempty"`
	Email    *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string  `json:"phone,omitempty"`
	Turnover *float64 `json:"turnover,omitempty" validate:"omitempty,gte=0"`
	Status   *Status  `json:"status,omitempty"`
}

// ComplianceProfile pairs a client with its resolved obligations.
type ComplianceProfile struct {
	Client       Client                    `json:"client"`
	Requirements compliance.RequirementSet `json:"requirements"`
}

var (
	// ErrClientNotFound indicates a missing client id.
	ErrClientNotFound = errors.New("clients: client not found")
	// ErrDuplicatePAN indicates the PAN is already registered.
	ErrDuplicatePAN = errors.New("clients: PAN already registered")
)

// Validate checks structural identifier shape before persistence. The
// business type must exist in the compliance matrix so that profile
// resolution cannot fail later.
func (in CreateInput) Validate() error {
	if _, err := compliance.Resolve(compliance.BusinessType(in.BusinessType), nil); err != nil {
		return fmt.Errorf("%w: %q is not a recognised business type", shared.ErrInvalidInput, in.BusinessType)
	}
	if in.GSTIN != nil {
		if res := taxid.ValidateGSTIN(*in.GSTIN); !res.Valid {
			return fmt.Errorf("%w: gstin: %s", shared.ErrInvalidInput, res.Reason)
		}
	}
	if in.PAN != nil {
		if res := taxid.ValidatePAN(*in.PAN); !res.Valid {
			return fmt.Errorf("%w: pan: %s", shared.ErrInvalidInput, res.Reason)
		}
	}
	return nil
}
