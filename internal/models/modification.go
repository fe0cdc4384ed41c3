package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ModificationKind discriminates the loan-altering events recorded against a
// loan. Each kind carries only its relevant optional fields: prepayment uses
// Amount, stepup uses Amount or Percentage, interest_change uses NewRate.
type ModificationKind string

const (
	ModificationPrepayment     ModificationKind = "prepayment"
	ModificationStepUp         ModificationKind = "stepup"
	ModificationInterestChange ModificationKind = "interest_change"
)

// Modification is an append-only audit record of a loan-altering event. The
// schedule generator replays interest_change records to reconstruct historical
// rate overrides; prepayment and stepup records are informational only (their
// effects live in the mutated installment rows and are not replayable).
type Modification struct {
	Base
	LoanID     string           `gorm:"type:uuid;not null;index" json:"loan_id"`
	Kind       ModificationKind `gorm:"not null" json:"kind"`
	Date       time.Time        `gorm:"not null" json:"date"`
	Amount     *decimal.Decimal `gorm:"type:decimal(20,2)" json:"amount,omitempty"`
	Percentage *decimal.Decimal `gorm:"type:decimal(7,4)" json:"percentage,omitempty"`
	NewRate    *decimal.Decimal `gorm:"type:decimal(7,4)" json:"new_interest_rate,omitempty"`
	// AffectedSequences lists the installment sequence numbers the caller
	// nominated for this event.
	AffectedSequences []int `gorm:"serializer:json" json:"affected_installments"`
}
