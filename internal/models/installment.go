package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus represents the payment state of a single installment.
type InstallmentStatus string

const (
	// InstallmentPending is an installment due today.
	InstallmentPending InstallmentStatus = "pending"
	// InstallmentUpcoming is an installment due in the future.
	InstallmentUpcoming InstallmentStatus = "upcoming"
	// InstallmentPaid is a settled installment. Past-due installments are
	// assumed settled by the status resolver.
	InstallmentPaid InstallmentStatus = "paid"
	// InstallmentModified marks a row pinned by an explicit user action;
	// the resolver and the modification engine leave it alone.
	InstallmentModified InstallmentStatus = "modified"
)

// IsOpen reports whether the installment can still be re-amortized by a
// modification. Paid and modified rows are settled and never touched.
func (s InstallmentStatus) IsOpen() bool {
	return s == InstallmentPending || s == InstallmentUpcoming
}

// Installment is one row of a loan's EMI schedule. Sequence number 0 is
// reserved for the partial-period adjustment entry; regular installments run
// from 1 to the loan's tenure.
type Installment struct {
	Base
	LoanID           string            `gorm:"type:uuid;not null;uniqueIndex:idx_loan_sequence" json:"loan_id"`
	SequenceNumber   int               `gorm:"not null;uniqueIndex:idx_loan_sequence" json:"sequence_number"`
	DueDate          time.Time         `gorm:"not null" json:"due_date"`
	Principal        decimal.Decimal   `gorm:"type:decimal(20,2);not null" json:"principal"`
	Interest         decimal.Decimal   `gorm:"type:decimal(20,2);not null" json:"interest"`
	Total            decimal.Decimal   `gorm:"type:decimal(20,2);not null" json:"total"`
	OutstandingAfter decimal.Decimal   `gorm:"type:decimal(20,2);not null" json:"outstanding_principal"`
	Status           InstallmentStatus `gorm:"not null" json:"status"`
	// ModifiedRate is set when an interest-rate change has been applied to
	// this row.
	ModifiedRate *decimal.Decimal `gorm:"type:decimal(7,4)" json:"modified_interest_rate,omitempty"`
	IsAdjustment bool             `gorm:"not null;default:false" json:"is_adjustment"`
}
