package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanCategory classifies what a loan was taken out for.
type LoanCategory string

const (
	LoanCategoryHome      LoanCategory = "home"
	LoanCategoryCar       LoanCategory = "car"
	LoanCategoryEducation LoanCategory = "education"
	LoanCategoryPersonal  LoanCategory = "personal"
	LoanCategoryOther     LoanCategory = "other"
)

// Loan represents a tracked loan. EMIAmount is derived: it is written by the
// EMI calculator when the loan is created or its terms change, or overwritten
// by a modification operation, never edited directly.
type Loan struct {
	Base
	Name               string          `gorm:"not null" json:"name"`
	Category           LoanCategory    `gorm:"not null" json:"category"`
	Principal          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"principal"`
	AnnualInterestRate decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"annual_interest_rate"`
	TenureMonths       int             `gorm:"not null" json:"tenure_months"`
	LoanStartDate      time.Time       `gorm:"not null" json:"loan_start_date"`
	// EMIStartDate is the due date of the first regular installment. Legacy
	// records created before the field existed leave it zero; the schedule
	// generator falls back to LoanStartDate.
	EMIStartDate time.Time       `json:"emi_start_date"`
	EMIAmount    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"emi_amount"`

	// Relationships
	Installments  []Installment  `gorm:"foreignKey:LoanID;constraint:OnDelete:CASCADE" json:"installments,omitempty"`
	Modifications []Modification `gorm:"foreignKey:LoanID;constraint:OnDelete:CASCADE" json:"modifications,omitempty"`
}

// EMIStart returns the effective first-EMI date, falling back to the loan
// start date for legacy records.
func (l *Loan) EMIStart() time.Time {
	if l.EMIStartDate.IsZero() {
		return l.LoanStartDate
	}
	return l.EMIStartDate
}
