package services

import (
	"time"

	"github.com/shopspring/decimal"

	"emitrack/internal/models"
	"emitrack/internal/pagination"
)

// LoanInput carries the user-editable terms for creating a loan.
type LoanInput struct {
	Name               string
	Category           models.LoanCategory
	Principal          decimal.Decimal
	AnnualInterestRate decimal.Decimal
	TenureMonths       int
	LoanStartDate      time.Time
	EMIStartDate       *time.Time
}

// LoanUpdate carries optional term changes; nil fields are left untouched.
type LoanUpdate struct {
	Name               *string
	Category           *models.LoanCategory
	Principal          *decimal.Decimal
	AnnualInterestRate *decimal.Decimal
	TenureMonths       *int
	LoanStartDate      *time.Time
	EMIStartDate       *time.Time
}

// LoanSummary aggregates a loan's schedule into headline figures.
type LoanSummary struct {
	LoanID               string          `json:"loan_id"`
	EMIAmount            decimal.Decimal `json:"emi_amount"`
	TotalPayable         decimal.Decimal `json:"total_payable"`
	TotalInterest        decimal.Decimal `json:"total_interest"`
	AmountPaid           decimal.Decimal `json:"amount_paid"`
	InterestPaid         decimal.Decimal `json:"interest_paid"`
	OutstandingPrincipal decimal.Decimal `json:"outstanding_principal"`
	SettledInstallments  int             `json:"settled_installments"`
	OpenInstallments     int             `json:"open_installments"`
}

// LoanServicer defines the contract for loan-related business logic.
type LoanServicer interface {
	CreateLoan(input LoanInput) (*models.Loan, error)
	GetLoans(page pagination.PageRequest, category *models.LoanCategory) (*pagination.PageResponse[models.Loan], error)
	GetLoanByID(loanID string) (*models.Loan, error)
	UpdateLoan(loanID string, update LoanUpdate) (*models.Loan, error)
	DeleteLoan(loanID string) error
	GetLoanSummary(loanID string) (*LoanSummary, error)
}

// ScheduleServicer defines the contract for schedule materialization and
// per-installment operations.
type ScheduleServicer interface {
	GetSchedule(loanID string) ([]models.Installment, error)
	RegenerateSchedule(loanID string) ([]models.Installment, error)
	MarkInstallmentPaid(loanID string, sequenceNumber int) (*models.Installment, error)
	ShiftDueDates(loanID string, startSeq, endSeq int, newStartDate time.Time) ([]models.Installment, error)
}

// ModificationResult is the outcome of a modification operation: the updated
// loan and the full replacement installment snapshot.
type ModificationResult struct {
	Loan         *models.Loan         `json:"loan"`
	Installments []models.Installment `json:"installments"`
}

// ModificationServicer defines the contract for loan-altering operations.
// Each operation persists the updated loan and installments and appends an
// append-only Modification record in a single transaction.
type ModificationServicer interface {
	ApplyPrepayment(loanID string, amount decimal.Decimal, atSeq int, reduceTenure bool) (*ModificationResult, error)
	ApplyStepUp(loanID string, amount, percentage *decimal.Decimal, fromSeq int) (*ModificationResult, error)
	ChangeInterestRate(loanID string, newRate decimal.Decimal, affectedSeqs []int) (*ModificationResult, error)
	ListModifications(loanID string, kind *models.ModificationKind, page pagination.PageRequest) (*pagination.PageResponse[models.Modification], error)
}

// AuditServicer defines the contract for the audit trail.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
