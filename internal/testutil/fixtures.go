package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"emitrack/internal/emi"
	"emitrack/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// MustDecimal parses a decimal literal, failing the test on bad input.
func MustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal literal %q: %v", s, err)
	}
	return d
}

// CreateTestLoan creates a home loan with round terms: 1,000,000 principal at
// 8.5% over 240 months, started on 2024-01-01 with EMIs from the same day.
func CreateTestLoan(t *testing.T, db *gorm.DB) *models.Loan {
	t.Helper()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	return CreateTestLoanWithTerms(t, db, "1000000", "8.5", 240, start, start)
}

// CreateTestLoanWithTerms creates a loan with the given terms and a derived
// EMI amount.
func CreateTestLoanWithTerms(t *testing.T, db *gorm.DB, principal, annualRate string, tenureMonths int, loanStart, emiStart time.Time) *models.Loan {
	t.Helper()

	p := MustDecimal(t, principal)
	r := MustDecimal(t, annualRate)
	loan := &models.Loan{
		Name:               fmt.Sprintf("loan-%d", nextID()),
		Category:           models.LoanCategoryHome,
		Principal:          p,
		AnnualInterestRate: r,
		TenureMonths:       tenureMonths,
		EMIAmount:          emi.ComputeEMI(p, r, tenureMonths),
		LoanStartDate:      loanStart,
		EMIStartDate:       emiStart,
	}
	if err := db.Create(loan).Error; err != nil {
		t.Fatalf("failed to create test loan: %v", err)
	}
	return loan
}

// CreateTestSchedule materializes and persists the loan's installment
// schedule as of the given date.
func CreateTestSchedule(t *testing.T, db *gorm.DB, loan *models.Loan, asOf time.Time) []models.Installment {
	t.Helper()

	installments := emi.GenerateSchedule(loan, nil, asOf)
	if len(installments) == 0 {
		return installments
	}
	if err := db.Create(&installments).Error; err != nil {
		t.Fatalf("failed to create test schedule: %v", err)
	}
	return installments
}
