package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"emitrack/internal/emi"
	apperrors "emitrack/internal/errors"
	"emitrack/internal/logger"
	"emitrack/internal/models"
	"emitrack/internal/pagination"
)

type loanService struct {
	db *gorm.DB
}

// NewLoanService creates a new loan service with the given database
// connection.
func NewLoanService(db *gorm.DB) LoanServicer {
	return &loanService{db: db}
}

var maxAnnualRate = decimal.NewFromInt(100)

func validateLoanTerms(principal, annualRate decimal.Decimal, tenureMonths int) error {
	if !principal.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidLoanTerms, "Principal must be positive")
	}
	if annualRate.IsNegative() || annualRate.GreaterThan(maxAnnualRate) {
		return apperrors.WithMessage(apperrors.ErrInvalidLoanTerms, "Annual interest rate must be between 0 and 100")
	}
	if tenureMonths <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidLoanTerms, "Tenure must be at least one month")
	}
	return nil
}

func (s *loanService) CreateLoan(input LoanInput) (*models.Loan, error) {
	if err := validateLoanTerms(input.Principal, input.AnnualInterestRate, input.TenureMonths); err != nil {
		return nil, err
	}

	emiStart := input.LoanStartDate
	if input.EMIStartDate != nil {
		emiStart = *input.EMIStartDate
	}
	if emiStart.Before(input.LoanStartDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidLoanTerms, "EMI start date cannot precede the loan start date")
	}

	loan := models.Loan{
		Name:               input.Name,
		Category:           input.Category,
		Principal:          input.Principal,
		AnnualInterestRate: input.AnnualInterestRate,
		TenureMonths:       input.TenureMonths,
		EMIAmount:          emi.ComputeEMI(input.Principal, input.AnnualInterestRate, input.TenureMonths),
		LoanStartDate:      input.LoanStartDate,
		EMIStartDate:       emiStart,
	}

	if err := s.db.Create(&loan).Error; err != nil {
		logger.Get().Errorw("failed to create loan", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &loan, nil
}

func (s *loanService) GetLoans(page pagination.PageRequest, category *models.LoanCategory) (*pagination.PageResponse[models.Loan], error) {
	page.Defaults()

	query := s.db.Model(&models.Loan{})
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Get().Errorw("failed to count loans", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var loans []models.Loan
	if err := query.Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&loans).Error; err != nil {
		logger.Get().Errorw("failed to list loans", "error", err)
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	response := pagination.NewPageResponse(loans, page.Page, page.PageSize, total)
	return &response, nil
}

func (s *loanService) GetLoanByID(loanID string) (*models.Loan, error) {
	return findLoan(s.db, loanID)
}

func (s *loanService) UpdateLoan(loanID string, update LoanUpdate) (*models.Loan, error) {
	var updated *models.Loan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		loan, err := findLoan(tx, loanID)
		if err != nil {
			return err
		}

		termsChanged := false
		if update.Name != nil {
			loan.Name = *update.Name
		}
		if update.Category != nil {
			loan.Category = *update.Category
		}
		if update.Principal != nil && !update.Principal.Equal(loan.Principal) {
			loan.Principal = *update.Principal
			termsChanged = true
		}
		if update.AnnualInterestRate != nil && !update.AnnualInterestRate.Equal(loan.AnnualInterestRate) {
			loan.AnnualInterestRate = *update.AnnualInterestRate
			termsChanged = true
		}
		if update.TenureMonths != nil && *update.TenureMonths != loan.TenureMonths {
			loan.TenureMonths = *update.TenureMonths
			termsChanged = true
		}
		if update.LoanStartDate != nil && !update.LoanStartDate.Equal(loan.LoanStartDate) {
			loan.LoanStartDate = *update.LoanStartDate
			termsChanged = true
		}
		if update.EMIStartDate != nil && !update.EMIStartDate.Equal(loan.EMIStartDate) {
			loan.EMIStartDate = *update.EMIStartDate
			termsChanged = true
		}

		if err := validateLoanTerms(loan.Principal, loan.AnnualInterestRate, loan.TenureMonths); err != nil {
			return err
		}
		if loan.EMIStart().Before(loan.LoanStartDate) {
			return apperrors.WithMessage(apperrors.ErrInvalidLoanTerms, "EMI start date cannot precede the loan start date")
		}

		if termsChanged {
			loan.EMIAmount = emi.ComputeEMI(loan.Principal, loan.AnnualInterestRate, loan.TenureMonths)
			// Changed terms invalidate the materialized schedule; it is
			// rebuilt on the next read.
			if err := tx.Unscoped().
				Where("loan_id = ?", loanID).
				Delete(&models.Installment{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		if err := tx.Save(loan).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		updated = loan
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *loanService) DeleteLoan(loanID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		loan, err := findLoan(tx, loanID)
		if err != nil {
			return err
		}

		if err := tx.Unscoped().
			Where("loan_id = ?", loanID).
			Delete(&models.Installment{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Unscoped().
			Where("loan_id = ?", loanID).
			Delete(&models.Modification{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(loan).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

func (s *loanService) GetLoanSummary(loanID string) (*LoanSummary, error) {
	loan, installments, err := loanSnapshot(s.db, loanID)
	if err != nil {
		return nil, err
	}

	summary := LoanSummary{
		LoanID:               loan.ID,
		EMIAmount:            loan.EMIAmount,
		OutstandingPrincipal: loan.Principal,
	}
	for i := range installments {
		row := &installments[i]
		summary.TotalPayable = summary.TotalPayable.Add(row.Total)
		summary.TotalInterest = summary.TotalInterest.Add(row.Interest)
		if row.Status.IsOpen() {
			summary.OpenInstallments++
			continue
		}
		summary.SettledInstallments++
		summary.AmountPaid = summary.AmountPaid.Add(row.Total)
		summary.InterestPaid = summary.InterestPaid.Add(row.Interest)
		summary.OutstandingPrincipal = row.OutstandingAfter
	}
	return &summary, nil
}
