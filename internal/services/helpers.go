package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "emitrack/internal/errors"
	"emitrack/internal/models"
)

// findLoan fetches a loan by ID, translating gorm's not-found into the
// domain error.
func findLoan(tx *gorm.DB, loanID string) (*models.Loan, error) {
	var loan models.Loan
	if err := tx.First(&loan, "id = ?", loanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &loan, nil
}

// loanSnapshot loads a loan together with its installments ordered by
// sequence number. The returned slice is the working snapshot the engine
// operates on.
func loanSnapshot(tx *gorm.DB, loanID string) (*models.Loan, []models.Installment, error) {
	loan, err := findLoan(tx, loanID)
	if err != nil {
		return nil, nil, err
	}

	var installments []models.Installment
	if err := tx.Where("loan_id = ?", loanID).
		Order("sequence_number ASC").
		Find(&installments).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return loan, installments, nil
}

// saveInstallments writes back every row of a schedule snapshot.
func saveInstallments(tx *gorm.DB, installments []models.Installment) error {
	for i := range installments {
		if err := tx.Save(&installments[i]).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return nil
}
