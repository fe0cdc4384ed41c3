package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"emitrack/internal/emi"
	apperrors "emitrack/internal/errors"
	"emitrack/internal/logger"
	"emitrack/internal/models"
	"emitrack/internal/pagination"
)

type modificationService struct {
	db *gorm.DB
}

// NewModificationService creates a new modification service with the given
// database connection.
func NewModificationService(db *gorm.DB) ModificationServicer {
	return &modificationService{db: db}
}

// ApplyPrepayment records a lump-sum payment against the installment at
// atSeq. The updated loan, the rewritten installment rows, and the
// modification record are persisted atomically.
func (s *modificationService) ApplyPrepayment(loanID string, amount decimal.Decimal, atSeq int, reduceTenure bool) (*ModificationResult, error) {
	var result *ModificationResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		loan, installments, err := loanSnapshot(tx, loanID)
		if err != nil {
			return err
		}

		updatedLoan, updatedRows, err := emi.ApplyPrepayment(*loan, installments, amount, atSeq, reduceTenure)
		if err != nil {
			return err
		}

		if err := tx.Save(&updatedLoan).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := saveInstallments(tx, updatedRows); err != nil {
			return err
		}

		amt := amount
		record := models.Modification{
			LoanID:            loanID,
			Kind:              models.ModificationPrepayment,
			Date:              time.Now(),
			Amount:            &amt,
			AffectedSequences: []int{atSeq},
		}
		if err := tx.Create(&record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		result = &ModificationResult{Loan: &updatedLoan, Installments: updatedRows}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Get().Infow("prepayment applied",
		"loan_id", loanID, "amount", amount.String(), "at_sequence", atSeq, "reduce_tenure", reduceTenure)
	return result, nil
}

// ApplyStepUp raises the EMI for every open installment from fromSeq onward,
// by a flat amount or a percentage of the current EMI.
func (s *modificationService) ApplyStepUp(loanID string, amount, percentage *decimal.Decimal, fromSeq int) (*ModificationResult, error) {
	var result *ModificationResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		loan, installments, err := loanSnapshot(tx, loanID)
		if err != nil {
			return err
		}

		affected := openSequencesFrom(installments, fromSeq)

		updatedLoan, updatedRows, err := emi.ApplyStepUp(*loan, installments, amount, percentage, fromSeq)
		if err != nil {
			return err
		}

		if err := tx.Save(&updatedLoan).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := saveInstallments(tx, updatedRows); err != nil {
			return err
		}

		record := models.Modification{
			LoanID:            loanID,
			Kind:              models.ModificationStepUp,
			Date:              time.Now(),
			Amount:            amount,
			Percentage:        percentage,
			AffectedSequences: affected,
		}
		if err := tx.Create(&record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		result = &ModificationResult{Loan: &updatedLoan, Installments: updatedRows}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Get().Infow("step-up applied", "loan_id", loanID, "from_sequence", fromSeq)
	return result, nil
}

// ChangeInterestRate reprices the loan at newRate for the nominated
// installments (and every open installment after the first nominated one).
// A nil or empty affectedSeqs applies the change to all open installments.
func (s *modificationService) ChangeInterestRate(loanID string, newRate decimal.Decimal, affectedSeqs []int) (*ModificationResult, error) {
	var result *ModificationResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		loan, installments, err := loanSnapshot(tx, loanID)
		if err != nil {
			return err
		}

		updatedRows, err := emi.ChangeInterestRate(*loan, installments, newRate, affectedSeqs)
		if err != nil {
			return err
		}

		if err := saveInstallments(tx, updatedRows); err != nil {
			return err
		}

		recorded := affectedSeqs
		if len(recorded) == 0 {
			recorded = openSequencesFrom(installments, 0)
		}
		rate := newRate
		record := models.Modification{
			LoanID:            loanID,
			Kind:              models.ModificationInterestChange,
			Date:              time.Now(),
			NewRate:           &rate,
			AffectedSequences: recorded,
		}
		if err := tx.Create(&record).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		result = &ModificationResult{Loan: loan, Installments: updatedRows}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Get().Infow("interest rate changed", "loan_id", loanID, "new_rate", newRate.String())
	return result, nil
}

func (s *modificationService) ListModifications(loanID string, kind *models.ModificationKind, page pagination.PageRequest) (*pagination.PageResponse[models.Modification], error) {
	if _, err := findLoan(s.db, loanID); err != nil {
		return nil, err
	}
	page.Defaults()

	query := s.db.Model(&models.Modification{}).Where("loan_id = ?", loanID)
	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var modifications []models.Modification
	if err := query.Order("date DESC").
		Scopes(pagination.Paginate(page)).
		Find(&modifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	response := pagination.NewPageResponse(modifications, page.Page, page.PageSize, total)
	return &response, nil
}

// openSequencesFrom lists the sequence numbers of open installments at or
// after fromSeq.
func openSequencesFrom(installments []models.Installment, fromSeq int) []int {
	var seqs []int
	for i := range installments {
		if installments[i].SequenceNumber >= fromSeq && installments[i].Status.IsOpen() {
			seqs = append(seqs, installments[i].SequenceNumber)
		}
	}
	return seqs
}
